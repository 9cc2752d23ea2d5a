package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triage-chat/internal/auth"
	"triage-chat/internal/model"
)

func TestFromContext_OutsideMiddleware(t *testing.T) {
	s, err := auth.FromContext(context.Background())
	assert.Nil(t, s)
	assert.ErrorIs(t, err, auth.ErrNoSession)
	assert.Contains(t, err.Error(), "auth.Middleware")
}

func TestMiddleware_InjectsSession(t *testing.T) {
	session := auth.NewSession(&model.User{Name: "Sergey Belkin"}, nil)

	var got *auth.Session
	handler := auth.Middleware(session)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := auth.FromContext(r.Context())
		require.NoError(t, err)
		got = s
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotNil(t, got)
	assert.Equal(t, "Sergey Belkin", got.User().Name)
}

func TestSession_UserIsCopied(t *testing.T) {
	session := auth.NewSession(&model.User{Name: "A"}, nil)
	u := session.User()
	u.Name = "B"
	assert.Equal(t, "A", session.User().Name)

	assert.Nil(t, auth.NewSession(nil, nil).User())
}

func TestSession_Logout(t *testing.T) {
	called := 0
	session := auth.NewSession(&model.User{Name: "A"}, func(ctx context.Context) { called++ })

	session.Logout(context.Background())
	assert.Equal(t, 1, called)

	assert.NotPanics(t, func() { auth.NewSession(nil, nil).Logout(context.Background()) })
}
