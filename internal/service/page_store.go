package service

import (
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"triage-chat/internal/interfaces"
)

// PageStore keeps chat pages in memory, keyed by the page session id. Pages
// expire after ttl without access.
type PageStore struct {
	mu      sync.Mutex
	pages   *cache.Cache
	newPage func() interfaces.ChatPage
}

func NewPageStore(ttl time.Duration, newPage func() interfaces.ChatPage) *PageStore {
	cleanup := ttl / 2
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	pages := cache.New(ttl, cleanup)
	pages.OnEvicted(func(id string, _ interface{}) {
		slog.Debug("Chat page dropped", "page_id", id)
	})
	return &PageStore{pages: pages, newPage: newPage}
}

// Open returns the page for id, creating it on first use. Every access
// restarts the expiry timer.
func (s *PageStore) Open(id string) interfaces.ChatPage {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.pages.Get(id); ok {
		page := v.(interfaces.ChatPage)
		s.pages.Set(id, page, cache.DefaultExpiration)
		return page
	}
	page := s.newPage()
	s.pages.Set(id, page, cache.DefaultExpiration)
	slog.Debug("Opened chat page", "page_id", id)
	return page
}

// Close drops the page for id.
func (s *PageStore) Close(id string) {
	s.pages.Delete(id)
}

// Len is the number of live pages.
func (s *PageStore) Len() int {
	return s.pages.ItemCount()
}
