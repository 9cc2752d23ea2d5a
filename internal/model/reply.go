package model

// ReplyState is the tag of a Reply.
type ReplyState string

const (
	ReplyPending  ReplyState = "pending"
	ReplyResolved ReplyState = "resolved"
	ReplyFailed   ReplyState = "failed"
)

// ErrorClassification marks the stand-in shown when a request failed.
const ErrorClassification = "error"

// ErrorInfo is what a failed request leaves on its message.
type ErrorInfo struct {
	Classification string `json:"classification"`
	Message        string `json:"message"`
}

// Reply is Pending, Resolved(AiResponse) or Failed(ErrorInfo). Exactly one of
// Response and Failure is set for the last two states.
type Reply struct {
	State    ReplyState  `json:"state"`
	Response *AiResponse `json:"response,omitempty"`
	Failure  *ErrorInfo  `json:"failure,omitempty"`
}

func Pending() Reply {
	return Reply{State: ReplyPending}
}

func Resolved(resp AiResponse) Reply {
	return Reply{State: ReplyResolved, Response: &resp}
}

func Failed(message string) Reply {
	return Reply{State: ReplyFailed, Failure: &ErrorInfo{Classification: ErrorClassification, Message: message}}
}

func (r Reply) IsPending() bool { return r.State == ReplyPending || r.State == "" }

// Settled reports whether the request behind the reply finished either way.
func (r Reply) Settled() bool { return !r.IsPending() }
