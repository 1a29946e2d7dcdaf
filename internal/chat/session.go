package chat

// Session is the state a conversation carries between turns. It is passed
// into every send and a new value comes back with every reply.
type Session struct {
	ThreadID string `json:"thread_id,omitempty"`
}

// With returns the session moved to threadID. An empty id keeps the current
// thread.
func (s Session) With(threadID string) Session {
	if threadID == "" {
		return s
	}
	s.ThreadID = threadID
	return s
}

func (s Session) threadIDRef() *string {
	if s.ThreadID == "" {
		return nil
	}
	id := s.ThreadID
	return &id
}
