package models

import "time"

// Session represents one interactive chat run.
type Session struct {
	ID           string    `json:"id"`
	StartedAt    time.Time `json:"startedAt"`
	LastActivity time.Time `json:"lastActivity"`
	Questions    int       `json:"questions"`
}

// NewSession starts a session with the given id.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{ID: id, StartedAt: now, LastActivity: now}
}

// UpdateActivity counts a question and updates the last activity timestamp
func (s *Session) UpdateActivity() {
	s.Questions++
	s.LastActivity = time.Now()
}

// Duration returns how long the session has been open.
func (s *Session) Duration() time.Duration {
	return time.Since(s.StartedAt)
}
