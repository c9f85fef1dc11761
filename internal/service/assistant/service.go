package assistant

import (
	"database/sql"
	"time"
)

// Service handles user bookkeeping and the per-user event log.
type Service struct {
	db  *sql.DB
	now func() time.Time
}

// NewService builds a new assistant service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// SetClock overrides the service clock. Tests only.
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Now returns the service's current time.
func (s *Service) Now() time.Time {
	return s.now()
}
