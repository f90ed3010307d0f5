package authlog

import (
	"context"
	"sync"
	"time"

	"github.com/Rizwan2611/CLV-calculator/internal/ids"
	"github.com/Rizwan2611/CLV-calculator/internal/obs"
)

const timestampLayout = "2006-01-02 15:04:05"

// Archive persists an appended event durably. The store serializes calls,
// so implementations never see concurrent appends. all is the full
// in-memory sequence including e, for archives that rewrite a cumulative
// snapshot.
type Archive interface {
	Append(ctx context.Context, e Event, all []Event) error
}

// Store is the append-only event store. All mutating and reading access to
// the in-memory sequence is serialized through one RWMutex so statistics
// and recent reads never observe a partial append.
type Store struct {
	mu       sync.RWMutex
	events   []Event
	archives []Archive
}

// NewStore creates a store seeded with previously archived events.
// Archives are written best-effort on every append.
func NewStore(seed []Event, archives ...Archive) *Store {
	s := &Store{archives: archives}
	s.events = append(s.events, seed...)
	return s
}

// Append defaults the server-assigned fields, records the event in memory
// and mirrors it to the configured archives. An archive failure is logged
// and returned but the in-memory append is never rolled back.
func (s *Store) Append(ctx context.Context, e Event, observedIP string) (Event, error) {
	now := time.Now()
	e.ID = ids.New()
	e.IPAddress = observedIP
	if e.Timestamp == "" {
		e.Timestamp = now.Format(timestampLayout)
	}
	if e.TimestampUnix == 0 {
		e.TimestampUnix = now.UnixMilli()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = append(s.events, e)
	obs.CountAuthEvent(e.EventType)

	var firstErr error
	for _, a := range s.archives {
		if err := a.Append(ctx, e, s.events); err != nil {
			obs.LogError("authlog", "archive append", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return e, firstErr
}

// Query returns events matching f in insertion order.
func (s *Store) Query(f Filter) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Event
	for _, e := range s.events {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Recent returns the last limit events in insertion order; all of them if
// fewer exist.
func (s *Store) Recent(limit int) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit < 0 {
		limit = 0
	}
	start := len(s.events) - limit
	if start < 0 {
		start = 0
	}
	out := make([]Event, len(s.events)-start)
	copy(out, s.events[start:])
	return out
}

// Len reports the number of stored events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Statistics computes the aggregate in a single pass over all records.
func (s *Store) Statistics() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		TotalEvents: len(s.events),
		LastUpdated: time.Now().Format(timestampLayout),
	}
	users := make(map[string]struct{})
	for _, e := range s.events {
		switch e.EventType {
		case "signup":
			stats.Signups++
		case "login":
			stats.Logins++
		}
		switch e.Provider {
		case "google":
			stats.GoogleAuth++
		case "email":
			stats.EmailAuth++
		}
		switch e.DeviceType {
		case "mobile":
			stats.MobileUsers++
		case "desktop":
			stats.DesktopUsers++
		}
		users[e.UserID] = struct{}{}
	}
	stats.UniqueUsers = len(users)
	return stats
}

// all returns a copy of the full sequence for export.
func (s *Store) all() []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}
