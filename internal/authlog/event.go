// Package authlog implements the append-only authentication-event store:
// an in-memory ordered sequence mirrored best-effort to a cumulative
// archive and per-day partitions.
package authlog

// Event is one authentication occurrence with client/device/session
// metadata. Records are immutable once appended.
type Event struct {
	ID            string `json:"id,omitempty"`
	UserID        string `json:"userId"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	EventType     string `json:"eventType"` // "login" or "signup"
	Provider      string `json:"provider"`  // "email", "google", ...
	Timestamp     string `json:"timestamp"`
	SessionID     string `json:"sessionId"`
	UserAgent     string `json:"userAgent"`
	Platform      string `json:"platform"`
	DeviceType    string `json:"deviceType"` // "mobile", "tablet", "desktop"
	BrowserName   string `json:"browserName"`
	IPAddress     string `json:"ipAddress"`
	CurrentURL    string `json:"currentUrl"`
	IsNewUser     bool   `json:"isNewUser"`
	TimestampUnix int64  `json:"timestampUnix"` // milliseconds since epoch
}

// Filter selects events by exact field match; zero values match everything.
type Filter struct {
	EventType string
	UserID    string
}

func (f Filter) matches(e Event) bool {
	if f.EventType != "" && e.EventType != f.EventType {
		return false
	}
	if f.UserID != "" && e.UserID != f.UserID {
		return false
	}
	return true
}

// Stats is the aggregate computed in one pass over all stored events.
// An event with an unrecognized eventType or provider contributes to
// TotalEvents but to no bucket.
type Stats struct {
	TotalEvents  int    `json:"totalEvents"`
	Signups      int    `json:"signups"`
	Logins       int    `json:"logins"`
	GoogleAuth   int    `json:"googleAuth"`
	EmailAuth    int    `json:"emailAuth"`
	MobileUsers  int    `json:"mobileUsers"`
	DesktopUsers int    `json:"desktopUsers"`
	UniqueUsers  int    `json:"uniqueUsers"`
	LastUpdated  string `json:"lastUpdated"`
}
