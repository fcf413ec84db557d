package models

import "time"

// LoginLog is one staff login or activity event. A row with a non-null
// SessionToken and LoggedOut=false is the sole record of an active session.
type LoginLog struct {
	ID           string
	StaffID      string
	Branch       string
	Counter      string
	Success      bool
	Details      string
	Timestamp    time.Time
	IPAddress    string
	UserAgent    string
	SessionToken *string
	LoggedOut    bool
}

type LoginLogFilter struct {
	StaffID string
	Branch  string
}
