package models

import "time"

// Session is an issued access token record stored in the sessions table.
// The token value is opaque to clients; all state lives server-side, so a
// session can be revoked by deleting the record.
type Session struct {
	// Token is the opaque token value handed to the client at login.
	// It is the primary key of the sessions table.
	Token string `json:"token"`

	// UserID is the owning account's derived identifier.
	UserID uint64 `json:"user_id"`

	// IssuedAt and ExpiresAt are unix seconds. A session is consulted,
	// never mutated: expiry is enforced lazily at validation time.
	IssuedAt  int64 `json:"issued_at"`
	ExpiresAt int64 `json:"expires_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session's expiry lies at or before now.
func (s Session) Expired(now time.Time) bool {
	return s.ExpiresAt <= now.Unix()
}
