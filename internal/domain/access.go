package domain

import "time"

// AccessStatus is the state of a dashboard access request.
type AccessStatus string

const (
	AccessPending  AccessStatus = "pending"
	AccessApproved AccessStatus = "approved"
	AccessRevoked  AccessStatus = "revoked"
)

// AccessRequest is one user's request to view the dashboard.
type AccessRequest struct {
	ID          int64        `db:"id"           json:"id"`
	Email       string       `db:"email"        json:"email"`
	Name        string       `db:"name"         json:"name"`
	Status      AccessStatus `db:"status"       json:"status"`
	RequestedAt time.Time    `db:"requested_at" json:"requested_at"`
	DecidedAt   *time.Time   `db:"decided_at"   json:"decided_at,omitempty"`
	DecidedBy   string       `db:"decided_by"   json:"decided_by,omitempty"`
}
