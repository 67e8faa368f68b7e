package model

import "time"

// Role controls which commands a staff member may run.
type Role string

// Role constants.
const (
	RoleOfficer Role = "officer"
	RoleAdmin   Role = "admin"
)

// User represents a bank staff account. PasswordHash is a bcrypt hash; an
// empty hash means the account was provisioned but no password set yet.
type User struct {
	CreatedAt    time.Time
	Email        string
	PasswordHash string
	Name         string
	Role         Role
}

// AuditEntry is one row of the append-only action log.
type AuditEntry struct {
	Timestamp time.Time
	Actor     string
	Action    string
	Details   string
	ID        int64
}
