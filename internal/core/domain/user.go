package domain

import (
	"strings"
	"time"
)

const (
	RoleAdministrator = "administrator"
	RoleManager       = "manager"
	RoleOperator      = "operator"
)

// Actions a permission may grant on a back-office module.
const (
	ActionCreate = "create"
	ActionRead   = "read"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ValidRole reports whether role is one of the known access tiers.
func ValidRole(role string) bool {
	switch role {
	case RoleAdministrator, RoleManager, RoleOperator:
		return true
	}
	return false
}

// Permission grants a set of actions on a single back-office module
// (bookings, services, finance, content, settings). Administrators hold
// every permission implicitly and carry no Permission entries.
type Permission struct {
	Module  string   `json:"module"`
	Actions []string `json:"actions"`
}

// User models an authenticated back-office actor. The password hash is
// stored alongside the identity record and never serialized.
type User struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email,omitempty"`
	PasswordHash string       `json:"-"`
	Role         string       `json:"role"`
	Permissions  []Permission `json:"permissions"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// NormalizeUsername applies the canonical form used for lookups: trimmed
// and lowercased. Usernames differing only in case are the same account.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
