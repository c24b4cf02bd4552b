package model

import "time"

// Roles a user account can hold. The set is closed: every stored user and
// every issued session token carries exactly one of these values.
const (
	RoleAdministrator   = "administrator"
	RoleCollectionPoint = "collection_point"
	RoleRecycler        = "recycler"
	RoleCitizen         = "citizen"
)

// Roles lists the permitted role values in the order they are reported in
// validation errors.
var Roles = []string{RoleAdministrator, RoleCollectionPoint, RoleRecycler, RoleCitizen}

// ValidRole reports whether role is one of the permitted values.
func ValidRole(role string) bool {
	for _, r := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// User represents an application user record as stored in the `users`
// table. Email is a unique case-insensitive key; it is normalized
// (lowercased and trimmed) before it ever reaches the database.
// PasswordHash is a bcrypt hash; for Google-federated accounts it hashes a
// random secret the user never learns, so those accounts cannot log in via
// the password path.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email (normalized, unique)
	PasswordHash string    // users.password_hash
	Role         string    // users.role, one of Roles
	Phone        string    // users.phone (optional)
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at, refreshed on every mutation
}

// PublicUser is the projection of a user that leaves the service: the
// password hash is never serialized.
type PublicUser struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Phone string `json:"phone,omitempty"`
}

// Public returns the projection of u safe to return to callers.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Phone: u.Phone}
}
