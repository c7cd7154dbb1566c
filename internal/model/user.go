package model

import "time"

// Role is the closed set of user roles.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

// ParseRole validates a role string against the closed set.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleModerator, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// User represents an account in the user directory.
type User struct {
	ID               uint       `json:"-" gorm:"primaryKey"`
	Username         string     `json:"username" gorm:"uniqueIndex;size:150;not null"`
	Email            string     `json:"email" gorm:"uniqueIndex;size:254;not null"`
	FirstName        string     `json:"first_name" gorm:"size:150"`
	LastName         string     `json:"last_name" gorm:"size:150"`
	Bio              string     `json:"bio" gorm:"type:text"`
	Role             Role       `json:"role" gorm:"size:20;not null;default:'user'"`
	IsSuperuser      bool       `json:"-" gorm:"default:false"`
	ConfirmationHash *string    `json:"-" gorm:"size:255"` // bcrypt hash, never the raw code
	CodeIssuedAt     *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"-"`
	UpdatedAt        time.Time  `json:"-"`
}

// IsAdmin reports whether the user has admin privileges.
// Superusers are always admins regardless of the stored role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.IsSuperuser
}

// IsModerator reports whether the user can moderate content.
func (u *User) IsModerator() bool {
	return u.Role == RoleModerator || u.IsAdmin()
}
