package domain

import (
	"strings"
	"time"
)

type User struct {
	ID          string    `db:"id" json:"id"`
	Email       string    `db:"email" json:"email"`
	DisplayName string    `db:"display_name" json:"displayName,omitempty"`
	Role        Role      `db:"role" json:"role"`
	Avatar      *string   `db:"avatar" json:"avatar,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// UserPatch carries the profile fields a user may change about themselves.
// Nil fields are left untouched.
type UserPatch struct {
	DisplayName *string `json:"displayName,omitempty"`
	Avatar      *string `json:"avatar,omitempty"`
}

func (p UserPatch) IsEmpty() bool {
	return p.DisplayName == nil && p.Avatar == nil
}

// Normalize fills the defaults the identity provider may leave out: display
// name falls back to the email address and an unknown role becomes customer.
func (u *User) Normalize(now time.Time) {
	if u == nil {
		return
	}
	if strings.TrimSpace(u.DisplayName) == "" {
		u.DisplayName = u.Email
	}
	if !u.Role.Valid() {
		u.Role = RoleCustomer
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
}

// Initial returns the single letter shown in the avatar fallback.
func (u *User) Initial() string {
	if u == nil {
		return "U"
	}
	for _, candidate := range []string{u.DisplayName, u.Email} {
		candidate = strings.TrimSpace(candidate)
		if candidate != "" {
			return strings.ToUpper(string([]rune(candidate)[0]))
		}
	}
	return "U"
}

func (u *User) IsStaff() bool {
	return u != nil && u.Role.IsStaff()
}
