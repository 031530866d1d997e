package model

import "fmt"

type Role string

const (
	RoleOrganizer   Role = "organizer"
	RoleParticipant Role = "participant"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleOrganizer, RoleParticipant:
		return r, nil
	default:
		return "", fmt.Errorf("role must be either 'organizer' or 'participant', got %q", s)
	}
}

func (r Role) IsOrganizer() bool {
	return r == RoleOrganizer
}

// User never exposes its password hash in JSON.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

type NewUser struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Role     Role   `json:"role" validate:"required,oneof=organizer participant"`
}
