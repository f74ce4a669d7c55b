package domain

import (
	"strings"
	"time"
)

// Role classifies what a user does on the platform.
type Role string

const (
	RoleSeeker Role = "SEEKER"
	RoleWorker Role = "WORKER"
)

// ParseRole validates a free-text role string.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(raw))) {
	case RoleSeeker:
		return RoleSeeker, nil
	case RoleWorker:
		return RoleWorker, nil
	default:
		return "", ErrInvalidRole
	}
}

// User represents an identity plus its reputation record.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone"`
	PasswordHash   string    `json:"-"`
	Role           Role      `json:"role"`
	Skills         []string  `json:"skills"`
	Rating         *float64  `json:"rating"`
	TasksCompleted int       `json:"tasks_completed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (u *User) IsWorker() bool {
	return u != nil && u.Role == RoleWorker
}
