package salesperson

// internal/domain/salesperson/entity.go
import (
	"regexp"
	"time"
)

// Salesperson is a staff record. UserID is a weak link to an auth identity;
// it may dangle and is rendered as absent when it does.
type Salesperson struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	UserID    *int64    `json:"user_id,omitempty" db:"user_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type CreateSalespersonRequest struct {
	Name   string `json:"name" binding:"required"`
	Email  string `json:"email" binding:"required,email"`
	UserID *int64 `json:"user_id"`
}

type UpdateSalespersonRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email" binding:"omitempty,email"`
	UserID *int64  `json:"user_id"`
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidEmail is the domain-level check shared by create and update.
func ValidEmail(email string) bool {
	return emailRe.MatchString(email)
}
