package requests

import (
	"time"

	"github.com/JaimeStill/intake/internal/classifier"
)

// ID identifies a stored request. Its format belongs to the store driver that assigned it.
type ID string

// Status is the workflow state of a request.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// Request is a persisted contact request.
type Request struct {
	ID        ID        `json:"id"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Service   string    `json:"service"`
	Message   string    `json:"message"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewRequest carries the caller-supplied fields of a request about to be stored.
// Identity and timestamps are assigned by the Store.
type NewRequest struct {
	FullName string
	Email    string
	Phone    string
	Service  string
	Message  string
	Status   Status
}

// CreateCommand is a normalized and validated intake submission.
type CreateCommand struct {
	FullName string `json:"fullName" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Phone    string `json:"phone" validate:"required,max=30,phone"`
	Service  string `json:"service" validate:"required,max=120"`
	Message  string `json:"message" validate:"required,max=2000"`
}

// CreateResult pairs the stored request with the classification that set its status.
type CreateResult struct {
	Request Request           `json:"request"`
	AI      classifier.Result `json:"ai"`
}

func (c CreateCommand) newRequest(status Status) NewRequest {
	return NewRequest{
		FullName: c.FullName,
		Email:    c.Email,
		Phone:    c.Phone,
		Service:  c.Service,
		Message:  c.Message,
		Status:   status,
	}
}
