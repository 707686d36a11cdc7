package requests

import (
	"context"

	"github.com/JaimeStill/intake/pkg/pagination"
)

// System defines the public contract for request intake operations.
type System interface {
	Handler() *Handler

	// Create classifies cmd, stores it with the suggested status, and returns both.
	// cmd must already be normalized and validated.
	Create(ctx context.Context, cmd CreateCommand) (*CreateResult, error)

	// List returns one page of requests, newest first.
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Request], error)
}
