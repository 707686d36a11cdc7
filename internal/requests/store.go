package requests

import "context"

// Store is the persistence driver behind the request System.
type Store interface {
	// Insert stores r, assigning its ID and setting CreatedAt and UpdatedAt to the same instant.
	Insert(ctx context.Context, r NewRequest) (Request, error)
	// Count returns the number of stored requests.
	Count(ctx context.Context) (int, error)
	// Find returns up to limit requests after skipping skip, newest first.
	// Requests created at the same instant are ordered by descending ID.
	Find(ctx context.Context, skip, limit int) ([]Request, error)
}
