package requests

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/JaimeStill/intake/pkg/query"
	"github.com/JaimeStill/intake/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "requests", "r").
	Project("id", "ID").
	Project("full_name", "FullName").
	Project("email", "Email").
	Project("phone", "Phone").
	Project("service", "Service").
	Project("message", "Message").
	Project("status", "Status").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = []query.SortField{
	{Field: "CreatedAt", Descending: true},
	{Field: "ID", Descending: true},
}

var insertColumns = []string{"id", "full_name", "email", "phone", "service", "message", "status"}

var pgCodes = repository.Codes{
	repository.CodeUniqueViolation: ErrDuplicate,
}

type postgresStore struct {
	db      *sql.DB
	builder *query.Builder
}

// NewPostgresStore creates a Store backed by the public.requests table.
// Timestamps come from column defaults, so created_at and updated_at share the transaction time.
func NewPostgresStore(db *sql.DB) Store {
	return &postgresStore{
		db:      db,
		builder: query.NewBuilder(projection, defaultSort...),
	}
}

func (s *postgresStore) Insert(ctx context.Context, r NewRequest) (Request, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return Request{}, fmt.Errorf("generate id: %w", err)
	}

	q := s.builder.BuildInsert(insertColumns...)
	args := []any{id, r.FullName, r.Email, r.Phone, r.Service, r.Message, r.Status}

	rec, err := repository.WithTx(ctx, s.db, func(tx *sql.Tx) (Request, error) {
		return repository.QueryOne(ctx, tx, q, args, scanRequest)
	})
	if err != nil {
		return Request{}, repository.MapError(err, nil, pgCodes)
	}
	return rec, nil
}

func (s *postgresStore) Count(ctx context.Context) (int, error) {
	return repository.Count(ctx, s.db, s.builder.BuildCount())
}

func (s *postgresStore) Find(ctx context.Context, skip, limit int) ([]Request, error) {
	q, args := s.builder.BuildPage(limit, skip)
	return repository.QueryMany(ctx, s.db, q, args, scanRequest)
}

func scanRequest(s repository.Scanner) (Request, error) {
	var (
		r  Request
		id uuid.UUID
	)
	err := s.Scan(
		&id,
		&r.FullName,
		&r.Email,
		&r.Phone,
		&r.Service,
		&r.Message,
		&r.Status,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return Request{}, err
	}

	r.ID = ID(id.String())
	r.CreatedAt = r.CreatedAt.UTC()
	r.UpdatedAt = r.UpdatedAt.UTC()
	return r, nil
}
