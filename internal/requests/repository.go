package requests

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/intake/internal/classifier"
	"github.com/JaimeStill/intake/internal/events"
	"github.com/JaimeStill/intake/pkg/pagination"
)

type repo struct {
	store      Store
	publisher  events.Publisher
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a request repository implementing the System interface.
func New(
	store Store,
	publisher events.Publisher,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		store:      store,
		publisher:  publisher,
		logger:     logger.With("system", "requests"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*CreateResult, error) {
	ai := classifier.Classify(cmd.Service, cmd.Message)

	rec, err := r.store.Insert(ctx, cmd.newRequest(Status(ai.SuggestedStatus)))
	if err != nil {
		return nil, fmt.Errorf("%w: insert request: %w", ErrStorage, err)
	}

	r.logger.Info(
		"request created",
		"id", rec.ID,
		"status", rec.Status,
		"category", ai.Category,
		"priority", ai.Priority,
	)

	r.publish(ctx, rec, ai)

	return &CreateResult{Request: rec, AI: ai}, nil
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Request], error) {
	if err := page.Validate(r.pagination); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPage, err)
	}

	var (
		total int
		items []Request
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := r.store.Count(gctx)
		if err != nil {
			return fmt.Errorf("count requests: %w", err)
		}
		total = n
		return nil
	})

	if offset, ok := page.Offset(); ok {
		g.Go(func() error {
			found, err := r.store.Find(gctx, offset, page.Limit)
			if err != nil {
				return fmt.Errorf("find requests: %w", err)
			}
			items = found
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	result := pagination.NewPageResult(items, total, page)
	return &result, nil
}

func (r *repo) publish(ctx context.Context, rec Request, ai classifier.Result) {
	e := events.Event{
		Name:       events.RequestCreated,
		ID:         string(rec.ID),
		Status:     string(rec.Status),
		Category:   string(ai.Category),
		Priority:   string(ai.Priority),
		OccurredAt: time.Now().UTC(),
	}

	if err := r.publisher.Publish(ctx, e); err != nil {
		r.logger.Warn("event publish failed", "event", e.Name, "id", rec.ID, "error", err)
	}
}
