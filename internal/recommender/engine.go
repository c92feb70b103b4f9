package recommender

import (
	"context"
	"sync"
	"time"

	"github.com/yildizm/bookrec/internal/catalog"
	"github.com/yildizm/bookrec/internal/logger"
)

// MaxK bounds the number of items a single request may ask for
const MaxK = 100

// Engine answers recommendation requests from an in-memory catalog
type Engine struct {
	mu       sync.RWMutex
	catalog  *catalog.Catalog
	registry *Registry
	log      *logger.Logger
}

// NewEngine creates an engine; a nil registry means DefaultRegistry
func NewEngine(c *catalog.Catalog, registry *Registry, log *logger.Logger) *Engine {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Engine{
		catalog:  c,
		registry: registry,
		log:      log.WithComponent("engine"),
	}
}

// SetCatalog swaps the catalog; in-flight requests finish on the old one
func (e *Engine) SetCatalog(c *catalog.Catalog) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.catalog = c
}

// Catalog returns the current catalog
func (e *Engine) Catalog() *catalog.Catalog {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.catalog
}

// Registry returns the engine's model registry
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Recommend implements Service
func (e *Engine) Recommend(ctx context.Context, req Request) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, WrapError(KindUnavailable, err, "request cancelled")
	}
	start := time.Now()

	k, err := normalizeK(req.K)
	if err != nil {
		return nil, err
	}
	model, err := e.registry.Get(req.Model)
	if err != nil {
		return nil, err
	}
	c := e.Catalog()
	if c == nil {
		return nil, NewError(KindUnavailable, "catalog not loaded")
	}
	for _, id := range req.Books {
		if _, ok := c.Book(id); !ok {
			return nil, NewError(KindValidation, "unknown book %d", id)
		}
	}

	if req.User == NoHistory && len(req.Books) == 0 {
		return &Result{
			Personalized: false,
			User:         NoHistory,
			Model:        model.Type(),
			Items:        Popularity{}.Predict(c, nil, k),
		}, nil
	}
	if req.User != NoHistory && req.User <= 0 {
		return nil, NewError(KindValidation, "user id must be positive, got %d", req.User)
	}

	history := mergeHistory(c, req.User, req.Books)
	if len(history) == 0 {
		return nil, WrapError(KindNotFound, ErrUnknownUser, "user %d has no reading history", req.User)
	}

	items := model.Predict(c, history, k)
	e.log.DebugWithFields("recommended", []logger.Field{
		logger.User(req.User),
		logger.Model(model.Type().String()),
		logger.Count(len(items)),
		logger.Duration(time.Since(start)),
	})

	return &Result{
		Personalized: true,
		User:         req.User,
		Model:        model.Type(),
		History:      c.Resolve(history),
		Items:        items,
	}, nil
}

// Popular implements Service
func (e *Engine) Popular(ctx context.Context, k int) ([]ScoredBook, error) {
	if err := ctx.Err(); err != nil {
		return nil, WrapError(KindUnavailable, err, "request cancelled")
	}
	k, err := normalizeK(k)
	if err != nil {
		return nil, err
	}
	c := e.Catalog()
	if c == nil {
		return nil, NewError(KindUnavailable, "catalog not loaded")
	}
	return Popularity{}.Predict(c, nil, k), nil
}

// Books implements Service
func (e *Engine) Books(ctx context.Context) ([]catalog.Book, error) {
	c := e.Catalog()
	if c == nil {
		return nil, NewError(KindUnavailable, "catalog not loaded")
	}
	return c.Books(), nil
}

// Users implements Service
func (e *Engine) Users(ctx context.Context) ([]int64, error) {
	c := e.Catalog()
	if c == nil {
		return nil, NewError(KindUnavailable, "catalog not loaded")
	}
	return c.Users(), nil
}

// Models implements Service
func (e *Engine) Models(ctx context.Context) ([]ModelType, error) {
	return e.registry.List(), nil
}

func normalizeK(k int) (int, error) {
	switch {
	case k == 0:
		return DefaultK, nil
	case k < 0 || k > MaxK:
		return 0, NewError(KindValidation, "k must be between 1 and %d, got %d", MaxK, k)
	default:
		return k, nil
	}
}

// mergeHistory returns the user's own books followed by any extra books,
// without duplicates.
func mergeHistory(c *catalog.Catalog, user int64, extra []int64) []int64 {
	var history []int64
	if user != NoHistory {
		history = c.History(user)
	}
	seen := make(map[int64]struct{}, len(history)+len(extra))
	for _, id := range history {
		seen[id] = struct{}{}
	}
	for _, id := range extra {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		history = append(history, id)
	}
	return history
}
