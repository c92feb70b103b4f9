package cli

import (
	"fmt"

	"github.com/yildizm/bookrec/internal/catalog"
	"github.com/yildizm/bookrec/internal/client"
	"github.com/yildizm/bookrec/internal/config"
	"github.com/yildizm/bookrec/internal/logger"
	"github.com/yildizm/bookrec/internal/recommender"
)

// loadCatalog reads the configured catalog, or the bundled sample when none is set
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Sample(), nil
	}
	c, err := catalog.Load(config.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	return c, nil
}

// newEngine builds a local engine over the configured catalog
func newEngine(cfg *config.Config, log *logger.Logger) (*recommender.Engine, error) {
	c, err := loadCatalog(cfg.Data.CatalogPath)
	if err != nil {
		return nil, err
	}
	registry := recommender.DefaultRegistry()
	if cfg.Recommend.Model != "" {
		if err := registry.SetDefault(recommender.ModelType(cfg.Recommend.Model)); err != nil {
			return nil, err
		}
	}
	return recommender.NewEngine(c, registry, log.WithComponent("engine")), nil
}

// newRemote builds a client for the configured server
func newRemote(cfg *config.Config, log *logger.Logger) (*client.Remote, error) {
	return client.New(&client.Config{
		Endpoint:         cfg.Remote.Endpoint,
		Timeout:          cfg.Remote.Timeout,
		RateLimit:        cfg.Remote.RateLimit,
		Burst:            cfg.Remote.Burst,
		FailureThreshold: cfg.Remote.FailureThreshold,
		BreakerTimeout:   cfg.Remote.BreakerTimeout,
	}, log.WithComponent("remote"))
}

// newService returns the remote client when an endpoint is configured and
// the local engine otherwise. engine is nil in remote mode.
func newService(cfg *config.Config, log *logger.Logger) (svc recommender.Service, engine *recommender.Engine, err error) {
	if cfg.Remote.Endpoint != "" {
		remote, err := newRemote(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return remote, nil, nil
	}
	engine, err = newEngine(cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return engine, engine, nil
}
