package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yildizm/bookrec/internal/api"
	"github.com/yildizm/bookrec/internal/catalog"
	"github.com/yildizm/bookrec/internal/emoji"
)

var serveAddr string

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve recommendations over HTTP",
		Long: `Serve the local catalog as a JSON API that other bookrec instances can use
as their remote endpoint.

Routes:
  GET /api/health
  GET /api/models
  GET /api/books
  GET /api/users
  GET /api/popular?k=
  GET /api/recommendations?user=&model=&books=&k=

The server stops gracefully on SIGINT or SIGTERM.`,
		Example: `  bookrec serve
  bookrec serve --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger("serve")

	// serve always answers from the local catalog
	engine, err := newEngine(cfg, log)
	if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Data.Watch && cfg.Data.CatalogPath != "" {
		if err := startWatcher(ctx, cfg.Data.CatalogPath, log, func(c *catalog.Catalog) {
			engine.SetCatalog(c)
			log.Info("catalog reloaded: %d books", len(c.Books()))
		}); err != nil {
			return err
		}
	}

	server := api.New(engine, api.Config{
		Addr:            addr,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		RequestTimeout:  cfg.Recommend.Timeout,
	}, log)

	fmt.Fprintf(cmd.ErrOrStderr(), "%s bookrec serving %d books on %s\n",
		emoji.GetEmoji("server"), len(engine.Catalog().Books()), addr)
	return server.Run(ctx)
}
