package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yildizm/bookrec/internal/catalog"
	"github.com/yildizm/bookrec/internal/config"
	"github.com/yildizm/bookrec/internal/logger"
	"github.com/yildizm/bookrec/internal/recommender"
	"github.com/yildizm/bookrec/internal/route"
	"github.com/yildizm/bookrec/internal/session"
	"github.com/yildizm/bookrec/internal/store"
	"github.com/yildizm/bookrec/internal/ui"
)

var (
	browseUser  string
	browseModel string
	browseFresh bool
)

func newBrowseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse recommendations interactively",
		Long: `Open the interactive browser.

Keys:
  tab / shift+tab   move focus between user, model and content
  [ / ]             back / forward through visited locations
  space             mark a book as read (or pick it in the creator)
  enter             submit
  r                 reload recommendations
  ?                 toggle help
  q                 quit

The last location and model are restored on the next start unless
--fresh is given or sessions are disabled in the config.`,
		Example: `  bookrec browse
  bookrec browse --user 3 --model popularity`,
		Args: cobra.NoArgs,
		RunE: runBrowse,
	}
	addBrowseFlags(cmd)
	return cmd
}

func addBrowseFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&browseUser, "user", "u", "", "start with this user selected")
	cmd.Flags().StringVarP(&browseModel, "model", "m", "", "recommendation model")
	cmd.Flags().BoolVar(&browseFresh, "fresh", false, "ignore the saved session")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// the TUI owns the terminal, so logs go to a file or nowhere
	log := newLogger("bookrec")
	logFile, err := openLogFile(cfg.UI.LogFile)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer func() { _ = logFile.Close() }()
		log.SetOutput(logFile)
	} else {
		log.SetOutput(io.Discard)
	}

	svc, engine, err := newService(cfg, log)
	if err != nil {
		return err
	}

	var sess *session.Store
	if cfg.Session.Enabled {
		sess, err = session.Open(config.ExpandPath(cfg.Session.Path))
		if err != nil {
			// a locked or corrupt session file should not block browsing
			log.Warn("session disabled: %v", err)
			sess = nil
		} else {
			defer func() { _ = sess.Close() }()
		}
	}

	start, model, err := startState(cfg, sess, cmd.Flags().Changed("user"))
	if err != nil {
		return err
	}

	st := store.New(svc, store.Options{
		Model:   model,
		K:       cfg.Recommend.K,
		Timeout: cfg.Recommend.Timeout,
		Logger:  log,
	})
	opts := ui.Options{
		Title:        "bookrec",
		Start:        start,
		HistoryLimit: cfg.UI.HistoryLimit,
		Logger:       log,
	}
	if sess != nil {
		opts.Session = sess
	}
	container := ui.NewContainer(st, opts)
	program := ui.NewProgram(container)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if cfg.Data.Watch && engine != nil && cfg.Data.CatalogPath != "" {
		if err := startWatcher(ctx, cfg.Data.CatalogPath, log, func(c *catalog.Catalog) {
			engine.SetCatalog(c)
			program.Send(ui.CatalogReloadedMsg{})
		}); err != nil {
			return err
		}
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("browser failed: %w", err)
	}
	return nil
}

// startState picks the first location and model: flags, then the saved
// session, then config. An unknown --model is an error; an unknown saved
// model is ignored.
func startState(cfg *config.Config, sess *session.Store, userFlag bool) (route.Location, recommender.ModelType, error) {
	registry := recommender.DefaultRegistry()
	start := route.Root
	model := recommender.ModelType(cfg.Recommend.Model)

	if browseModel != "" && !registry.IsRegistered(recommender.ModelType(browseModel)) {
		return start, model, fmt.Errorf("unknown model %q (available: %v)", browseModel, registry.List())
	}

	if sess != nil && !browseFresh {
		if loc, err := sess.LastLocation(); err == nil {
			start = loc
		}
		if m, err := sess.LastModel(); err == nil && registry.IsRegistered(m) {
			model = m
		}
	}

	if userFlag {
		start = route.WithUser(route.Root, route.ParseSelection(browseUser))
	}
	if browseModel != "" {
		model = recommender.ModelType(browseModel)
	}
	return start, model, nil
}

func startWatcher(ctx context.Context, path string, log *logger.Logger, onReload func(*catalog.Catalog)) error {
	w, err := catalog.NewWatcher(config.ExpandPath(path), onReload, log)
	if err != nil {
		return err
	}
	go func() {
		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("catalog watcher stopped: %v", err)
		}
	}()
	return nil
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	path = config.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	// #nosec G304 - path comes from the user's own config
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
