package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"unibooks/internal/catalog"
	"unibooks/internal/config"
	"unibooks/internal/domain"
	"unibooks/internal/eventbus"
	"unibooks/internal/logic"
	"unibooks/internal/ui"
)

// options holds the persistent flags and the logger built from them
type options struct {
	configPath  string
	catalogPath string
	logFile     string
	verbose     bool
	watch       bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	o := &options{logger: zap.NewNop()}

	cmd := &cobra.Command{
		Use:   "unibooks",
		Short: "University Books search in the terminal",
		Long: `University Books lists a catalog of books, chapters, documents and users.

Press / to open the search overlay, type to filter, and press enter to open
the highlighted result. Run without arguments to start the interactive UI.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env is optional
			_ = godotenv.Load()
			return o.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = o.logger.Sync()
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.runTUI(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&o.configPath, "config", config.DefaultFileName, "config file path")
	flags.StringVar(&o.catalogPath, "catalog", "", "catalog file (yaml, toml or json); defaults to the built-in sample")
	flags.StringVar(&o.logFile, "log-file", "unibooks.log", "log file path")
	flags.BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")
	cmd.Flags().BoolVar(&o.watch, "watch", true, "reload the catalog file when it changes")

	cmd.AddCommand(newFilterCmd(o), newConfigCmd(o), newCategoriesCmd())
	return cmd
}

// initLogger writes JSON logs to the log file; the TUI owns stdout
func (o *options) initLogger() error {
	cfg := zap.NewProductionConfig()
	if o.verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.OutputPaths = []string{o.logFile}
	cfg.ErrorOutputPaths = []string{o.logFile}

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	o.logger = logger
	return nil
}

func (o *options) loadConfig(bus eventbus.EventBus) (*config.Config, error) {
	cfg, err := config.NewConfigService(o.configPath, bus, o.logger.Named("config")).Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// loadCatalog resolves --catalog, then the config's catalog, then the
// built-in sample. The returned path is empty for the sample.
func (o *options) loadCatalog(cfg *config.Config) ([]domain.SearchItem, string, error) {
	path := o.catalogPath
	if path == "" {
		path = cfg.Catalog
	}
	if path == "" {
		items := catalog.Sample()
		o.logger.Info("using sample catalog", zap.Int("count", len(items)))
		return items, "", nil
	}

	items, err := catalog.Load(path)
	if err != nil {
		return nil, "", err
	}
	o.logger.Info("catalog loaded", zap.String("path", path), zap.Int("count", len(items)))
	return items, path, nil
}

func (o *options) runTUI(cmd *cobra.Command) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New(o.logger.Named("bus"))
	logEvents(bus, o.logger.Named("events"))

	cfg, err := o.loadConfig(bus)
	if err != nil {
		return err
	}
	items, path, err := o.loadCatalog(cfg)
	if err != nil {
		return err
	}
	cfg.Catalog = path

	model := ui.NewModel(bus, cfg, logic.NewMemoryItemStore(items), o.logger.Named("ui"))
	defer model.Close()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if o.watch && path != "" {
		w, err := catalog.NewWatcher(path, o.logger.Named("catalog"), func(items []domain.SearchItem) {
			p.Send(ui.CatalogReloadedMsg{Path: path, Items: items})
		})
		if err != nil {
			o.logger.Warn("catalog watch disabled", zap.Error(err))
		} else {
			go w.Run(ctx)
		}
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// logEvents records every bus event in the log file
func logEvents(bus eventbus.EventBus, logger *zap.Logger) {
	for _, t := range []eventbus.EventType{
		eventbus.EventOverlayOpened,
		eventbus.EventOverlayClosed,
		eventbus.EventItemSelected,
		eventbus.EventCatalogReloaded,
		eventbus.EventConfigLoaded,
		eventbus.EventConfigSaved,
	} {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			logger.Debug("event", zap.String("type", string(e.Type())), zap.Any("event", e))
		})
	}
}
