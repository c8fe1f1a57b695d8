package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	env "github.com/netflix/go-env"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"

	"unibooks/internal/eventbus"
)

// DefaultFileName is the config file looked up in the working directory
const DefaultFileName = "unibooks.toml"

// Empty-query policies
const (
	PolicyShowAll        = "show_all"
	PolicyHideUntilTyped = "hide_until_typed"
)

// ErrConfigNotFound is returned when an explicit config path does not exist
var ErrConfigNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Version int             `toml:"version"`
	Catalog string          `toml:"catalog" env:"UNIBOOKS_CATALOG"`
	Overlay OverlaySettings `toml:"overlay"`
	Search  SearchSettings  `toml:"search"`
	Labels  Labels          `toml:"labels"`
}

// OverlaySettings controls overlay geometry, in terminal cells
type OverlaySettings struct {
	MinWidth       int     `toml:"min_width" env:"UNIBOOKS_OVERLAY_MIN_WIDTH"`
	MaxWidth       int     `toml:"max_width" env:"UNIBOOKS_OVERLAY_MAX_WIDTH"`
	ViewportMargin int     `toml:"viewport_margin" env:"UNIBOOKS_OVERLAY_MARGIN"`
	OffsetY        int     `toml:"offset_y" env:"UNIBOOKS_OVERLAY_OFFSET_Y"`
	MaxHeightRatio float64 `toml:"max_height_ratio" env:"UNIBOOKS_OVERLAY_MAX_HEIGHT_RATIO"`
	DimBackground  bool    `toml:"dim_background" env:"UNIBOOKS_OVERLAY_DIM_BACKGROUND"`
}

// SearchSettings controls filtering and navigation
type SearchSettings struct {
	EmptyQuery      string `toml:"empty_query" env:"UNIBOOKS_SEARCH_EMPTY_QUERY"`
	TypeAheadWindow string `toml:"type_ahead_window" env:"UNIBOOKS_SEARCH_TYPE_AHEAD_WINDOW"`
}

// Labels are the user-visible texts of the search dropdown
type Labels struct {
	Placeholder      string `toml:"placeholder" env:"UNIBOOKS_LABEL_PLACEHOLDER"`
	EmptyMessage     string `toml:"empty_message" env:"UNIBOOKS_LABEL_EMPTY"`
	NoResultsMessage string `toml:"no_results_message" env:"UNIBOOKS_LABEL_NO_RESULTS"`
	NoResultsHint    string `toml:"no_results_hint" env:"UNIBOOKS_LABEL_NO_RESULTS_HINT"`
	JumpToHint       string `toml:"jump_to_hint" env:"UNIBOOKS_LABEL_JUMP_TO"`
}

// TypeAhead returns the parsed type-ahead window
func (s SearchSettings) TypeAhead() time.Duration {
	d, err := time.ParseDuration(s.TypeAheadWindow)
	if err != nil {
		return defaultTypeAhead
	}
	return d
}

const defaultTypeAhead = 200 * time.Millisecond

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	logger   *zap.Logger
	filePath string
}

// NewConfigService creates a config service bound to filePath.
// An empty path means DefaultFileName in the working directory.
func NewConfigService(filePath string, bus eventbus.EventBus, logger *zap.Logger) ConfigService {
	if filePath == "" {
		filePath = DefaultFileName
	}
	if bus == nil {
		bus = eventbus.NullBus{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &configService{
		bus:      bus,
		logger:   logger,
		filePath: filePath,
	}
}

// Load loads the bound config file, falling back to defaults when it is missing.
// Environment overrides are applied in both cases.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrConfigNotFound) {
		cs.logger.Info("config file missing, using defaults", zap.String("path", cs.filePath))
		cfg = DefaultConfig()
		if err := ApplyEnv(cfg); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	return cfg, nil
}

// Save saves the configuration to the bound file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	return nil
}

// LoadFromPath loads configuration from a specific path.
// Fields missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	cs.logger.Debug("config loaded", zap.String("path", path))
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	cs.logger.Info("config saved", zap.String("path", path))
	return nil
}

// ApplyEnv overrides config fields from UNIBOOKS_* environment variables
func ApplyEnv(cfg *Config) error {
	if _, err := env.UnmarshalFromEnviron(cfg); err != nil {
		return fmt.Errorf("failed to parse environment variables: %w", err)
	}
	return nil
}

// Validate clamps numeric settings into usable ranges and rejects unknown enums
func (c *Config) Validate() error {
	o := &c.Overlay
	if o.MinWidth < 10 {
		o.MinWidth = 10
	}
	if o.MaxWidth < o.MinWidth {
		o.MaxWidth = o.MinWidth
	}
	if o.ViewportMargin < 0 {
		o.ViewportMargin = 0
	}
	if o.OffsetY < 0 {
		o.OffsetY = 0
	}
	if o.MaxHeightRatio <= 0 || o.MaxHeightRatio > 1 {
		o.MaxHeightRatio = 0.8
	}

	switch c.Search.EmptyQuery {
	case PolicyShowAll, PolicyHideUntilTyped:
	case "":
		c.Search.EmptyQuery = PolicyShowAll
	default:
		return fmt.Errorf("unknown empty_query policy %q", c.Search.EmptyQuery)
	}

	// the dropdown cannot render without these
	defaults := DefaultConfig().Labels
	if c.Labels.Placeholder == "" {
		c.Labels.Placeholder = defaults.Placeholder
	}
	if c.Labels.EmptyMessage == "" {
		c.Labels.EmptyMessage = defaults.EmptyMessage
	}
	if c.Labels.NoResultsMessage == "" {
		c.Labels.NoResultsMessage = defaults.NoResultsMessage
	}

	if c.Search.TypeAheadWindow == "" {
		c.Search.TypeAheadWindow = defaultTypeAhead.String()
	} else if d, err := time.ParseDuration(c.Search.TypeAheadWindow); err != nil || d <= 0 {
		return fmt.Errorf("invalid type_ahead_window %q", c.Search.TypeAheadWindow)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Overlay: OverlaySettings{
			MinWidth:       40,
			MaxWidth:       80,
			ViewportMargin: 1,
			OffsetY:        0,
			MaxHeightRatio: 0.8,
		},
		Search: SearchSettings{
			EmptyQuery:      PolicyShowAll,
			TypeAheadWindow: defaultTypeAhead.String(),
		},
		Labels: Labels{
			Placeholder:      "Search books, chapters, documents...",
			EmptyMessage:     "Start typing to search",
			NoResultsMessage: `No results found for "{query}"`,
			NoResultsHint:    "Try searching for something else",
			JumpToHint:       "Jump to",
		},
	}
}
