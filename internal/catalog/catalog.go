// Package catalog reads search items from YAML, TOML or JSON files.
package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"unibooks/internal/domain"
)

var (
	// ErrUnsupportedFormat is returned for unknown catalog file extensions
	ErrUnsupportedFormat = errors.New("unsupported catalog format")
	// ErrInvalidItem is returned when an item fails validation
	ErrInvalidItem = errors.New("invalid catalog item")
)

//go:embed sample.yaml
var sampleCatalog []byte

type fileItem struct {
	ID         string `yaml:"id" toml:"id" json:"id"`
	Category   string `yaml:"category" toml:"category" json:"category"`
	Title      string `yaml:"title" toml:"title" json:"title"`
	Subtitle   string `yaml:"subtitle" toml:"subtitle" json:"subtitle"`
	Metadata   string `yaml:"metadata" toml:"metadata" json:"metadata"`
	Icon       string `yaml:"icon" toml:"icon" json:"icon"`
	Badge      string `yaml:"badge" toml:"badge" json:"badge"`
	BadgeColor string `yaml:"badge_color" toml:"badge_color" json:"badge_color"`
	Data       any    `yaml:"data" toml:"data" json:"data"`
}

type fileCatalog struct {
	Items []fileItem `yaml:"items" toml:"items" json:"items"`
}

// Format is a catalog encoding
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from the file extension
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads and validates the catalog at path
func Load(path string) ([]domain.SearchItem, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	items, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return items, nil
}

// Sample returns the built-in demo catalog
func Sample() []domain.SearchItem {
	items, err := Parse(sampleCatalog, FormatYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded sample is invalid: %v", err))
	}
	return items
}

// Parse decodes catalog bytes in the given format
func Parse(data []byte, format Format) ([]domain.SearchItem, error) {
	var file fileCatalog
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &file)
	case FormatTOML:
		err = toml.Unmarshal(data, &file)
	case FormatJSON:
		err = json.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", format, err)
	}

	items := make([]domain.SearchItem, 0, len(file.Items))
	for i, fi := range file.Items {
		item, err := fi.toItem()
		if err != nil {
			return nil, fmt.Errorf("%w at position %d: %v", ErrInvalidItem, i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (fi fileItem) toItem() (domain.SearchItem, error) {
	category, err := domain.ParseCategory(fi.Category)
	if err != nil {
		return domain.SearchItem{}, err
	}
	if strings.TrimSpace(fi.Title) == "" {
		return domain.SearchItem{}, errors.New("title is required")
	}
	badgeColor, err := domain.ParseBadgeColor(fi.BadgeColor)
	if err != nil {
		return domain.SearchItem{}, err
	}

	id := fi.ID
	if id == "" {
		id = uuid.NewString()
	}
	icon := fi.Icon
	if icon == "" {
		icon = domain.ConfigFor(category).Icon
	}

	return domain.SearchItem{
		ID:         id,
		Category:   category,
		Title:      fi.Title,
		Subtitle:   fi.Subtitle,
		Metadata:   fi.Metadata,
		Icon:       icon,
		Badge:      fi.Badge,
		BadgeColor: badgeColor,
		Data:       fi.Data,
	}, nil
}
