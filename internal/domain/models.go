package domain

import "fmt"

// Category classifies a search item for grouping
type Category string

// Known categories, in display order
const (
	CategoryBooks     Category = "books"
	CategoryChapters  Category = "chapters"
	CategoryDocuments Category = "documents"
	CategoryUsers     Category = "users"
)

// ParseCategory converts a raw string into a known Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := categoryIndex[c]; !ok {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

// BadgeColor names the palette a badge is drawn with
type BadgeColor string

const (
	BadgePrimary   BadgeColor = "primary"
	BadgeSecondary BadgeColor = "secondary"
	BadgeSuccess   BadgeColor = "success"
	BadgeWarning   BadgeColor = "warning"
	BadgeDanger    BadgeColor = "danger"
	BadgeMedium    BadgeColor = "medium"
)

// ParseBadgeColor validates a badge color. Empty means no color.
func ParseBadgeColor(s string) (BadgeColor, error) {
	switch c := BadgeColor(s); c {
	case "", BadgePrimary, BadgeSecondary, BadgeSuccess, BadgeWarning, BadgeDanger, BadgeMedium:
		return c, nil
	default:
		return "", fmt.Errorf("unknown badge color %q", s)
	}
}

// SearchItem is a single searchable entry. Optional text fields are empty when absent.
type SearchItem struct {
	ID         string
	Category   Category
	Title      string
	Subtitle   string
	Metadata   string
	Icon       string
	Badge      string
	BadgeColor BadgeColor
	Data       any
}

// CategoryConfig describes how a category section is rendered
type CategoryConfig struct {
	Key          Category
	Label        string
	Icon         string
	EmptyMessage string
}

var categoryConfigs = [...]CategoryConfig{
	{Key: CategoryBooks, Label: "Books", Icon: "book-outline", EmptyMessage: "No books found"},
	{Key: CategoryChapters, Label: "Chapters", Icon: "document-text-outline", EmptyMessage: "No chapters found"},
	{Key: CategoryDocuments, Label: "Documents", Icon: "document-outline", EmptyMessage: "No documents found"},
	{Key: CategoryUsers, Label: "Users", Icon: "person-outline", EmptyMessage: "No users found"},
}

var categoryIndex = func() map[Category]int {
	idx := make(map[Category]int, len(categoryConfigs))
	for i, cfg := range categoryConfigs {
		idx[cfg.Key] = i
	}
	return idx
}()

// ConfigFor returns the rendering config of a category.
// Unknown categories get a config labelled with the raw key.
func ConfigFor(c Category) CategoryConfig {
	if i, ok := categoryIndex[c]; ok {
		return categoryConfigs[i]
	}
	return CategoryConfig{Key: c, Label: string(c), Icon: "", EmptyMessage: "No results found"}
}

// Categories returns the category table in display order
func Categories() []CategoryConfig {
	out := make([]CategoryConfig, len(categoryConfigs))
	copy(out, categoryConfigs[:])
	return out
}
