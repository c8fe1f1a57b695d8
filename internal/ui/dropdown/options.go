package dropdown

import (
	"fmt"
	"strings"
	"time"

	"unibooks/internal/domain"
	"unibooks/internal/ui/search"
)

// Options configures a dropdown. The caller binds the items and labels.
type Options struct {
	Items []domain.SearchItem

	Placeholder      string
	EmptyMessage     string
	NoResultsMessage string // may contain {query}
	NoResultsHint    string
	JumpToHint       string

	Policy          search.Policy
	TypeAheadWindow time.Duration

	// OnSelect receives the chosen item before the overlay closes
	OnSelect func(item domain.SearchItem)

	Styles *Styles
	// Now is the clock used for type-ahead; defaults to time.Now
	Now func() time.Time
}

// Validate checks that the required labels are bound
func (o Options) Validate() error {
	var missing []string
	if o.Placeholder == "" {
		missing = append(missing, "Placeholder")
	}
	if o.EmptyMessage == "" {
		missing = append(missing, "EmptyMessage")
	}
	if o.NoResultsMessage == "" {
		missing = append(missing, "NoResultsMessage")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required labels: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (o Options) withDefaults() Options {
	if o.Styles == nil {
		o.Styles = NewStyles()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
