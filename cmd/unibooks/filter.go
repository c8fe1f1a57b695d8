package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"unibooks/internal/config"
	"unibooks/internal/domain"
	"unibooks/internal/ui/dropdown"
	"unibooks/internal/ui/search"
)

type filterOptions struct {
	*options
	policy string
	json   bool
}

func newFilterCmd(o *options) *cobra.Command {
	fo := &filterOptions{options: o}
	cmd := &cobra.Command{
		Use:   "filter [query]",
		Short: "Print grouped search results without the UI",
		Example: `  unibooks filter intro
  unibooks filter --json --catalog books.yaml "data structures"`,
		RunE: fo.run,
	}
	cmd.Flags().StringVar(&fo.policy, "policy", "", "blank query policy: show_all or hide_until_typed (default from config)")
	cmd.Flags().BoolVar(&fo.json, "json", false, "print JSON")
	return cmd
}

func (fo *filterOptions) run(cmd *cobra.Command, args []string) error {
	cfg, err := fo.loadConfig(nil)
	if err != nil {
		return err
	}
	items, _, err := fo.loadCatalog(cfg)
	if err != nil {
		return err
	}

	policyName := fo.policy
	if policyName == "" {
		policyName = cfg.Search.EmptyQuery
	}
	policy, err := search.ParsePolicy(policyName)
	if err != nil {
		return err
	}

	result := search.Evaluate(items, strings.Join(args, " "), policy)
	if fo.json {
		return writeJSON(cmd.OutOrStdout(), result)
	}
	writeText(cmd.OutOrStdout(), result, cfg.Labels)
	return nil
}

type jsonItem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle,omitempty"`
	Metadata   string `json:"metadata,omitempty"`
	Icon       string `json:"icon,omitempty"`
	Badge      string `json:"badge,omitempty"`
	BadgeColor string `json:"badge_color,omitempty"`
	Data       any    `json:"data,omitempty"`
}

type jsonGroup struct {
	Category string     `json:"category"`
	Label    string     `json:"label"`
	Items    []jsonItem `json:"items"`
}

type jsonResult struct {
	Query     string      `json:"query"`
	Count     int         `json:"count"`
	Groups    []jsonGroup `json:"groups"`
	Empty     bool        `json:"empty"`
	NoResults bool        `json:"no_results"`
}

func toJSONItem(item domain.SearchItem) jsonItem {
	return jsonItem{
		ID:         item.ID,
		Title:      item.Title,
		Subtitle:   item.Subtitle,
		Metadata:   item.Metadata,
		Icon:       item.Icon,
		Badge:      item.Badge,
		BadgeColor: string(item.BadgeColor),
		Data:       item.Data,
	}
}

func writeJSON(w io.Writer, r search.Result) error {
	out := jsonResult{
		Query:     r.Query,
		Count:     len(r.Rows),
		Groups:    make([]jsonGroup, 0, len(r.Groups)),
		Empty:     r.ShowEmptyState,
		NoResults: r.ShowNoResultsState,
	}
	for _, g := range r.Groups {
		jg := jsonGroup{Category: string(g.Config.Key), Label: g.Config.Label}
		for _, item := range g.Items {
			jg.Items = append(jg.Items, toJSONItem(item))
		}
		out.Groups = append(out.Groups, jg)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode results: %w", err)
	}
	return nil
}

func writeText(w io.Writer, r search.Result, labels config.Labels) {
	switch {
	case r.ShowEmptyState:
		fmt.Fprintln(w, labels.EmptyMessage)
		return
	case r.ShowNoResultsState:
		fmt.Fprintln(w, search.FormatNoResults(labels.NoResultsMessage, r.Query))
		if labels.NoResultsHint != "" {
			fmt.Fprintln(w, labels.NoResultsHint)
		}
		return
	}

	for i, g := range r.Groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s %s (%d)\n", dropdown.Glyph(g.Config.Icon), g.Config.Label, len(g.Items))
		for _, item := range g.Items {
			line := "  " + item.Title
			if detail := joinNonEmpty(" · ", item.Subtitle, item.Metadata); detail != "" {
				line += " · " + detail
			}
			if item.Badge != "" {
				line += " [" + item.Badge + "]"
			}
			fmt.Fprintln(w, line)
		}
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
