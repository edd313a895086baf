// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/blog-engine/internal/store"
	"github.com/pdiddy/blog-engine/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [query]",
	Short: "List archived articles",
	Long: `History lists articles archived by earlier runs, newest first. A query
matches topic and title; --keyword filters by SEO keyword. Articles are
archived only while the cache is enabled.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("query", "", "match topic or title")
	historyCmd.Flags().String("keyword", "", "filter by keyword")
	historyCmd.Flags().Int("limit", 20, "maximum number of articles")
	historyCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "table", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format %q: use table, json, or yaml", format)
	}

	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = strings.Join(args, " ")
	}
	keyword, _ := cmd.Flags().GetString("keyword")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	articles, err := s.ListArticles(cmd.Context(), store.ArticleQuery{
		Query:   query,
		Keyword: keyword,
		Limit:   limit,
	})
	if err != nil {
		return err
	}

	return formatHistory(cmd.OutOrStdout(), articles, format)
}

// historyEntry is the exported shape of one archived article.
type historyEntry struct {
	ID        string         `json:"id" yaml:"id"`
	Topic     string         `json:"topic" yaml:"topic"`
	Tone      types.Tone     `json:"tone" yaml:"tone"`
	Degraded  bool           `json:"degraded" yaml:"degraded"`
	CreatedAt string         `json:"created_at" yaml:"created_at"`
	Metadata  types.Metadata `json:"metadata" yaml:"metadata"`
}

func formatHistory(w io.Writer, articles []types.Article, format string) error {
	entries := make([]historyEntry, len(articles))
	for i, a := range articles {
		entries[i] = historyEntry{
			ID:        a.ID,
			Topic:     a.Topic,
			Tone:      a.Tone,
			Degraded:  a.Degraded,
			CreatedAt: a.CreatedAt.Format("2006-01-02 15:04:05"),
			Metadata:  a.Metadata,
		}
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(articles) == 0 {
		fmt.Fprintln(w, "No articles found.")
		return nil
	}

	fmt.Fprintf(w, "%-19s  %-40s  %-30s  %-11s  %s\n",
		"Created", "Title", "Slug", "Tone", "Reading")
	fmt.Fprintln(w, strings.Repeat("-", 115))

	for _, e := range entries {
		title := truncate(e.Metadata.Title, 40)
		if e.Degraded {
			title = truncate("* "+e.Metadata.Title, 40)
		}
		fmt.Fprintf(w, "%-19s  %-40s  %-30s  %-11s  %s\n",
			e.CreatedAt, title, truncate(e.Metadata.Slug, 30), e.Tone,
			types.FormatReadingTime(e.Metadata.ReadingTime))
	}

	fmt.Fprintf(w, "\n%d articles\n", len(entries))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
