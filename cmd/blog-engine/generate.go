// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/agent"
	"github.com/pdiddy/blog-engine/internal/export"
	"github.com/pdiddy/blog-engine/internal/store"
	"github.com/pdiddy/blog-engine/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Research a topic and write one article",
	Long: `Generate researches the topic, writes the article section by section,
and fills in its SEO metadata. The article is exported to the output
directory as Markdown plus JSON metadata, optionally with YAML and HTML,
and a summary is printed when it completes.

Without an API key every generation step yields placeholder text and the
article is reported as degraded.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("tone", string(types.ToneEducational), "writing tone: "+toneChoices())
	generateCmd.Flags().String("api-key", "", "generation API key (overrides config and secrets)")
	generateCmd.Flags().String("output-dir", "", "directory for exported files (default blog_output)")
	generateCmd.Flags().Bool("no-export", false, "print the summary without writing files")
	generateCmd.Flags().Bool("html", false, "also render the article to HTML")
	generateCmd.Flags().Bool("yaml", false, "also write the metadata as YAML")

	rootCmd.AddCommand(generateCmd)
}

func toneChoices() string {
	names := make([]string, len(types.Tones))
	for i, t := range types.Tones {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}

func validTone(s string) bool {
	for _, t := range types.Tones {
		if string(t) == s {
			return true
		}
	}
	return false
}

func runGenerate(cmd *cobra.Command, args []string) error {
	tone, _ := cmd.Flags().GetString("tone")
	if !validTone(tone) {
		return fmt.Errorf("invalid tone %q: choose one of %s", tone, toneChoices())
	}

	c := cfg
	if key, _ := cmd.Flags().GetString("api-key"); key != "" {
		c.Generation.APIKey = key
	}
	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		c.Output.Dir = dir
	}
	if html, _ := cmd.Flags().GetBool("html"); html {
		c.Output.HTML = true
	}
	if yml, _ := cmd.Flags().GetBool("yaml"); yml {
		c.Output.YAML = true
	}
	noExport, _ := cmd.Flags().GetBool("no-export")

	var opts []agent.Option
	var archive *store.Store
	if c.Cache.Enabled {
		s, err := store.Open(c.Store)
		if err != nil {
			return err
		}
		defer s.Close()
		archive = s
		opts = append(opts, agent.WithCache(s))
	}

	ctx := cmd.Context()
	a := agent.New(c, logger, opts...)
	article, err := a.Write(ctx, types.Request{
		Topic: strings.Join(args, " "),
		Tone:  tone,
	})
	if err != nil {
		return err
	}

	if archive != nil {
		if err := archive.SaveArticle(ctx, article); err != nil {
			logger.Warn().Err(err).Msg("archiving article")
		}
	}

	if !noExport {
		files, err := export.Write(article, c.Output, time.Now())
		if err != nil {
			return err
		}
		for _, f := range files.All() {
			logger.Info().Str("file", f).Msg("wrote")
		}
	}

	export.Summary(os.Stdout, article)
	return nil
}
