// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/agent"
	"github.com/pdiddy/blog-engine/internal/server"
	"github.com/pdiddy/blog-engine/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the article pipeline over HTTP",
	Long: `Serve exposes POST /generate, which takes {"topic", "tone"} and returns
the finished article. When the cache is enabled, generated articles are
also archived and browsable through GET /articles and GET /articles/{slug}.

The server stops gracefully on SIGINT or SIGTERM.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	c := cfg
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		c.Server.Addr = addr
	}

	var (
		opts    []agent.Option
		archive server.Archive
	)
	if c.Cache.Enabled {
		s, err := store.Open(c.Store)
		if err != nil {
			return err
		}
		defer s.Close()
		archive = s
		opts = append(opts, agent.WithCache(s))
	}

	if c.Generation.APIKey == "" {
		logger.Warn().Msg("no generation API key configured; articles will contain placeholder text")
	}

	srv := server.New(agent.New(c, logger, opts...), archive, c.Server, logger)
	return srv.ListenAndServe(cmd.Context())
}
