// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/blog-engine/internal/store"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the research cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [topic]",
	Short: "Drop cached research results",
	Long: `Clear removes cached provider results for the given topic, or every
cached result when no topic is given. Topics match case-insensitively.`,
	RunE: runCacheClear,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	rootCmd.AddCommand(cacheCmd)
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	s, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer s.Close()

	topic := strings.Join(args, " ")
	n, err := s.Invalidate(cmd.Context(), topic)
	if err != nil {
		return err
	}

	if topic == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d cached result(s)\n", n)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d cached result(s) for %q\n", n, topic)
	}
	return nil
}
