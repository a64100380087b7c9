package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/roneystein/git-jira-hook/internal/config"
	"github.com/roneystein/git-jira-hook/internal/i18n"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective hook settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			path := configFile
			if path == "" {
				if path, err = config.Path(); err != nil {
					path = "(defaults)"
				}
			}

			printSettings(cmd.OutOrStdout(), path, cfg, config.LoadGitSettings("."))
			return nil
		},
	}
}

func printSettings(w io.Writer, path string, cfg *config.Config, s *config.GitSettings) {
	password := "(not set)"
	if s.EncodedPassword != "" {
		password = "(set)"
	}

	fmt.Fprintf(w, "settings file:     %s\n", path)
	fmt.Fprintf(w, "jira.address:      %s\n", s.JiraAddress)
	fmt.Fprintf(w, "jira.username:     %s\n", s.JiraUsername)
	fmt.Fprintf(w, "jira.password:     %s\n", password)
	fmt.Fprintf(w, "jira.projects:     %s\n", s.JiraProjects)
	fmt.Fprintf(w, "githook.language:  %s (%s)\n", s.Language, i18n.Match(s.Language))
	fmt.Fprintf(w, "core.commentChar:  %s\n", s.CommentChar)
	fmt.Fprintf(w, "footer:            %s\n", cfg.Hook.Footer)
	fmt.Fprintf(w, "timeout:           %s\n", cfg.Timeout())

	d := cfg.CommitDirectives(s.CommentChar)
	fmt.Fprintf(w, "directives:        communication=%q commit=%q assignee=%q\n", d.Communication, d.Commit, d.Assignee)

	fmt.Fprintln(w, "issue types:")
	for _, name := range cfg.IssueTypeNames() {
		statuses, _ := cfg.AcceptedStatuses(name)
		fmt.Fprintf(w, "  %s: %s\n", name, strings.Join(statuses, ", "))
	}
	fmt.Fprintf(w, "accepted links:    %s\n", strings.Join(cfg.IssueLinks.Accepted, ", "))
}
