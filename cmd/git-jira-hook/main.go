package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/roneystein/git-jira-hook/internal/config"
	"github.com/roneystein/git-jira-hook/internal/hook"
	"github.com/roneystein/git-jira-hook/internal/i18n"
	"github.com/roneystein/git-jira-hook/internal/jira"
	"github.com/roneystein/git-jira-hook/internal/ui"

	"github.com/spf13/cobra"
)

// Version is overridden at build time with -ldflags "-X main.Version=..."
var Version = "0.1.0"

var (
	configFile string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "git-jira-hook <commit-msg-file>",
		Short:         "git commit-msg hook that checks and annotates the referenced JIRA issue",
		Version:       Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          run,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "settings file (default: <user config dir>/"+config.FileName+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")

	rootCmd.AddCommand(newInstallCmd(), newUninstallCmd(), newConfigCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		// Rejections were already explained to the user
		var stateErr *hook.StateError
		if !errors.As(err, &stateErr) && !errors.Is(err, hook.ErrNoCommitFile) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	if len(args) == 0 {
		logger.Error(i18n.Default().Get("error.githook.nocommitfile"))
		return hook.ErrNoCommitFile
	}

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// git runs hooks from the top of the worktree
	gitSettings := config.LoadGitSettings(".")

	msgs, err := i18n.Load(gitSettings.Language)
	if err != nil {
		logger.Warn("falling back to English messages", "language", gitSettings.Language, "error", err)
		msgs = i18n.Default()
	}

	printer := ui.NewPrinter(os.Stderr, ui.NewRenderer(os.Stderr))
	printer.Banner(msgs, Version)

	runner := &hook.Runner{
		Config:   cfg,
		Git:      gitSettings,
		Messages: msgs,
		Printer:  printer,
		Log:      logger,
		Version:  Version,
	}
	if client := newJiraClient(gitSettings, logger); client != nil {
		runner.Resolver = client
	}

	return runner.Run(cmd.Context(), args[0])
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.LoadFile(configFile)
	}
	return config.Load()
}

// newJiraClient returns nil when JIRA is not configured or the credentials are unusable
func newJiraClient(s *config.GitSettings, logger *slog.Logger) *jira.Client {
	if !s.HasJira() {
		return nil
	}

	password, err := s.Password()
	if err != nil {
		logger.Warn("ignoring JIRA credentials", "error", err)
		return nil
	}

	client := jira.NewClient(s.JiraAddress, s.JiraUsername, password)
	if s.APIVersion != "" {
		client.APIVersion = s.APIVersion
	}
	return client
}
