package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roneystein/git-jira-hook/internal/config"
	"github.com/roneystein/git-jira-hook/internal/git"

	"github.com/spf13/cobra"
)

func newInstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "install",
		Short: "Install the commit-msg hook in the current repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hooksDir, err := currentHooksDir()
			if err != nil {
				return err
			}

			binary, err := binaryPath()
			if err != nil {
				return fmt.Errorf("failed to get binary path: %w", err)
			}

			path, err := git.InstallHook(hooksDir, binary)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Installed %s\n", path)
			return nil
		},
	}
}

func newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the commit-msg hook from the current repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hooksDir, err := currentHooksDir()
			if err != nil {
				return err
			}

			removed, err := git.UninstallHook(hooksDir)
			if err != nil {
				return err
			}
			if !removed {
				fmt.Fprintln(cmd.OutOrStdout(), "No git-jira-hook section found")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed hook from %s\n", filepath.Join(hooksDir, git.HookName))
			return nil
		},
	}
}

func currentHooksDir() (string, error) {
	root, err := git.FindRepoRoot(".")
	if err != nil {
		return "", err
	}
	return git.HooksDir(root, config.LoadGitSettings(root).HooksPath)
}

// binaryPath returns the path to the current executable
func binaryPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	// Resolve symlinks to get actual path
	return filepath.EvalSymlinks(exe)
}
