package git

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// IsGitRepo checks if the path is a git repository
func IsGitRepo(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}

// FindRepoRoot walks up from start to the first git repository
func FindRepoRoot(start string) (string, error) {
	path, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		if IsGitRepo(path) {
			return path, nil
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", &NotARepoError{Path: start}
		}
		path = parent
	}
}

// GitDir returns the directory holding the repository data (usually <root>/.git)
func GitDir(root string) (string, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return "", err
	}

	storage, ok := repo.Storer.(*filesystem.Storage)
	if !ok {
		return "", fmt.Errorf("repository at %s is not stored on disk", root)
	}
	return storage.Filesystem().Root(), nil
}

// HooksDir returns the directory git runs hooks from. hooksPath is the value
// of core.hooksPath; relative values are resolved against the worktree root.
func HooksDir(root, hooksPath string) (string, error) {
	if hooksPath != "" {
		if hooksPath[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			hooksPath = filepath.Join(home, hooksPath[1:])
		}
		if !filepath.IsAbs(hooksPath) {
			hooksPath = filepath.Join(root, hooksPath)
		}
		return hooksPath, nil
	}

	gitDir, err := GitDir(root)
	if err != nil {
		return "", err
	}
	return filepath.Join(gitDir, "hooks"), nil
}

// NotARepoError indicates no repository was found above a path
type NotARepoError struct {
	Path string
}

func (e *NotARepoError) Error() string {
	return "not a git repository (or any parent up to /): " + e.Path
}
