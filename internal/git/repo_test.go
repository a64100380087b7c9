package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	// t.TempDir may sit behind a symlink (macOS /var -> /private/var)
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	return resolved
}

func TestFindRepoRoot(t *testing.T) {
	root := initRepo(t)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	got, err := FindRepoRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	_, err = FindRepoRoot(t.TempDir())
	var notRepo *NotARepoError
	assert.ErrorAs(t, err, &notRepo)
}

func TestHooksDir(t *testing.T) {
	root := initRepo(t)

	dir, err := HooksDir(root, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".git", "hooks"), dir)

	dir, err = HooksDir(root, ".githooks")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, ".githooks"), dir)

	dir, err = HooksDir(root, "/opt/hooks")
	require.NoError(t, err)
	assert.Equal(t, "/opt/hooks", dir)
}
