package git

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHookSectionQuotesBinary(t *testing.T) {
	section := HookSection("/opt/it's here/git-jira-hook")

	assert.True(t, strings.HasPrefix(section, sectionBegin+"\n"))
	assert.True(t, strings.HasSuffix(section, sectionEnd+"\n"))
	assert.Contains(t, section, `'/opt/it'\''s here/git-jira-hook' "$1" || exit $?`)
}

func TestInjectHookSection(t *testing.T) {
	section := HookSection("/bin/hook")

	t.Run("new file", func(t *testing.T) {
		assert.Equal(t, shebang+section, InjectHookSection("", section))
	})

	t.Run("append to user hook", func(t *testing.T) {
		user := "#!/bin/sh\necho user"
		got := InjectHookSection(user, section)
		assert.Equal(t, user+"\n\n"+section, got)
	})

	t.Run("replace existing section only", func(t *testing.T) {
		existing := "#!/bin/sh\necho before\n" + HookSection("/old/hook") + "echo after\n"
		got := InjectHookSection(existing, section)
		assert.Equal(t, "#!/bin/sh\necho before\n"+section+"echo after\n", got)
	})

	t.Run("idempotent", func(t *testing.T) {
		once := InjectHookSection("", section)
		assert.Equal(t, once, InjectHookSection(once, section))
	})
}

func TestRemoveHookSection(t *testing.T) {
	content := "#!/bin/sh\necho before\n\n" + HookSection("/bin/hook") + "echo after\n"

	got, found := RemoveHookSection(content)
	assert.True(t, found)
	assert.Equal(t, "#!/bin/sh\necho before\necho after\n", got)

	got, found = RemoveHookSection("#!/bin/sh\necho user\n")
	assert.False(t, found)
	assert.Equal(t, "#!/bin/sh\necho user\n", got)
}

func TestInstallAndUninstallHook(t *testing.T) {
	hooksDir := filepath.Join(t.TempDir(), "hooks")

	path, err := InstallHook(hooksDir, "/usr/local/bin/git-jira-hook")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(hooksDir, HookName), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	removed, err := UninstallHook(hooksDir)
	require.NoError(t, err)
	assert.True(t, removed)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	removed, err = UninstallHook(hooksDir)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestUninstallKeepsUserContent(t *testing.T) {
	hooksDir := t.TempDir()
	path := filepath.Join(hooksDir, HookName)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\necho user\n"), 0644))

	_, err := InstallHook(hooksDir, "/bin/hook")
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	removed, err := UninstallHook(hooksDir)
	require.NoError(t, err)
	assert.True(t, removed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho user\n", string(data))
}
