package git

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// HookName is the git hook the binary is installed as
const HookName = "commit-msg"

// Section markers; only content between them is managed, the rest of an
// existing hook file is preserved.
const (
	sectionBegin = "# --- BEGIN GIT-JIRA-HOOK ---"
	sectionEnd   = "# --- END GIT-JIRA-HOOK ---"
)

const shebang = "#!/bin/sh\n"

// HookSection returns the managed section that runs binary on the message file
func HookSection(binary string) string {
	return sectionBegin + "\n" +
		"# This section is managed by git-jira-hook. Do not remove these markers.\n" +
		"if [ -x " + shellQuote(binary) + " ]; then\n" +
		"  " + shellQuote(binary) + " \"$1\" || exit $?\n" +
		"fi\n" +
		sectionEnd + "\n"
}

// InjectHookSection merges section into existing hook file content.
// If section markers are found, only the content between them is replaced.
// If no markers are found, the section is appended.
func InjectHookSection(existing, section string) string {
	if existing == "" {
		return shebang + section
	}

	beginIdx := strings.Index(existing, sectionBegin)
	endIdx := strings.Index(existing, sectionEnd)

	if beginIdx != -1 && endIdx != -1 && beginIdx < endIdx {
		endOfSection := endIdx + len(sectionEnd)
		if endOfSection < len(existing) && existing[endOfSection] == '\n' {
			endOfSection++
		}
		return existing[:lineStart(existing, beginIdx)] + section + existing[endOfSection:]
	}

	result := existing
	if !strings.HasSuffix(result, "\n") {
		result += "\n"
	}
	return result + "\n" + section
}

// RemoveHookSection removes the managed section from hook file content.
// Returns the remaining content, and true if a section was found.
func RemoveHookSection(content string) (string, bool) {
	beginIdx := strings.Index(content, sectionBegin)
	endIdx := strings.Index(content, sectionEnd)

	if beginIdx == -1 || endIdx == -1 || beginIdx > endIdx {
		return content, false
	}

	endOfSection := endIdx + len(sectionEnd)
	if endOfSection < len(content) && content[endOfSection] == '\n' {
		endOfSection++
	}

	before := strings.TrimRight(content[:lineStart(content, beginIdx)], "\n")
	after := content[endOfSection:]
	if before == "" {
		return after, true
	}
	return before + "\n" + after, true
}

// InstallHook writes the managed section into the commit-msg hook in hooksDir
// and returns the hook path
func InstallHook(hooksDir, binary string) (string, error) {
	if err := os.MkdirAll(hooksDir, 0755); err != nil {
		return "", fmt.Errorf("creating hooks directory: %w", err)
	}

	path := filepath.Join(hooksDir, HookName)
	existing, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	content := InjectHookSection(string(existing), HookSection(binary))
	if err := os.WriteFile(path, []byte(content), 0755); err != nil {
		return "", err
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(path, 0755); err != nil {
		return "", err
	}
	return path, nil
}

// UninstallHook removes the managed section from the commit-msg hook in
// hooksDir, deleting the file when nothing else is left in it. Returns false
// if no section was installed.
func UninstallHook(hooksDir string) (bool, error) {
	path := filepath.Join(hooksDir, HookName)
	existing, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	remaining, found := RemoveHookSection(string(existing))
	if !found {
		return false, nil
	}

	if strings.TrimSpace(strings.TrimPrefix(remaining, shebang)) == "" {
		return true, os.Remove(path)
	}
	return true, os.WriteFile(path, []byte(remaining), 0755)
}

func lineStart(s string, idx int) int {
	start := strings.LastIndex(s[:idx], "\n")
	if start == -1 {
		return 0
	}
	return start + 1
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
