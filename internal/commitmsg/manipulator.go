// Package commitmsg reads, inspects and rewrites a git commit message file.
//
// A Manipulator is created per hook run. Load reads the message and extracts
// the override directives, the inspection methods tell the caller whether to
// contact JIRA and which issue key to use, and Manipulate writes the final
// message with the issue summary and override notices appended.
package commitmsg

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roneystein/git-jira-hook/internal/i18n"
	"github.com/roneystein/git-jira-hook/internal/models"
)

// State is the lifecycle position of a Manipulator
type State int

const (
	Unloaded    State = iota // No message loaded yet
	Loaded                   // Message read and scanned
	Manipulated              // Final message written
)

func (s State) String() string {
	switch s {
	case Unloaded:
		return "unloaded"
	case Loaded:
		return "loaded"
	case Manipulated:
		return "manipulated"
	default:
		return "unknown"
	}
}

// Options configure a Manipulator
type Options struct {
	Directives Directives
	Messages   i18n.Messages
	Logger     *slog.Logger
}

// Manipulator owns one commit message for the duration of a hook run
type Manipulator struct {
	directives Directives
	messages   i18n.Messages
	log        *slog.Logger

	state     State
	content   []string
	overrides Overrides
}

// New creates a Manipulator. Zero-valued options fall back to the default
// directives, the English catalog and slog.Default().
func New(opts Options) *Manipulator {
	m := &Manipulator{
		directives: opts.Directives,
		messages:   opts.Messages,
		log:        opts.Logger,
	}
	if m.directives == (Directives{}) {
		m.directives = DefaultDirectives()
	}
	if m.messages == nil {
		m.messages = i18n.Default()
	}
	if m.log == nil {
		m.log = slog.Default()
	}
	return m
}

// Load reads the commit message at path and scans it. A missing path, an
// unreadable file or an empty file is logged and leaves an empty message
// with no overrides; the Manipulator is Loaded either way.
func (m *Manipulator) Load(path string) {
	m.content = nil
	m.overrides = Overrides{}
	m.state = Loaded

	if path == "" {
		m.log.Error(m.messages.Get("error.githook.nocommitfile"))
		return
	}

	raw, err := readLines(path)
	if err != nil {
		m.log.Warn(m.messages.Get("error.commitfile.unreadable", path), "error", err)
		return
	}
	if len(raw) == 0 {
		m.log.Warn(m.messages.Get("error.commitfile.empty"), "path", path)
		return
	}

	m.content, m.overrides = Scan(raw, m.directives)
	m.log.Debug("commit message loaded",
		"path", path,
		"raw_lines", len(raw),
		"content_lines", len(m.content),
		"communication_overridden", m.overrides.Communication,
		"commit_overridden", m.overrides.Commit,
		"assignee_overridden", m.overrides.Assignee,
	)
}

// State returns the lifecycle state
func (m *Manipulator) State() State {
	return m.state
}

// Overrides returns all flags read from the message
func (m *Manipulator) Overrides() Overrides {
	return m.overrides
}

// IsCommunicationOverridden reports whether the message turned off JIRA lookups
func (m *Manipulator) IsCommunicationOverridden() bool {
	return m.overrides.Communication
}

// IsCommitOverridden reports whether the message is committed without a valid issue
func (m *Manipulator) IsCommitOverridden() bool {
	return m.overrides.Commit
}

// IsAssigneeOverridden reports whether an issue assigned to someone else is accepted
func (m *Manipulator) IsAssigneeOverridden() bool {
	return m.overrides.Assignee
}

// StrippedMessage returns a copy of the content lines
func (m *Manipulator) StrippedMessage() []string {
	out := make([]string, len(m.content))
	copy(out, m.content)
	return out
}

// JiraIssueKey returns the first issue key for the given project prefixes, or ""
func (m *Manipulator) JiraIssueKey(patterns string) string {
	return ExtractKey(m.content, patterns)
}

// RequireJiraIssueKey is JiraIssueKey for callers that need a key
func (m *Manipulator) RequireJiraIssueKey(patterns string) (string, error) {
	key := m.JiraIssueKey(patterns)
	if key == "" {
		return "", &IssueKeyNotFoundError{Patterns: patterns}
	}
	return key, nil
}

// Manipulate assembles the final message and replaces the file at outputPath.
// communicationOverridden and assigneeOverridden are the caller's final
// decision and select the notices; they need not match the loaded flags.
// With an empty outputPath nothing is written.
func (m *Manipulator) Manipulate(issue *models.JiraIssue, footer, outputPath string, communicationOverridden, assigneeOverridden bool) error {
	msg := Assemble(m.content, issue, footer, AssembleOptions{
		CommunicationOverridden: communicationOverridden,
		AssigneeOverridden:      assigneeOverridden,
		CommitOverridden:        m.overrides.Commit,
	}, m.messages)

	if outputPath == "" {
		m.log.Warn("no output path for commit message, nothing written")
		return nil
	}

	if err := writeFileAtomic(outputPath, []byte(msg)); err != nil {
		return err
	}

	m.state = Manipulated
	m.log.Debug("commit message written", "path", outputPath, "bytes", len(msg))
	return nil
}

// readLines returns the lines of path without their terminators.
// A final line terminator does not produce an empty last line.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}

	text := strings.TrimSuffix(string(data), "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

// writeFileAtomic replaces path through a temp file in the same directory,
// keeping the mode of an existing file
func writeFileAtomic(path string, data []byte) error {
	mode := fs.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".commit-msg-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Chmod(tmpPath, mode); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
