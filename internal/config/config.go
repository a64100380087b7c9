package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/roneystein/git-jira-hook/internal/commitmsg"
)

// FileName is the settings file looked up in the user config directory
const FileName = "git-jira-hook.toml"

type Config struct {
	Hook       HookConfig          `toml:"hook"`
	Directives DirectivesConfig    `toml:"directives"`
	IssueTypes map[string][]string `toml:"issue_types"`
	IssueLinks IssueLinksConfig    `toml:"issue_links"`
}

type HookConfig struct {
	// Footer replaces the default "git-jira-hook v<version>" last line
	Footer         string `toml:"footer"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type DirectivesConfig struct {
	Communication string `toml:"communication"`
	Commit        string `toml:"commit"`
	Assignee      string `toml:"assignee"`
}

type IssueLinksConfig struct {
	Accepted []string `toml:"accepted"`
}

func DefaultConfig() *Config {
	d := commitmsg.DefaultDirectives()
	return &Config{
		Hook: HookConfig{
			TimeoutSeconds: 10,
		},
		Directives: DirectivesConfig{
			Communication: d.Communication,
			Commit:        d.Commit,
			Assignee:      d.Assignee,
		},
		IssueTypes: map[string][]string{
			"Bug":         {"Open", "In Progress", "Reopened"},
			"Improvement": {"Open", "In Progress", "Reopened"},
			"New Feature": {"Open", "In Progress", "Reopened"},
			"Task":        {"Open", "In Progress"},
			"Sub-task":    {"Open", "In Progress"},
		},
		IssueLinks: IssueLinksConfig{
			Accepted: []string{"Blocks", "Cloners", "Duplicate", "Relates"},
		},
	}
}

// Path is the default settings file location
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, FileName), nil
}

// Load reads the settings file from the user config directory, writing the
// defaults there when it does not exist yet
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return DefaultConfig(), nil
	}

	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
		_ = cfg.SaveTo(path) // Best effort save
		return cfg, nil
	}
	return cfg, err
}

// LoadFile reads settings from path on top of the defaults
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	defaultTypes := cfg.IssueTypes
	// A configured issue_types table replaces the defaults instead of merging
	cfg.IssueTypes = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.IssueTypes == nil {
		cfg.IssueTypes = defaultTypes
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Hook.TimeoutSeconds < 0 {
		return fmt.Errorf("invalid hook.timeout_seconds %d", c.Hook.TimeoutSeconds)
	}

	seen := make(map[string]string)
	for name, token := range map[string]string{
		"communication": c.Directives.Communication,
		"commit":        c.Directives.Commit,
		"assignee":      c.Directives.Assignee,
	} {
		key := strings.ToLower(strings.TrimSpace(token))
		if key == "" {
			continue
		}
		if other, dup := seen[key]; dup {
			return fmt.Errorf("directives.%s and directives.%s are both %q", name, other, token)
		}
		seen[key] = name
	}
	return nil
}

// SaveTo writes the settings to path, creating its directory
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Timeout bounds the JIRA lookup
func (c *Config) Timeout() time.Duration {
	if c.Hook.TimeoutSeconds == 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Hook.TimeoutSeconds) * time.Second
}

// CommitDirectives returns the directive tokens with the given comment char
func (c *Config) CommitDirectives(commentChar string) commitmsg.Directives {
	return commitmsg.Directives{
		CommentChar:   commentChar,
		Communication: strings.TrimSpace(c.Directives.Communication),
		Commit:        strings.TrimSpace(c.Directives.Commit),
		Assignee:      strings.TrimSpace(c.Directives.Assignee),
	}
}

// AcceptedStatuses returns the statuses that accept commits for an issue type.
// Type names match case-insensitively, with '_' standing for a space.
// ok is false when the type is not configured.
func (c *Config) AcceptedStatuses(issueType string) (statuses []string, ok bool) {
	want := normalizeIssueType(issueType)
	for name, statuses := range c.IssueTypes {
		if normalizeIssueType(name) == want {
			return statuses, true
		}
	}
	return nil, false
}

// IssueTypeNames returns the configured issue types, sorted
func (c *Config) IssueTypeNames() []string {
	names := make([]string, 0, len(c.IssueTypes))
	for name := range c.IssueTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeIssueType(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", " "))
}
