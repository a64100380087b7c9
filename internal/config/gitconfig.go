package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/format/config"
)

// TokenEnv overrides jira.password when set
const TokenEnv = "JIRA_API_TOKEN"

// GitSettings are the hook settings stored in git config
type GitSettings struct {
	JiraAddress     string // jira.address
	JiraUsername    string // jira.username
	EncodedPassword string // jira.password, base64
	JiraProjects    string // jira.projects, space-separated project keys
	APIVersion      string // jira.apiversion
	Language        string // githook.language
	CommentChar     string // core.commentChar
	HooksPath       string // core.hooksPath
}

// LoadGitSettings reads the hook settings from the repository containing
// repoPath, then the global and system git config. The first scope that sets
// a value wins. A path outside any repository only reads global and system.
func LoadGitSettings(repoPath string) *GitSettings {
	scopes := loadScopes(repoPath)

	s := &GitSettings{
		JiraAddress:     scopes.get("jira", "address"),
		JiraUsername:    scopes.get("jira", "username"),
		EncodedPassword: scopes.get("jira", "password"),
		JiraProjects:    strings.Join(strings.Fields(scopes.get("jira", "projects")), " "),
		APIVersion:      scopes.get("jira", "apiversion"),
		Language:        scopes.get("githook", "language"),
		CommentChar:     scopes.get("core", "commentChar"),
		HooksPath:       scopes.get("core", "hooksPath"),
	}

	// "auto" picks a free character per commit; git then writes '#' unless taken
	if s.CommentChar == "" || s.CommentChar == "auto" {
		s.CommentChar = "#"
	}
	return s
}

// Password returns the JIRA API token or password
func (s *GitSettings) Password() (string, error) {
	if token := os.Getenv(TokenEnv); token != "" {
		return token, nil
	}
	if s.EncodedPassword == "" {
		return "", nil
	}

	decoded, err := base64.StdEncoding.DecodeString(s.EncodedPassword)
	if err != nil {
		return "", fmt.Errorf("jira.password is not base64 encoded: %w", err)
	}
	return string(decoded), nil
}

// HasJira reports whether a JIRA address is configured
func (s *GitSettings) HasJira() bool {
	return s.JiraAddress != ""
}

type scopes []*config.Config

func loadScopes(repoPath string) scopes {
	var all scopes

	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err == nil {
		if cfg, err := repo.Config(); err == nil && cfg.Raw != nil {
			all = append(all, cfg.Raw)
		}
	}

	for _, scope := range []gitconfig.Scope{gitconfig.GlobalScope, gitconfig.SystemScope} {
		if cfg, err := gitconfig.LoadConfig(scope); err == nil && cfg.Raw != nil {
			all = append(all, cfg.Raw)
		}
	}
	return all
}

func (s scopes) get(section, key string) string {
	for _, raw := range s {
		if !raw.HasSection(section) {
			continue
		}
		if v := raw.Section(section).Option(key); v != "" {
			return v
		}
	}
	return ""
}
