// Package hook runs the commit-msg hook: it reads the message, looks up the
// referenced JIRA issue when allowed, and rewrites the message file.
package hook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/roneystein/git-jira-hook/internal/commitmsg"
	"github.com/roneystein/git-jira-hook/internal/config"
	"github.com/roneystein/git-jira-hook/internal/i18n"
	"github.com/roneystein/git-jira-hook/internal/jira"
	"github.com/roneystein/git-jira-hook/internal/models"
	"github.com/roneystein/git-jira-hook/internal/ui"
)

// ErrNoCommitFile is returned when git did not pass a message file
var ErrNoCommitFile = errors.New("no commit message file given")

// errNoTracker marks a run without a configured JIRA address
var errNoTracker = errors.New("jira.address is not configured")

// Resolver turns an issue key into a populated issue
type Resolver interface {
	Resolve(ctx context.Context, key string, acceptedLinks []string) (*models.JiraIssue, error)
}

// Runner holds everything one hook invocation needs
type Runner struct {
	Config   *config.Config
	Git      *config.GitSettings
	Messages i18n.Messages
	// Resolver is nil when JIRA is not configured
	Resolver Resolver
	Printer  *ui.Printer
	Log      *slog.Logger
	Version  string
}

// Footer is the last line of every rewritten message
func (r *Runner) Footer() string {
	if r.Config.Hook.Footer != "" {
		return r.Config.Hook.Footer
	}
	return "git-jira-hook v" + r.Version
}

// Run processes the commit message at path in place. A returned error
// rejects the commit.
func (r *Runner) Run(ctx context.Context, path string) error {
	if path == "" {
		r.Log.Error(r.Messages.Get("error.githook.nocommitfile"))
		return ErrNoCommitFile
	}

	m := commitmsg.New(commitmsg.Options{
		Directives: r.Config.CommitDirectives(r.Git.CommentChar),
		Messages:   r.Messages,
		Logger:     r.Log,
	})
	m.Load(path)

	flags := m.Overrides()
	communicationOverridden := flags.Communication

	var issue *models.JiraIssue
	if flags.Communication || flags.Commit {
		r.Log.Debug(r.Messages.Get("info.communication.skipped"),
			"communication_overridden", flags.Communication,
			"commit_overridden", flags.Commit,
		)
	} else {
		var err error
		issue, err = r.fetchIssue(ctx, m)
		if err != nil && !r.recoverable(err) {
			communicationOverridden = true
		}
	}

	if issue != nil {
		if err := CheckState(issue, r.Config, r.Git.JiraUsername, flags.Assignee); err != nil {
			r.reject(err)
			return err
		}
	}

	if err := m.Manipulate(issue, r.Footer(), path, communicationOverridden, flags.Assignee); err != nil {
		return fmt.Errorf("rewriting commit message: %w", err)
	}
	return nil
}

func (r *Runner) fetchIssue(ctx context.Context, m *commitmsg.Manipulator) (*models.JiraIssue, error) {
	if r.Resolver == nil {
		return nil, errNoTracker
	}
	if r.Git.JiraProjects == "" {
		r.Log.Debug(r.Messages.Get("error.jira.noprojects"))
	}

	key, err := m.RequireJiraIssueKey(r.Git.JiraProjects)
	if err != nil {
		return nil, err
	}

	r.Log.Debug("preparing to communicate with JIRA", "address", r.Git.JiraAddress, "key", key)

	ctx, cancel := context.WithTimeout(ctx, r.Config.Timeout())
	defer cancel()

	issue, err := r.Resolver.Resolve(ctx, key, r.Config.IssueLinks.Accepted)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return nil, &jira.IssueNotFoundError{Key: key}
	}

	r.Log.Debug("resolved JIRA issue",
		"key", issue.Key,
		"status", issue.Status,
		"type", issue.IssueTypeName,
		"links", len(issue.Links),
	)
	return issue, nil
}

// recoverable logs err and reports whether the message is still written
// without any override notice. Other errors mean JIRA could not be used.
func (r *Runner) recoverable(err error) bool {
	var keyNotFound *commitmsg.IssueKeyNotFoundError
	var issueNotFound *jira.IssueNotFoundError

	switch {
	case errors.As(err, &keyNotFound):
		r.Log.Warn(r.Messages.Get("error.issuekey.notfound", keyNotFound.Patterns))
		return true
	case errors.As(err, &issueNotFound):
		r.Log.Warn(r.Messages.Get("error.issue.notfound", issueNotFound.Key))
		return true
	case errors.Is(err, errNoTracker):
		r.Log.Debug("skipping JIRA lookup", "reason", err)
		return false
	default:
		r.Printer.Warning(r.Messages.Get("error.jira.unreachable", r.Git.JiraAddress))
		r.Log.Debug("JIRA lookup failed", "error", err)
		return false
	}
}

func (r *Runner) reject(err error) {
	var stateErr *StateError
	if !errors.As(err, &stateErr) {
		r.Printer.Error(err.Error())
		return
	}

	issue := stateErr.Issue
	directives := r.Config.CommitDirectives(r.Git.CommentChar)
	switch stateErr.Reason {
	case ReasonStatus:
		r.Printer.Error(r.Messages.Get("error.issue.status", issue.Key, issue.Status, issue.IssueTypeName))
	case ReasonAssignee:
		r.Printer.Error(r.Messages.Get("error.issue.assignee", issue.Key, issue.Assignee.DisplayName, stateErr.User))
		r.Printer.Hint(r.Messages.Get("hint.override.assignee", directives.Assignee))
	case ReasonUnassigned:
		r.Printer.Error(r.Messages.Get("error.issue.unassigned", issue.Key))
		r.Printer.Hint(r.Messages.Get("hint.override.assignee", directives.Assignee))
	}
	r.Printer.Hint(r.Messages.Get("hint.override.commit", directives.Commit))
}
