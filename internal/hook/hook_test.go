package hook

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roneystein/git-jira-hook/internal/config"
	"github.com/roneystein/git-jira-hook/internal/i18n"
	"github.com/roneystein/git-jira-hook/internal/jira"
	"github.com/roneystein/git-jira-hook/internal/models"
	"github.com/roneystein/git-jira-hook/internal/ui"
)

const gitComments = "# Please enter the commit message for your changes.\n# On branch master\n"

type fakeResolver struct {
	issue *models.JiraIssue
	err   error

	calls       int
	key         string
	links       []string
	hasDeadline bool
}

func (f *fakeResolver) Resolve(ctx context.Context, key string, acceptedLinks []string) (*models.JiraIssue, error) {
	f.calls++
	f.key = key
	f.links = acceptedLinks
	_, f.hasDeadline = ctx.Deadline()
	return f.issue, f.err
}

func newRunner(t *testing.T, resolver Resolver) (*Runner, *bytes.Buffer) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Hook.Footer = "Hook v 1.0"

	var out bytes.Buffer
	r := &Runner{
		Config: cfg,
		Git: &config.GitSettings{
			JiraAddress:  "https://jira.example.com",
			JiraUsername: "alice",
			JiraProjects: "EXAMPLE PR OTHER",
			CommentChar:  "#",
		},
		Messages: i18n.Default(),
		Resolver: resolver,
		Printer:  ui.NewPrinter(&out, ui.PlainRenderer(&out)),
		Log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		Version:  "1.0.0",
	}
	return r, &out
}

func writeMessage(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func readMessage(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestRunResolvesIssue(t *testing.T) {
	resolver := &fakeResolver{issue: testIssue("In Progress", "alice")}
	r, _ := newRunner(t, resolver)
	path := writeMessage(t, "example-1 Added som files for this issue\n"+gitComments)

	require.NoError(t, r.Run(context.Background(), path))

	assert.Equal(t, 1, resolver.calls)
	assert.Equal(t, "EXAMPLE-1", resolver.key)
	assert.Equal(t, r.Config.IssueLinks.Accepted, resolver.links)
	assert.True(t, resolver.hasDeadline)
	assert.Equal(t, []string{
		"example-1 Added som files for this issue",
		"",
		"Summary: Add functionality for accounting",
		"Hook v 1.0",
	}, readMessage(t, path))
}

func TestRunCommunicationOverridden(t *testing.T) {
	resolver := &fakeResolver{}
	r, _ := newRunner(t, resolver)
	path := writeMessage(t, "EXAMPLE-1 added some more functionality\n[skip jira]\n"+gitComments)

	require.NoError(t, r.Run(context.Background(), path))

	assert.Zero(t, resolver.calls)
	assert.Equal(t, []string{
		"EXAMPLE-1 added some more functionality",
		"",
		"Communication with JIRA is overridden",
		"Hook v 1.0",
	}, readMessage(t, path))
}

func TestRunNoneSentinel(t *testing.T) {
	resolver := &fakeResolver{}
	r, _ := newRunner(t, resolver)
	path := writeMessage(t, "NONE did some configuration manager work\n"+gitComments)

	require.NoError(t, r.Run(context.Background(), path))

	assert.Zero(t, resolver.calls)
	assert.Equal(t, []string{
		"NONE did some configuration manager work",
		"",
		"Hook v 1.0",
	}, readMessage(t, path))
}

func TestRunWithoutIssueKey(t *testing.T) {
	resolver := &fakeResolver{}
	r, _ := newRunner(t, resolver)
	path := writeMessage(t, "UNKNOWN-1 Added some files\n"+gitComments)

	require.NoError(t, r.Run(context.Background(), path))

	assert.Zero(t, resolver.calls)
	assert.Equal(t, []string{"UNKNOWN-1 Added some files", "Hook v 1.0"}, readMessage(t, path))
}

func TestRunIssueNotFound(t *testing.T) {
	resolver := &fakeResolver{err: &jira.IssueNotFoundError{Key: "EXAMPLE-1"}}
	r, _ := newRunner(t, resolver)
	path := writeMessage(t, "EXAMPLE-1 work\n")

	require.NoError(t, r.Run(context.Background(), path))

	assert.Equal(t, []string{"EXAMPLE-1 work", "Hook v 1.0"}, readMessage(t, path))
}

func TestRunTrackerFailure(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("connection refused")}
	r, out := newRunner(t, resolver)
	path := writeMessage(t, "EXAMPLE-1 work\n")

	require.NoError(t, r.Run(context.Background(), path))
	assert.Contains(t, out.String(), "Could not communicate with JIRA at https://jira.example.com")

	assert.Equal(t, []string{
		"EXAMPLE-1 work",
		"",
		"Communication with JIRA is overridden",
		"Hook v 1.0",
	}, readMessage(t, path))
}

func TestRunWithoutTracker(t *testing.T) {
	r, _ := newRunner(t, nil)
	path := writeMessage(t, "EXAMPLE-1 work\n")

	require.NoError(t, r.Run(context.Background(), path))

	assert.Equal(t, []string{
		"EXAMPLE-1 work",
		"",
		"Communication with JIRA is overridden",
		"Hook v 1.0",
	}, readMessage(t, path))
}

func TestRunRejectsClosedIssue(t *testing.T) {
	resolver := &fakeResolver{issue: testIssue("Closed", "alice")}
	r, out := newRunner(t, resolver)
	original := "EXAMPLE-1 work\n" + gitComments
	path := writeMessage(t, original)

	err := r.Run(context.Background(), path)

	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, ReasonStatus, stateErr.Reason)
	assert.Contains(t, out.String(), `JIRA issue EXAMPLE-1 is "Closed"`)
	assert.Contains(t, out.String(), `"[force commit]"`)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, original, string(data))
}

func TestRunRejectsOtherAssignee(t *testing.T) {
	resolver := &fakeResolver{issue: testIssue("Open", "bob")}
	r, out := newRunner(t, resolver)
	path := writeMessage(t, "EXAMPLE-1 work\n")

	err := r.Run(context.Background(), path)

	var stateErr *StateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, ReasonAssignee, stateErr.Reason)
	assert.Contains(t, out.String(), "assigned to bob Developer, not to alice")
	assert.Contains(t, out.String(), `"[any assignee]"`)
}

func TestRunAssigneeOverridden(t *testing.T) {
	resolver := &fakeResolver{issue: testIssue("Open", "bob")}
	r, _ := newRunner(t, resolver)
	path := writeMessage(t, "EXAMPLE-1 even more functionality added for wrong assignee\n[any assignee]\n"+gitComments)

	require.NoError(t, r.Run(context.Background(), path))

	assert.Equal(t, []string{
		"EXAMPLE-1 even more functionality added for wrong assignee",
		"",
		"Summary: Add functionality for accounting",
		"Assigned user is overridden",
		"Hook v 1.0",
	}, readMessage(t, path))
}

func TestRunEmptyMessage(t *testing.T) {
	resolver := &fakeResolver{}
	r, _ := newRunner(t, resolver)
	path := writeMessage(t, "")

	require.NoError(t, r.Run(context.Background(), path))

	assert.Zero(t, resolver.calls)
	assert.Equal(t, []string{"Hook v 1.0"}, readMessage(t, path))
}

func TestRunWithoutPath(t *testing.T) {
	r, _ := newRunner(t, &fakeResolver{})

	assert.ErrorIs(t, r.Run(context.Background(), ""), ErrNoCommitFile)
}

func TestFooter(t *testing.T) {
	r, _ := newRunner(t, nil)
	assert.Equal(t, "Hook v 1.0", r.Footer())

	r.Config.Hook.Footer = ""
	assert.Equal(t, "git-jira-hook v1.0.0", r.Footer())
}
