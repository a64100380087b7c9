package hook

import (
	"strings"

	"github.com/roneystein/git-jira-hook/internal/models"
)

// StateReason says why an issue does not accept the commit
type StateReason int

const (
	ReasonStatus     StateReason = iota // Status not accepted for the issue type
	ReasonAssignee                      // Assigned to someone else
	ReasonUnassigned                    // Assigned to nobody
)

// StateError is returned when the resolved issue does not accept commits
type StateError struct {
	Issue  *models.JiraIssue
	Reason StateReason
	// User is the committer's JIRA user for assignee failures
	User string
}

func (e *StateError) Error() string {
	switch e.Reason {
	case ReasonStatus:
		return "issue " + e.Issue.Key + " has status " + e.Issue.Status + ", not accepted for " + e.Issue.IssueTypeName
	case ReasonAssignee:
		return "issue " + e.Issue.Key + " is assigned to " + e.Issue.Assignee.Name + ", not " + e.User
	default:
		return "issue " + e.Issue.Key + " is unassigned"
	}
}

// StatusTable looks up the statuses that accept commits for an issue type
type StatusTable interface {
	AcceptedStatuses(issueType string) ([]string, bool)
}

// CheckState verifies that issue accepts a commit from user. The status must
// be listed for the issue type (types missing from the table accept any
// status), and the issue must be assigned to user unless the assignee check
// is overridden or user is unknown.
func CheckState(issue *models.JiraIssue, table StatusTable, user string, assigneeOverridden bool) error {
	if statuses, ok := table.AcceptedStatuses(issue.IssueTypeName); ok && !containsFold(statuses, issue.Status) {
		return &StateError{Issue: issue, Reason: ReasonStatus}
	}

	if assigneeOverridden || user == "" {
		return nil
	}
	if issue.Assignee == nil {
		return &StateError{Issue: issue, Reason: ReasonUnassigned, User: user}
	}
	if !issue.IsAssignedTo(user) {
		return &StateError{Issue: issue, Reason: ReasonAssignee, User: user}
	}
	return nil
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
