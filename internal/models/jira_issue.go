package models

import "strings"

// JiraIssue is an issue resolved from JIRA, reduced to what the hook needs
type JiraIssue struct {
	// Key is the canonical issue key (e.g., "EXAMPLE-1")
	Key string
	// Summary is the issue title
	Summary string
	// Status name (e.g., "In Progress")
	Status string
	// IssueTypeName (e.g., "Bug", "Improvement")
	IssueTypeName string
	// Assignee is nil when the issue is unassigned
	Assignee *User
	// Subtask is true when the issue type is a sub-task
	Subtask bool
	// ParentKey is set for sub-tasks
	ParentKey string
	// Links holds the issue links whose type is accepted by configuration
	Links []IssueLink
}

// NewJiraIssue creates a JiraIssue with the two mandatory fields
func NewJiraIssue(key, summary string) JiraIssue {
	return JiraIssue{
		Key:     key,
		Summary: summary,
	}
}

// WithAssignee sets the assignee and returns the JiraIssue
func (i JiraIssue) WithAssignee(user User) JiraIssue {
	i.Assignee = &user
	return i
}

// IsAssignedTo reports whether the issue is assigned to the given JIRA user
// name, ignoring case. An empty name matches nobody.
func (i JiraIssue) IsAssignedTo(name string) bool {
	return name != "" && i.Assignee != nil && strings.EqualFold(i.Assignee.Name, name)
}
