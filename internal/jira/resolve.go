package jira

import (
	"context"
	"strings"

	"github.com/roneystein/git-jira-hook/internal/models"
)

// Resolve fetches key and converts it to the hook's issue record. Only links
// whose type name is in acceptedLinks are kept; an empty list keeps none.
func (c *Client) Resolve(ctx context.Context, key string, acceptedLinks []string) (*models.JiraIssue, error) {
	issue, err := c.GetIssue(ctx, key)
	if err != nil {
		return nil, err
	}

	resolved := toJiraIssue(issue, acceptedLinks)
	return &resolved, nil
}

func toJiraIssue(issue *Issue, acceptedLinks []string) models.JiraIssue {
	f := issue.Fields
	out := models.NewJiraIssue(issue.Key, f.Summary)

	if f.Status != nil {
		out.Status = f.Status.Name
	}
	if f.IssueType != nil {
		out.IssueTypeName = f.IssueType.Name
		out.Subtask = f.IssueType.Subtask
	}
	if f.Assignee != nil {
		name := f.Assignee.Name
		if name == "" {
			name = f.Assignee.AccountID
		}
		out = out.WithAssignee(models.NewUser(name, f.Assignee.DisplayName))
	}
	if f.Parent != nil {
		out.ParentKey = f.Parent.Key
	}

	for _, link := range f.IssueLinks {
		if !isAccepted(link.Type.Name, acceptedLinks) {
			continue
		}
		if link.InwardIssue != nil {
			out.Links = append(out.Links, toIssueLink(link.Type.Name, "inward", link.InwardIssue))
		}
		if link.OutwardIssue != nil {
			out.Links = append(out.Links, toIssueLink(link.Type.Name, "outward", link.OutwardIssue))
		}
	}

	return out
}

func toIssueLink(typeName, direction string, linked *LinkedIssue) models.IssueLink {
	link := models.IssueLink{
		Type:      typeName,
		Direction: direction,
		Key:       linked.Key,
	}
	if linked.Fields.Status != nil {
		link.Status = linked.Fields.Status.Name
	}
	return link
}

func isAccepted(name string, accepted []string) bool {
	for _, a := range accepted {
		if strings.EqualFold(a, name) {
			return true
		}
	}
	return false
}
