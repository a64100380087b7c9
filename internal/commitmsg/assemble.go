package commitmsg

import (
	"strings"

	"github.com/roneystein/git-jira-hook/internal/i18n"
	"github.com/roneystein/git-jira-hook/internal/models"
)

// LineSeparator terminates every line of an assembled message
const LineSeparator = "\n"

// AssembleOptions are the final override decisions for one message
type AssembleOptions struct {
	CommunicationOverridden bool
	AssigneeOverridden      bool
	// CommitOverridden adds no notice, it only separates content from footer
	CommitOverridden bool
}

// Assemble builds the final commit message:
//
//	content lines
//	<blank>                                  if content and anything below the footer applies
//	Summary: <summary>                       if issue != nil
//	Assigned user is overridden              if AssigneeOverridden
//	Communication with JIRA is overridden    if CommunicationOverridden
//	footer
func Assemble(content []string, issue *models.JiraIssue, footer string, opts AssembleOptions, msgs i18n.Messages) string {
	if msgs == nil {
		msgs = i18n.Default()
	}

	var b strings.Builder
	writeLine := func(line string) {
		b.WriteString(line)
		b.WriteString(LineSeparator)
	}

	for _, line := range content {
		writeLine(line)
	}

	annotated := issue != nil || opts.AssigneeOverridden || opts.CommunicationOverridden || opts.CommitOverridden
	if len(content) > 0 && annotated {
		writeLine("")
	}

	if issue != nil {
		writeLine(msgs.Get(i18n.KeySummary, issue.Summary))
	}
	if opts.AssigneeOverridden {
		writeLine(msgs.Get(i18n.KeyAssigneeOverridden))
	}
	if opts.CommunicationOverridden {
		writeLine(msgs.Get(i18n.KeyCommunicationOverridden))
	}

	writeLine(footer)
	return b.String()
}
