package commitmsg

import "strings"

// NoneSentinel as the first word of a message marks a commit without an issue
const NoneSentinel = "NONE"

const scissors = " ------------------------ >8 ------------------------"

// Directives are the literal markers recognized in a raw commit message
type Directives struct {
	// CommentChar starts the lines git adds to the message (core.commentChar)
	CommentChar string
	// Communication turns off all communication with JIRA
	Communication string
	// Commit lets the commit through without a valid issue
	Commit string
	// Assignee accepts an issue assigned to someone else
	Assignee string
}

// DefaultDirectives returns the directive tokens used when none are configured
func DefaultDirectives() Directives {
	return Directives{
		CommentChar:   "#",
		Communication: "[skip jira]",
		Commit:        "[force commit]",
		Assignee:      "[any assignee]",
	}
}

// Overrides are the flags a commit message can set through directives
type Overrides struct {
	Communication bool
	Commit        bool
	Assignee      bool
}

// Any reports whether at least one flag is set
func (o Overrides) Any() bool {
	return o.Communication || o.Commit || o.Assignee
}

// Scan splits raw message lines into content lines and override flags.
// Comment lines and directive lines never reach the content, and everything
// from a scissors line on is ignored. All other lines are kept verbatim,
// blank ones included, unless every one of them is blank.
func Scan(raw []string, d Directives) ([]string, Overrides) {
	comment := d.CommentChar
	if comment == "" {
		comment = "#"
	}

	var flags Overrides
	content := make([]string, 0, len(raw))
	for _, line := range raw {
		if line == comment+scissors {
			break
		}
		if strings.HasPrefix(line, comment) {
			continue
		}

		switch {
		case isDirective(line, d.Communication):
			flags.Communication = true
		case isDirective(line, d.Commit):
			flags.Commit = true
		case isDirective(line, d.Assignee):
			flags.Assignee = true
		default:
			content = append(content, line)
		}
	}

	first := firstNonBlank(content)
	if first < 0 {
		return []string{}, flags
	}
	if fields := strings.Fields(content[first]); fields[0] == NoneSentinel {
		flags.Commit = true
	}

	return content, flags
}

func isDirective(line, token string) bool {
	return token != "" && strings.EqualFold(strings.TrimSpace(line), token)
}

// firstNonBlank returns the index of the first line with text, or -1
func firstNonBlank(lines []string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) != "" {
			return i
		}
	}
	return -1
}
