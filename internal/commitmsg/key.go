package commitmsg

import (
	"fmt"
	"regexp"
	"strings"
)

// IssueKeyNotFoundError is returned when a key is required but the message has none
type IssueKeyNotFoundError struct {
	Patterns string
}

func (e *IssueKeyNotFoundError) Error() string {
	return fmt.Sprintf("no issue key for project(s) %q in commit message", e.Patterns)
}

// CompileKeyPattern builds a case-insensitive regex matching PREFIX-DIGITS for
// every space-separated prefix in patterns. The prefix must not follow a letter
// or digit, so "feat_EXAMPLE-1" matches and "SPR-1" is not a PR key.
// Returns nil when there is no prefix.
func CompileKeyPattern(patterns string) *regexp.Regexp {
	var prefixes []string
	for _, p := range strings.Fields(patterns) {
		// NONE is resolved by Scan, never looked up
		if strings.EqualFold(p, NoneSentinel) {
			continue
		}
		prefixes = append(prefixes, regexp.QuoteMeta(p))
	}
	if len(prefixes) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)(?:^|[^a-z0-9])(` + strings.Join(prefixes, "|") + `)-([0-9]+)`)
}

// ExtractKey returns the first issue key found in content, scanning lines in
// order and each line left to right. The prefix is upper-cased and the number
// kept as written. Returns "" when nothing matches.
func ExtractKey(content []string, patterns string) string {
	re := CompileKeyPattern(patterns)
	if re == nil {
		return ""
	}

	for _, line := range content {
		if match := re.FindStringSubmatch(line); match != nil {
			return strings.ToUpper(match[1]) + "-" + match[2]
		}
	}
	return ""
}
