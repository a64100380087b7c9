package commitmsg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const testPatterns = "EXAMPLE PR OTHER"

func TestExtractKey(t *testing.T) {
	tests := []struct {
		name    string
		content []string
		want    string
	}{
		{"canonicalized", []string{"example-1 Added som files for this issue"}, "EXAMPLE-1"},
		{"already upper", []string{"EXAMPLE-1 added some more functionality"}, "EXAMPLE-1"},
		{"mixed case keeps digits", []string{"fix for Pr-0042"}, "PR-0042"},
		{"leftmost in line", []string{"OTHER-7 follows up EXAMPLE-3"}, "OTHER-7"},
		{"first line wins", []string{"no key here", "PR-9 then", "EXAMPLE-1"}, "PR-9"},
		{"unregistered project", []string{"UNKNOWN-1 something"}, ""},
		{"no key", []string{"just words"}, ""},
		{"prefix inside a word", []string{"SPR-12 is not PR"}, ""},
		{"prefix glued to a letter", []string{"XEXAMPLE-1 typo"}, ""},
		{"after underscore", []string{"feat_EXAMPLE-1 branch name"}, "EXAMPLE-1"},
		{"after slash", []string{"merged feature/pr-4"}, "PR-4"},
		{"none sentinel", []string{"NONE did some configuration manager work"}, ""},
		{"empty", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractKey(tt.content, testPatterns))
		})
	}
}

func TestExtractKeyDoesNotMutateContent(t *testing.T) {
	content := []string{"example-1 Added som files for this issue"}

	ExtractKey(content, testPatterns)

	assert.Equal(t, "example-1 Added som files for this issue", content[0])
}

func TestCompileKeyPattern(t *testing.T) {
	assert.Nil(t, CompileKeyPattern(""))
	assert.Nil(t, CompileKeyPattern("   "))
	assert.Nil(t, CompileKeyPattern("NONE"))

	re := CompileKeyPattern("A.B")
	assert.True(t, re.MatchString("a.b-1"))
	assert.False(t, re.MatchString("axb-1"))
	assert.Equal(t, []string{"_PR-5", "PR", "5"}, CompileKeyPattern(testPatterns).FindStringSubmatch("x_PR-5"))
}

func TestIssueKeyNotFoundError(t *testing.T) {
	err := &IssueKeyNotFoundError{Patterns: testPatterns}
	assert.Contains(t, err.Error(), "EXAMPLE PR OTHER")
}
