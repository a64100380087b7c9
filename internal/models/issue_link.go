package models

// IssueLink is a typed link from an issue to another issue
type IssueLink struct {
	// Type name as configured in JIRA (e.g., "Blocks", "Relates")
	Type string
	// Direction is "inward" or "outward"
	Direction string
	// Key of the linked issue
	Key string
	// Status of the linked issue
	Status string
}
