package models

// User is a JIRA user as referenced by an issue
type User struct {
	// Name is the login name (server) or account ID (cloud)
	Name string
	// DisplayName (e.g., "Alice Developer")
	DisplayName string
}

// NewUser creates a new User
func NewUser(name, displayName string) User {
	return User{
		Name:        name,
		DisplayName: displayName,
	}
}
