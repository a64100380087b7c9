// Package jira is a minimal JIRA REST client for looking up the issue a
// commit refers to.
package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// issueFields are the fields requested when fetching a single issue
const issueFields = "summary,status,issuetype,assignee,parent,issuelinks"

// Client talks to one JIRA instance with basic auth
type Client struct {
	URL        string
	Username   string
	APIToken   string
	APIVersion string // "2" or "3" (default: "2")
	HTTPClient *http.Client
}

// NewClient creates a client for the JIRA instance at baseURL
func NewClient(baseURL, username, apiToken string) *Client {
	return &Client{
		URL:        strings.TrimSuffix(baseURL, "/"),
		Username:   username,
		APIToken:   apiToken,
		APIVersion: "2",
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Issue is the JSON shape of GET /issue/{key}
type Issue struct {
	ID     string      `json:"id"`
	Key    string      `json:"key"`
	Self   string      `json:"self"`
	Fields IssueFields `json:"fields"`
}

type IssueFields struct {
	Summary    string           `json:"summary"`
	Status     *StatusField     `json:"status"`
	IssueType  *IssueTypeField  `json:"issuetype"`
	Assignee   *UserField       `json:"assignee"`
	Parent     *ParentField     `json:"parent"`
	IssueLinks []IssueLinkField `json:"issuelinks"`
}

type StatusField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type IssueTypeField struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Subtask bool   `json:"subtask"`
}

// UserField covers both server (name) and cloud (accountId) users
type UserField struct {
	Name         string `json:"name"`
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

type ParentField struct {
	ID  string `json:"id"`
	Key string `json:"key"`
}

type IssueLinkField struct {
	ID           string        `json:"id"`
	Type         LinkTypeField `json:"type"`
	InwardIssue  *LinkedIssue  `json:"inwardIssue"`
	OutwardIssue *LinkedIssue  `json:"outwardIssue"`
}

type LinkTypeField struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Inward  string `json:"inward"`
	Outward string `json:"outward"`
}

type LinkedIssue struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Fields struct {
		Status *StatusField `json:"status"`
	} `json:"fields"`
}

// APIError is a non-successful response from JIRA
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("jira API returned %d: %s", e.StatusCode, e.Body)
}

// IssueNotFoundError indicates the key does not resolve to an issue
type IssueNotFoundError struct {
	Key string
}

func (e *IssueNotFoundError) Error() string {
	return "jira issue not found: " + e.Key
}

func (c *Client) apiBase() string {
	version := c.APIVersion
	if version == "" {
		version = "2"
	}
	return c.URL + "/rest/api/" + version
}

// GetIssue fetches one issue by key
func (c *Client) GetIssue(ctx context.Context, key string) (*Issue, error) {
	endpoint := c.apiBase() + "/issue/" + url.PathEscape(key) + "?fields=" + issueFields

	var issue Issue
	if err := c.getJSON(ctx, endpoint, &issue); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, &IssueNotFoundError{Key: key}
		}
		return nil, err
	}
	return &issue, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.Username != "" || c.APIToken != "" {
		req.SetBasicAuth(c.Username, c.APIToken)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding response from %s: %w", endpoint, err)
	}
	return nil
}
