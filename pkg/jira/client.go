// Package jira integrates the generator with a JIRA instance: fetching
// stories, pulling recording attachments, posting artifact comments, and
// filing bugs when replay verification finds broken locators.
package jira

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	gojira "github.com/andygrunwald/go-jira"

	"github.com/entrhq/scribe/pkg/config"
	"github.com/entrhq/scribe/pkg/logging"
)

var (
	// ErrNotConfigured indicates the jira config section is missing
	// endpoint or credentials.
	ErrNotConfigured = errors.New("jira integration not configured")

	// ErrNoRecording indicates the story carries no usable recording
	// attachment.
	ErrNoRecording = errors.New("no recording attachment on story")
)

// recordingExtensions are the attachment suffixes treated as recordings.
var recordingExtensions = []string{".ts", ".js", ".java", ".py", ".cs", ".txt"}

// urlRe pulls the first absolute URL out of a story description.
var urlRe = regexp.MustCompile(`https?://[^\s)"']+`)

// Story is the subset of a JIRA issue the generation pipeline needs.
type Story struct {
	Key           string
	Summary       string
	Description   string
	PageURL       string
	RecordingPath string
}

// Client wraps the JIRA REST API behind the operations the pipeline uses.
type Client struct {
	api        *gojira.Client
	projectKey string
	log        *logging.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithProjectKey overrides the project key bugs are filed against.
func WithProjectKey(key string) ClientOption {
	return func(c *Client) {
		c.projectKey = key
	}
}

// NewClient builds a Client from the jira config section.
func NewClient(section *config.JiraSection, opts ...ClientOption) (*Client, error) {
	if section == nil || !section.Configured() {
		return nil, ErrNotConfigured
	}

	tp := gojira.BasicAuthTransport{
		Username: section.User,
		Password: section.APIToken,
	}
	api, err := gojira.NewClient(tp.Client(), section.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create jira client: %w", err)
	}

	log, _ := logging.NewLogger("jira")
	client := &Client{
		api:        api,
		projectKey: section.ProjectKey,
		log:        log,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// FetchStory retrieves an issue and downloads its recording attachment into
// destDir. The attachment chosen is the most recent one with a recognized
// recording extension.
func (c *Client) FetchStory(issueKey, destDir string) (*Story, error) {
	issue, _, err := c.api.Issue.Get(issueKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issue %s: %w", issueKey, err)
	}

	story := &Story{
		Key:         issue.Key,
		Summary:     issue.Fields.Summary,
		Description: issue.Fields.Description,
		PageURL:     firstURL(issue.Fields.Description),
	}

	attachment := pickRecording(issue.Fields.Attachments)
	if attachment == nil {
		return nil, fmt.Errorf("issue %s: %w", issueKey, ErrNoRecording)
	}

	path, err := c.downloadAttachment(attachment, destDir)
	if err != nil {
		return nil, err
	}
	story.RecordingPath = path

	c.log.Infof("Fetched story %s with recording %s", story.Key, filepath.Base(path))
	return story, nil
}

// CommentArtifacts posts a comment on the story listing the generated files.
func (c *Client) CommentArtifacts(issueKey string, paths []string) error {
	var b strings.Builder
	b.WriteString("Test artifacts generated:\n")
	for _, p := range paths {
		fmt.Fprintf(&b, "* {{%s}}\n", p)
	}

	_, _, err := c.api.Issue.AddComment(issueKey, &gojira.Comment{Body: b.String()})
	if err != nil {
		return fmt.Errorf("failed to comment on %s: %w", issueKey, err)
	}
	return nil
}

// FileBug creates a Bug issue in the configured project and links it to the
// story by mentioning it in the description.
func (c *Client) FileBug(storyKey, summary, description string) (string, error) {
	if c.projectKey == "" {
		return "", fmt.Errorf("cannot file bug: %w", ErrNotConfigured)
	}

	body := description
	if storyKey != "" {
		body = fmt.Sprintf("Found while verifying artifacts for %s.\n\n%s", storyKey, description)
	}

	issue := &gojira.Issue{
		Fields: &gojira.IssueFields{
			Project:     gojira.Project{Key: c.projectKey},
			Type:        gojira.IssueType{Name: "Bug"},
			Summary:     summary,
			Description: body,
		},
	}

	created, _, err := c.api.Issue.Create(issue)
	if err != nil {
		return "", fmt.Errorf("failed to create bug: %w", err)
	}

	c.log.Infof("Filed bug %s for story %s", created.Key, storyKey)
	return created.Key, nil
}

// downloadAttachment streams an attachment to destDir and returns its path.
func (c *Client) downloadAttachment(a *gojira.Attachment, destDir string) (string, error) {
	resp, err := c.api.Issue.DownloadAttachment(a.ID)
	if err != nil {
		return "", fmt.Errorf("failed to download attachment %s: %w", a.Filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download attachment %s: status %d", a.Filename, resp.StatusCode)
	}

	if err := os.MkdirAll(destDir, 0750); err != nil {
		return "", fmt.Errorf("failed to create download dir: %w", err)
	}

	path := filepath.Join(destDir, filepath.Base(a.Filename))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create recording file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write recording file: %w", err)
	}
	return path, nil
}

// pickRecording returns the last attachment with a recording extension.
// JIRA lists attachments oldest first, so the last match is the newest.
func pickRecording(attachments []*gojira.Attachment) *gojira.Attachment {
	var picked *gojira.Attachment
	for _, a := range attachments {
		ext := strings.ToLower(filepath.Ext(a.Filename))
		for _, want := range recordingExtensions {
			if ext == want {
				picked = a
				break
			}
		}
	}
	return picked
}

// firstURL extracts the first absolute URL from text, or "".
func firstURL(text string) string {
	match := urlRe.FindString(text)
	if match == "" {
		return ""
	}
	if _, err := url.Parse(match); err != nil {
		return ""
	}
	return strings.TrimRight(match, ".,;")
}
