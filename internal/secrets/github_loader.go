package secrets

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hgross/secretview/internal/platform/retry"
)

const (
	githubAPIBaseURL = "https://api.github.com"
	defaultPath      = "secrets.json"

	fetchMaxAttempts   = 3
	fetchInitialDelay  = 250 * time.Millisecond
	defaultHTTPTimeout = 5 * time.Second
)

// GitHubLoader fetches the secrets file through the GitHub contents API.
// The file is a JSON object in the Record shape, delivered base64-encoded
// in the API's content envelope.
type GitHubLoader struct {
	token   string
	owner   string
	repo    string
	path    string
	baseURL string
	client  *http.Client
}

// GitHubLoaderOption customizes a GitHubLoader.
type GitHubLoaderOption func(*GitHubLoader)

// WithBaseURL overrides the GitHub API base URL. Tests point this at a
// local httptest server.
func WithBaseURL(baseURL string) GitHubLoaderOption {
	return func(l *GitHubLoader) { l.baseURL = strings.TrimRight(baseURL, "/") }
}

// WithHTTPClient overrides the HTTP client used for the fetch.
func WithHTTPClient(client *http.Client) GitHubLoaderOption {
	return func(l *GitHubLoader) { l.client = client }
}

// NewGitHubLoader validates the remote parameters and returns a loader.
// Every absent parameter is named in the returned *ConfigError.
func NewGitHubLoader(token, owner, repo, path string, timeout time.Duration, opts ...GitHubLoaderOption) (*GitHubLoader, error) {
	var missing []string
	if token == "" {
		missing = append(missing, "GITHUB_TOKEN")
	}
	if owner == "" {
		missing = append(missing, "GITHUB_OWNER")
	}
	if repo == "" {
		missing = append(missing, "GITHUB_REPO")
	}
	if len(missing) > 0 {
		return nil, missingError("missing remote secrets parameters", missing)
	}

	if path == "" {
		path = defaultPath
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	l := &GitHubLoader{
		token:   token,
		owner:   owner,
		repo:    repo,
		path:    path,
		baseURL: githubAPIBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// contentEnvelope is the GitHub contents API response shape.
type contentEnvelope struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// statusError marks a non-2xx response so the retry classifier can tell
// server-side failures from client-side ones.
type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("github returned status %d", e.status)
}

// classifyFetch retries network failures and 5xx responses; everything else
// (4xx, decode, parse) is permanent.
func classifyFetch(err error) retry.Action {
	var se *statusError
	if errors.As(err, &se) {
		if se.status >= 500 {
			return retry.Retry
		}
		return retry.Stop
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return retry.Retry
	}
	return retry.Stop
}

// Load fetches, decodes, and parses the remote secrets file. Every failure
// normalizes to a *ConfigError whose message is safe for callers; the
// underlying error stays in Cause for logging only.
func (l *GitHubLoader) Load(ctx context.Context) (*Record, error) {
	policy := retry.Policy{
		MaxAttempts:    fetchMaxAttempts,
		InitialBackoff: fetchInitialDelay,
	}

	record, err := retry.Do(ctx, policy, classifyFetch, func() (*Record, error) {
		return l.fetch(ctx)
	})
	if err != nil {
		return nil, &ConfigError{Message: "failed to load secrets from remote repository", Cause: err}
	}

	// The loaded record must be complete; a partial secrets file is a
	// failed initialization, not a degraded success.
	if missing := record.missingNames(); len(missing) > 0 {
		return nil, missingError("remote secrets file is incomplete", missing)
	}

	return record, nil
}

func (l *GitHubLoader) fetch(ctx context.Context) (*Record, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/contents/%s", l.baseURL, l.owner, l.repo, l.path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create contents request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+l.token)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute contents request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read contents response: %w", err)
	}

	var envelope contentEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode contents envelope: %w", err)
	}

	// The contents API wraps base64 across lines.
	raw, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(envelope.Content, "\n", ""))
	if err != nil {
		return nil, fmt.Errorf("failed to decode file content: %w", err)
	}

	var record Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to parse secrets file: %w", err)
	}

	return &record, nil
}
