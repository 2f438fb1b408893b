// Package github fetches documents from GitHub repositories.
//
// URIs use the form github://owner/repo/path/to/file[@ref]. The fetcher
// resolves the file through the contents API, so private repositories work
// with a personal access token.
package github

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
	"github.com/custodia-labs/summa-cli/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// scheme is the URI scheme this fetcher handles.
const scheme = "github://"

// defaultTimeout is the HTTP request timeout for GitHub API calls.
const defaultTimeout = 30 * time.Second

// Fetcher retrieves files from GitHub via the contents API.
type Fetcher struct {
	gh      *gh.Client
	limiter *rateLimiter
}

// New creates a GitHub fetcher. An empty token gives unauthenticated access
// to public repositories only.
func New(token string) *Fetcher {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	} else {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = defaultTimeout

	return &Fetcher{
		gh:      gh.NewClient(httpClient),
		limiter: newRateLimiter(),
	}
}

// Supports reports whether the URI uses the github:// scheme.
func (f *Fetcher) Supports(uri string) bool {
	return strings.HasPrefix(uri, scheme)
}

// Fetch downloads the file named by the URI.
func (f *Fetcher) Fetch(ctx context.Context, uri string) (*domain.RawDocument, error) {
	owner, repo, path, ref, err := parseURI(uri)
	if err != nil {
		return nil, err
	}

	if err := f.limiter.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	opts := &gh.RepositoryContentGetOptions{Ref: ref}
	content, _, resp, err := f.gh.Repositories.GetContents(ctx, owner, repo, path, opts)
	if resp != nil {
		f.limiter.updateFromResponse(resp.Response)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", uri, err)
	}
	if content == nil {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, uri)
	}

	decoded, err := content.GetContent()
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", uri, err)
	}

	return &domain.RawDocument{
		URI:      uri,
		MIMEType: mimeTypeFor(path),
		Content:  []byte(decoded),
		Metadata: map[string]any{
			"owner": owner,
			"repo":  repo,
			"path":  path,
			"sha":   content.GetSHA(),
		},
	}, nil
}

// parseURI splits github://owner/repo/path[@ref] into its parts.
func parseURI(uri string) (owner, repo, path, ref string, err error) {
	rest := strings.TrimPrefix(uri, scheme)

	if at := strings.LastIndex(rest, "@"); at >= 0 {
		ref = rest[at+1:]
		rest = rest[:at]
	}

	parts := strings.SplitN(rest, "/", 3)
	if len(parts) < 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return "", "", "", "", fmt.Errorf(
			"%w: expected github://owner/repo/path, got %q", domain.ErrInvalidInput, uri)
	}

	return parts[0], parts[1], parts[2], ref, nil
}

// mimeTypeFor maps a repository path to a MIME type by extension.
func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md":
		return "text/markdown"
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		return "text/plain"
	}
}
