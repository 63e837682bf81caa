package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"

	"github.com/vmvarela/ghoten-ui/internal/domain"
	"github.com/vmvarela/ghoten-ui/internal/logger"
)

const (
	pageSize = 100
	cacheTTL = 5 * time.Minute
)

// TokenClearer is satisfied by the auth token store. A 401 response
// clears the stored token so the caller is forced to re-authenticate.
type TokenClearer interface {
	Clear() error
}

type DirEntry struct {
	Name string
	Path string
	Type string
}

// Client wraps the GitHub REST API with response caching, pagination,
// and error classification.
type Client struct {
	gh         *github.Client
	httpClient *http.Client
	tokens     TokenClearer
	cache      *ttlCache
}

func NewClient(token string, tokens TokenClearer) *Client {
	hc := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		hc = oauth2.NewClient(context.Background(), ts)
	}
	hc.Timeout = 30 * time.Second
	hc.Transport = newLoggingTransport(hc.Transport)

	return &Client{
		gh:         github.NewClient(hc),
		httpClient: hc,
		tokens:     tokens,
		cache:      newTTLCache(cacheTTL),
	}
}

func (c *Client) ClearCache() {
	c.cache.clear()
}

// classify maps a go-github error to the client's error taxonomy. A 401
// clears the stored token as a side effect.
func (c *Client) classify(err error) error {
	if err == nil {
		return nil
	}

	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		return ErrRateLimited
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return ErrRateLimited
	}

	var apiErr *github.ErrorResponse
	if errors.As(err, &apiErr) && apiErr.Response != nil {
		switch apiErr.Response.StatusCode {
		case http.StatusUnauthorized:
			if c.tokens != nil {
				if clearErr := c.tokens.Clear(); clearErr != nil {
					logger.LogError("TOKEN_CLEAR", "401 response", clearErr)
				}
			}
			return ErrUnauthorized
		case http.StatusForbidden:
			return ErrRateLimited
		case http.StatusNotFound:
			return ErrNotFound
		default:
			return &APIError{StatusCode: apiErr.Response.StatusCode, Message: apiErr.Message}
		}
	}

	return fmt.Errorf("request failed: %w", err)
}

func (c *Client) CurrentUser(ctx context.Context) (domain.User, error) {
	user, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return domain.User{}, c.classify(err)
	}

	return domain.User{
		Login:     user.GetLogin(),
		Name:      user.GetName(),
		AvatarURL: user.GetAvatarURL(),
	}, nil
}

func (c *Client) UserOrganizations(ctx context.Context) ([]domain.Organization, error) {
	orgs, _, err := c.gh.Organizations.List(ctx, "", nil)
	if err != nil {
		return nil, c.classify(err)
	}

	result := make([]domain.Organization, 0, len(orgs))
	for _, org := range orgs {
		result = append(result, domain.Organization{
			Login:       org.GetLogin(),
			Description: org.GetDescription(),
		})
	}
	return result, nil
}

func (c *Client) GetOrganization(ctx context.Context, org string) (domain.Organization, error) {
	found, _, err := c.gh.Organizations.Get(ctx, org)
	if err != nil {
		return domain.Organization{}, fmt.Errorf("organization not accessible: %s: %w", org, c.classify(err))
	}

	return domain.Organization{
		Login:       found.GetLogin(),
		Description: found.GetDescription(),
	}, nil
}

// ListOrgRepositories lists all repositories of an organization,
// paginating until a short page marks the end. Results are cached.
func (c *Client) ListOrgRepositories(ctx context.Context, org string) ([]domain.Repository, error) {
	return cached(c, "repos:"+org, func() ([]domain.Repository, error) {
		logger.Log("Listing repositories for org %s", org)

		var repos []domain.Repository
		opts := &github.RepositoryListByOrgOptions{
			Sort:        "updated",
			Direction:   "desc",
			ListOptions: github.ListOptions{Page: 1, PerPage: pageSize},
		}

		for {
			page, _, err := c.gh.Repositories.ListByOrg(ctx, org, opts)
			if err != nil {
				return nil, c.classify(err)
			}
			for _, repo := range page {
				repos = append(repos, convertRepository(repo))
			}
			if len(page) < pageSize {
				break
			}
			opts.Page++
		}

		logger.Log("Found %d repositories in %s", len(repos), org)
		return repos, nil
	})
}

// ListUserRepositories lists repositories owned by the given login. The
// API can leak repositories from other scopes, so results are filtered
// to the requested owner.
func (c *Client) ListUserRepositories(ctx context.Context, user string) ([]domain.Repository, error) {
	return cached(c, "user-repos:"+user, func() ([]domain.Repository, error) {
		logger.Log("Listing repositories for user %s", user)

		var repos []domain.Repository
		opts := &github.RepositoryListOptions{
			Affiliation: "owner",
			Visibility:  "all",
			Sort:        "updated",
			Direction:   "desc",
			ListOptions: github.ListOptions{Page: 1, PerPage: pageSize},
		}

		for {
			page, _, err := c.gh.Repositories.List(ctx, "", opts)
			if err != nil {
				return nil, c.classify(err)
			}
			for _, repo := range page {
				if !strings.EqualFold(repo.GetOwner().GetLogin(), user) {
					continue
				}
				repos = append(repos, convertRepository(repo))
			}
			if len(page) < pageSize {
				break
			}
			opts.Page++
		}

		logger.Log("Found %d repositories owned by %s", len(repos), user)
		return repos, nil
	})
}

// GetFileContent fetches a repository content entry and decodes it to
// plain text. Directories and other non-file entries are rejected.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path string) (string, error) {
	fileContent, _, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return "", fmt.Errorf("failed to get file %s: %w", path, c.classify(err))
	}
	if fileContent == nil || fileContent.GetType() != "file" {
		return "", fmt.Errorf("failed to get file %s: %w", path, ErrNotAFile)
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode file %s: %w", path, err)
	}
	return content, nil
}

// ListDirectoryContents lists a directory, returning an empty slice on
// any failure since callers treat a missing directory as empty.
func (c *Client) ListDirectoryContents(ctx context.Context, owner, repo, path string) []DirEntry {
	_, dir, _, err := c.gh.Repositories.GetContents(ctx, owner, repo, path, nil)
	if err != nil {
		return nil
	}

	entries := make([]DirEntry, 0, len(dir))
	for _, entry := range dir {
		entries = append(entries, DirEntry{
			Name: entry.GetName(),
			Path: entry.GetPath(),
			Type: entry.GetType(),
		})
	}
	return entries
}

// DispatchWorkflow triggers a workflow file on ref main. Transient
// failures surface directly; there is no retry here.
func (c *Client) DispatchWorkflow(ctx context.Context, owner, repo, workflowFile string, inputs map[string]interface{}) error {
	event := github.CreateWorkflowDispatchEventRequest{
		Ref:    "main",
		Inputs: inputs,
	}

	logger.Log("Dispatching workflow %s on %s/%s", workflowFile, owner, repo)
	_, err := c.gh.Actions.CreateWorkflowDispatchEventByFileName(ctx, owner, repo, workflowFile, event)
	if err != nil {
		return c.classify(err)
	}
	return nil
}

func (c *Client) ListWorkflowRuns(ctx context.Context, owner, repo string, limit int) ([]domain.WorkflowRun, error) {
	if limit <= 0 {
		limit = 10
	}

	opts := &github.ListWorkflowRunsOptions{
		ListOptions: github.ListOptions{PerPage: limit},
	}

	runs, _, err := c.gh.Actions.ListRepositoryWorkflowRuns(ctx, owner, repo, opts)
	if err != nil {
		return nil, c.classify(err)
	}

	result := make([]domain.WorkflowRun, 0, len(runs.WorkflowRuns))
	for _, run := range runs.WorkflowRuns {
		result = append(result, convertWorkflowRun(run))
	}
	return result, nil
}

// GetWorkflowRunLogs resolves the signed log URL for a run and returns
// the raw body.
func (c *Client) GetWorkflowRunLogs(ctx context.Context, owner, repo string, runID int64) (string, error) {
	logsURL, _, err := c.gh.Actions.GetWorkflowRunLogs(ctx, owner, repo, runID, 3)
	if err != nil {
		return "", c.classify(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, logsURL.String(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch logs: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Message: "failed to fetch logs"}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read logs: %w", err)
	}
	return string(body), nil
}

func convertRepository(repo *github.Repository) domain.Repository {
	return domain.Repository{
		Owner:       repo.GetOwner().GetLogin(),
		Name:        repo.GetName(),
		FullName:    repo.GetFullName(),
		Private:     repo.GetPrivate(),
		HTMLURL:     repo.GetHTMLURL(),
		Description: repo.GetDescription(),
	}
}

func convertWorkflowRun(run *github.WorkflowRun) domain.WorkflowRun {
	return domain.WorkflowRun{
		ID:         run.GetID(),
		Name:       run.GetName(),
		Status:     domain.RunStatus(run.GetStatus()),
		Conclusion: run.GetConclusion(),
		Branch:     run.GetHeadBranch(),
		HTMLURL:    run.GetHTMLURL(),
		CreatedAt:  run.GetCreatedAt().Time,
		UpdatedAt:  run.GetUpdatedAt().Time,
	}
}
