package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
	"golang.org/x/oauth2"
)

// GitHubAnalyzer reports remote repository activity: open issue and pull
// request counts. These are surfaced in the report but never scored.
type GitHubAnalyzer struct {
	repo   string // "owner/name"
	token  string
	client *github.Client
}

var _ contract.Analyzer = (*GitHubAnalyzer)(nil)

// NewGitHubAnalyzer creates an analyzer for the given "owner/name" repository.
// The token is optional; unauthenticated requests work for public
// repositories within rate limits.
func NewGitHubAnalyzer(repo, token string) *GitHubAnalyzer {
	return &GitHubAnalyzer{repo: repo, token: token}
}

// Name implements the contract.Analyzer interface.
func (a *GitHubAnalyzer) Name() string { return "github" }

// Gather implements the contract.Analyzer interface.
func (a *GitHubAnalyzer) Gather(ctx context.Context, _ *contract.Config) ([]schema.Metric, []schema.Diagnostic, error) {
	owner, name, err := splitRepo(a.repo)
	if err != nil {
		return nil, nil, err
	}

	client := a.client
	if client == nil {
		httpClient := oauth2.NewClient(ctx, nil)
		if a.token != "" {
			ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: a.token})
			httpClient = oauth2.NewClient(ctx, ts)
		}
		client = github.NewClient(httpClient)
	}

	repo, _, err := client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching %s: %w", a.repo, err)
	}

	prs, _, err := client.PullRequests.List(ctx, owner, name, &github.PullRequestListOptions{
		State:       "open",
		ListOptions: github.ListOptions{PerPage: 100},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("listing pull requests for %s: %w", a.repo, err)
	}

	// OpenIssuesCount includes pull requests; subtract them out.
	openIssues := repo.GetOpenIssuesCount() - len(prs)
	if openIssues < 0 {
		openIssues = 0
	}

	return []schema.Metric{
		{
			ID:       "github.issues.open",
			Title:    "Open issues",
			Category: schema.BuildCategory,
			Value:    schema.CountValue(int64(openIssues)),
			Details:  map[string]string{"repo": a.repo},
		},
		{
			ID:       "github.pulls.open",
			Title:    "Open pull requests",
			Category: schema.BuildCategory,
			Value:    schema.CountValue(int64(len(prs))),
			Details:  map[string]string{"repo": a.repo},
		},
	}, nil, nil
}

// splitRepo parses an "owner/name" repository reference.
func splitRepo(repo string) (owner, name string, err error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q, expected owner/name", repo)
	}
	return parts[0], parts[1], nil
}
