package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/charmbracelet/log"
)

const apiEndpoint = "https://api.github.com/graphql"

// ErrMissingToken reports that no API token was supplied. The GraphQL API
// refuses unauthenticated queries, so there is no anonymous mode.
var ErrMissingToken = errors.New("github: missing API token")

const statsQuery = `
query ($login: String!, $after: String) {
  user(login: $login) {
    name
    followers { totalCount }
    contributionsCollection {
      totalCommitContributions
      totalPullRequestReviewContributions
    }
    repositoriesContributedTo(contributionTypes: [COMMIT, ISSUE, PULL_REQUEST, REPOSITORY]) { totalCount }
    pullRequests { totalCount }
    mergedPullRequests: pullRequests(states: MERGED) { totalCount }
    openIssues: issues(states: OPEN) { totalCount }
    closedIssues: issues(states: CLOSED) { totalCount }
    repositories(first: 100, ownerAffiliations: OWNER, orderBy: {field: STARGAZERS, direction: DESC}, after: $after) {
      nodes {
        name
        stargazers { totalCount }
        languages(first: 10, orderBy: {field: SIZE, direction: DESC}) {
          edges {
            size
            node { name }
          }
        }
      }
      pageInfo {
        hasNextPage
        endCursor
      }
    }
  }
}`

// Client talks to the GraphQL stats API.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   *log.Logger
}

// NewClient returns a Client authenticating with token.
func NewClient(token string, logger *log.Logger) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	return &Client{
		endpoint: apiEndpoint,
		token:    token,
		http:     &http.Client{Timeout: 30 * time.Second},
		logger:   logger,
	}, nil
}

// FetchUserStats aggregates the profile statistics for login. Repositories
// named in ignoreRepos are skipped for star and language totals; the repo
// list is paged through until exhausted.
func (c *Client) FetchUserStats(ctx context.Context, login string, ignoreRepos []string) (*UserStats, error) {
	ignored := make(map[string]bool, len(ignoreRepos))
	for _, name := range ignoreRepos {
		ignored[name] = true
	}

	stats := &UserStats{AccountName: login}
	langSizes := make(map[string]int)
	var after *string
	for page := 1; ; page++ {
		payload, err := c.query(ctx, login, after)
		if err != nil {
			return nil, err
		}
		if page == 1 {
			if payload.Name != "" {
				stats.AccountName = payload.Name
			}
			stats.TotalFollowers = payload.Followers.TotalCount
			stats.CommitsLastYear = payload.ContributionsCollection.TotalCommitContributions
			stats.ReviewsLastYear = payload.ContributionsCollection.TotalPullRequestReviewContributions
			stats.RepoContributions = payload.RepositoriesContributedTo.TotalCount
			stats.PullRequestsMade = payload.PullRequests.TotalCount
			stats.PullRequestsMerged = payload.MergedPullRequests.TotalCount
			stats.TotalIssues = payload.OpenIssues.TotalCount + payload.ClosedIssues.TotalCount
		}
		for _, repo := range payload.Repositories.Nodes {
			if ignored[repo.Name] {
				continue
			}
			stats.TotalStars += repo.Stargazers.TotalCount
			for _, edge := range repo.Languages.Edges {
				langSizes[edge.Node.Name] += edge.Size
			}
		}
		info := payload.Repositories.PageInfo
		if !info.HasNextPage {
			break
		}
		after = &info.EndCursor
	}

	stats.Languages = sortedLanguages(langSizes)
	if stats.PullRequestsMade > 0 {
		pct := float64(stats.PullRequestsMerged) / float64(stats.PullRequestsMade) * 100
		stats.MergedPercentage = math.Round(pct*100) / 100
	}
	stats.Rank = calcRank(stats.CommitsLastYear, stats.PullRequestsMade, stats.TotalIssues,
		stats.ReviewsLastYear, stats.TotalStars, stats.TotalFollowers)
	c.logger.Info("fetched profile stats",
		"user", login, "stars", stats.TotalStars, "rank", stats.Rank.Level)
	return stats, nil
}

type countNode struct {
	TotalCount int `json:"totalCount"`
}

type repoNode struct {
	Name       string    `json:"name"`
	Stargazers countNode `json:"stargazers"`
	Languages  struct {
		Edges []struct {
			Size int `json:"size"`
			Node struct {
				Name string `json:"name"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"languages"`
}

type statsPayload struct {
	Name                    string    `json:"name"`
	Followers               countNode `json:"followers"`
	ContributionsCollection struct {
		TotalCommitContributions            int `json:"totalCommitContributions"`
		TotalPullRequestReviewContributions int `json:"totalPullRequestReviewContributions"`
	} `json:"contributionsCollection"`
	RepositoriesContributedTo countNode `json:"repositoriesContributedTo"`
	PullRequests              countNode `json:"pullRequests"`
	MergedPullRequests        countNode `json:"mergedPullRequests"`
	OpenIssues                countNode `json:"openIssues"`
	ClosedIssues              countNode `json:"closedIssues"`
	Repositories              struct {
		Nodes    []repoNode `json:"nodes"`
		PageInfo struct {
			HasNextPage bool   `json:"hasNextPage"`
			EndCursor   string `json:"endCursor"`
		} `json:"pageInfo"`
	} `json:"repositories"`
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data struct {
		User *statsPayload `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *Client) query(ctx context.Context, login string, after *string) (*statsPayload, error) {
	body, err := json.Marshal(graphQLRequest{
		Query:     statsQuery,
		Variables: map[string]any{"login": login, "after": after},
	})
	if err != nil {
		return nil, fmt.Errorf("github: marshal query: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("github: build request: %w", err)
	}
	req.Header.Set("Authorization", "bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github: query stats: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github: api returned %s", resp.Status)
	}
	var decoded graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("github: decode response: %w", err)
	}
	if len(decoded.Errors) > 0 {
		return nil, fmt.Errorf("github: api error: %s", decoded.Errors[0].Message)
	}
	if decoded.Data.User == nil {
		return nil, fmt.Errorf("github: unknown user %q", login)
	}
	return decoded.Data.User, nil
}

func sortedLanguages(sizes map[string]int) []Language {
	langs := make([]Language, 0, len(sizes))
	for name, size := range sizes {
		langs = append(langs, Language{Name: name, Size: size})
	}
	sort.Slice(langs, func(i, j int) bool {
		if langs[i].Size != langs[j].Size {
			return langs[i].Size > langs[j].Size
		}
		return langs[i].Name < langs[j].Name
	})
	return langs
}
