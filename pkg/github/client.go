package github

import (
	"context"

	"github.com/matzehuels/gitego/pkg/graphql"
)

// Querier runs a GraphQL query. [*graphql.Client] implements it.
type Querier interface {
	Fetch(ctx context.Context, query string, variables map[string]any) (graphql.Response, error)
}

// Client fetches and reshapes user data.
type Client struct {
	gql Querier
}

// NewClient wraps a GraphQL client.
func NewClient(gql Querier) *Client {
	return &Client{gql: gql}
}

// FetchUser returns the profile of login.
func (c *Client) FetchUser(ctx context.Context, login string) (User, error) {
	if err := ValidateLogin(login); err != nil {
		return User{}, err
	}
	resp, err := c.gql.Fetch(ctx, UserQuery, map[string]any{"username": login})
	if err != nil {
		return User{}, err
	}
	return ParseUser(resp), nil
}

// FetchStargazers returns the raw [StargazersQuery] payload for login.
func (c *Client) FetchStargazers(ctx context.Context, login string) (graphql.Response, error) {
	if err := ValidateLogin(login); err != nil {
		return nil, err
	}
	return c.gql.Fetch(ctx, StargazersQuery, map[string]any{"username": login})
}

// StargazersByRepoName fetches and groups login's stargazers.
func (c *Client) StargazersByRepoName(ctx context.Context, login string) (StargazerGroups, error) {
	payload, err := c.FetchStargazers(ctx, login)
	if err != nil {
		return StargazerGroups{}, err
	}
	return GroupByRepository(payload, login), nil
}

// LastStargazers fetches login's most recent stargazers.
func (c *Client) LastStargazers(ctx context.Context, login string, limit int) ([]Stargazer, error) {
	payload, err := c.FetchStargazers(ctx, login)
	if err != nil {
		return []Stargazer{}, err
	}
	return LastStargazers(payload, login, limit), nil
}

// Repository fetches one of login's repositories. found is false when
// login has no non-fork repository with that name.
func (c *Client) Repository(ctx context.Context, login, name string) (repo Repository, found bool, err error) {
	if err := ValidateRepo(name); err != nil {
		return Repository{}, false, err
	}
	payload, err := c.FetchStargazers(ctx, login)
	if err != nil {
		return Repository{}, false, err
	}
	repo, found = RepositoryDetail(payload, login, name)
	return repo, found, nil
}
