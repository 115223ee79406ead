package github

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func logins(stargazers []Stargazer) []string {
	out := make([]string, len(stargazers))
	for i, s := range stargazers {
		out[i] = s.Login
	}
	return out
}

func TestGroupByRepository(t *testing.T) {
	groups := GroupByRepository(loadFixture(t, "stargazers.json"), "octocat")

	assert.Equal(t, []string{"alpha", "gamma", "delta"}, groups.Names(), "unstarred beta is omitted")

	alpha, ok := groups.Lookup("alpha")
	require.True(t, ok)
	assert.Equal(t, []string{"carol", "bob"}, logins(alpha), "newest star first, self-star removed")
	assert.Equal(t, "alpha", alpha[0].RepoName)
	assert.Equal(t, time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC), alpha[0].StarredAt.UTC())
	assert.Equal(t, "Carol", alpha[0].Name)

	gamma, ok := groups.Lookup("gamma")
	require.True(t, ok, "a repository starred only by its owner still has a group")
	assert.Empty(t, gamma)

	delta, _ := groups.Lookup("delta")
	require.Len(t, delta, 1)
	assert.Equal(t, "", delta[0].Name, "null name becomes empty")

	_, ok = groups.Lookup("beta")
	assert.False(t, ok)
}

func TestGroupByRepository_NoStars(t *testing.T) {
	payload := []byte(`{"user":{"repositories":{"edges":[
		{"node":{"name":"a","stargazers":{"edges":[]}}},
		{"node":{"name":"b","stargazers":{"edges":[]}}}
	]}}}`)

	groups := GroupByRepository(payload, "octocat")
	assert.NotNil(t, groups)
	assert.Empty(t, groups)
}

func TestGroupByRepository_EmptyPayload(t *testing.T) {
	assert.Empty(t, GroupByRepository(nil, "octocat"))
	assert.Empty(t, GroupByRepository([]byte(`{"user":null}`), "octocat"))
}

func TestGroupByRepository_TwoStargazersOrder(t *testing.T) {
	payload := []byte(`{"user":{"repositories":{"edges":[{"node":{"name":"R","stargazers":{"edges":[
		{"starredAt":"2024-01-01T00:00:00Z","node":{"login":"s1"}},
		{"starredAt":"2024-01-02T00:00:00Z","node":{"login":"s2"}}
	]}}}]}}}`)

	r, ok := GroupByRepository(payload, "owner").Lookup("R")
	require.True(t, ok)
	assert.Equal(t, []string{"s2", "s1"}, logins(r))
}

func TestSelfStarExcludedCaseInsensitive(t *testing.T) {
	payload := loadFixture(t, "stargazers.json")

	for _, s := range LastStargazers(payload, "OctoCat", 0) {
		assert.NotEqual(t, "octocat", s.Login)
	}
	for _, g := range GroupByRepository(payload, "OCTOCAT") {
		for _, s := range g.Stargazers {
			assert.NotEqual(t, "octocat", s.Login)
		}
	}
	repo, _ := RepositoryDetail(payload, "Octocat", "alpha")
	assert.NotContains(t, logins(repo.Stargazers), "octocat")
}

func TestLastStargazers(t *testing.T) {
	got := LastStargazers(loadFixture(t, "stargazers.json"), "octocat", 0)

	assert.Equal(t, []string{"dave", "carol", "bob"}, logins(got))
	assert.Equal(t, "delta", got[0].RepoName)
	assert.Equal(t, "alpha", got[2].RepoName)
}

func TestLastStargazers_Limit(t *testing.T) {
	payload := syntheticPayload(t, 3, 30)

	got := LastStargazers(payload, "owner", 0)
	require.Len(t, got, LastStargazersLimit)
	for i := 1; i < len(got); i++ {
		assert.False(t, got[i].StarredAt.After(got[i-1].StarredAt),
			"entry %d is newer than entry %d", i, i-1)
	}

	assert.Len(t, LastStargazers(payload, "owner", 5), 5)
	assert.Len(t, LastStargazers(payload, "owner", 500), 90)
}

func TestLastStargazers_Empty(t *testing.T) {
	got := LastStargazers([]byte(`{}`), "octocat", 0)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRepositoryDetail(t *testing.T) {
	payload := loadFixture(t, "stargazers.json")

	repo, ok := RepositoryDetail(payload, "octocat", "alpha")
	require.True(t, ok)
	assert.Equal(t, "alpha", repo.Name)
	assert.Equal(t, "https://github.com/octocat/alpha", repo.URL)
	assert.Equal(t, "First repository", repo.Description)
	assert.Equal(t, 3, repo.StargazerCount)
	require.NotNil(t, repo.LastCommitDate)
	assert.Equal(t, time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC), repo.LastCommitDate.UTC())
	assert.Equal(t, "https://github.com/octocat/alpha/commit/abc123", repo.LastCommitURL)
	assert.Equal(t, []string{"carol", "bob"}, logins(repo.Stargazers))

	beta, ok := RepositoryDetail(payload, "octocat", "beta")
	require.True(t, ok, "detail includes repositories without stars")
	assert.Nil(t, beta.LastCommitDate)
	assert.Empty(t, beta.LastCommitURL)
	assert.Empty(t, beta.Description)
	assert.Empty(t, beta.Stargazers)

	_, ok = RepositoryDetail(payload, "octocat", "missing")
	assert.False(t, ok)
}

func TestParseUser(t *testing.T) {
	u := ParseUser(loadFixture(t, "user.json"))

	assert.Equal(t, "octocat", u.Login)
	assert.Equal(t, "https://octocat.example", u.WebsiteURL)
	assert.True(t, u.HasSponsorsListing)
	assert.Equal(t, Counts{Repositories: 8, Following: 9, StarredRepositories: 42, Sponsoring: 2}, u.Counts)

	require.Len(t, u.Sponsors, 1, "empty sponsor nodes are dropped")
	assert.Equal(t, "acme", u.Sponsors[0].Login)
	require.Len(t, u.Followers, 2)
	assert.Equal(t, "", u.Followers[1].Name)
	assert.False(t, u.IsZero())
}

func TestParseUser_Missing(t *testing.T) {
	assert.True(t, ParseUser([]byte(`{"user":null}`)).IsZero())
	assert.True(t, ParseUser(nil).IsZero())
}

func TestStargazerJSON(t *testing.T) {
	out, err := json.Marshal(Stargazer{
		Login:     "bob",
		StarredAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		RepoName:  "alpha",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"login":"bob","name":"","avatarUrl":"","starredAt":"2024-01-01T00:00:00Z","repo_name":"alpha"}`, string(out))
}

// syntheticPayload builds a stargazer payload with repos repositories of
// stars stargazers each, at distinct hourly timestamps.
func syntheticPayload(t *testing.T, repos, stars int) []byte {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var edges []map[string]any
	for r := 0; r < repos; r++ {
		var sg []map[string]any
		for s := 0; s < stars; s++ {
			// Interleave repositories so sorting has work to do.
			at := base.Add(time.Duration(s*repos+r) * time.Hour)
			sg = append(sg, map[string]any{
				"starredAt": at.Format(time.RFC3339),
				"node":      map[string]any{"login": fmt.Sprintf("user-%d-%d", r, s)},
			})
		}
		edges = append(edges, map[string]any{"node": map[string]any{
			"name":       fmt.Sprintf("repo-%d", r),
			"stargazers": map[string]any{"edges": sg},
		}})
	}

	data, err := json.Marshal(map[string]any{"user": map[string]any{
		"repositories": map[string]any{"edges": edges},
	}})
	require.NoError(t, err)
	return data
}
