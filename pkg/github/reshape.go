package github

import (
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/matzehuels/gitego/pkg/graphql"
)

// LastStargazersLimit is the default cap for [LastStargazers].
const LastStargazersLimit = 50

const repositoryEdgesPath = "user.repositories.edges"

// GroupByRepository groups the stargazers of a [StargazersQuery] payload by
// repository, newest star first.
//
// A repository only gets a group if it has at least one stargazer edge, so
// unstarred repositories are left out. The group is opened before self-stars
// are filtered: a repository starred only by its owner has an empty group.
func GroupByRepository(payload []byte, username string) StargazerGroups {
	groups := StargazerGroups{}
	for _, repo := range graphql.Response(payload).Get(repositoryEdgesPath).Array() {
		edges := repo.Get("node.stargazers.edges").Array()
		if len(edges) == 0 {
			continue
		}
		name := repo.Get("node.name").String()
		groups = append(groups, StargazerGroup{
			Name:       name,
			Stargazers: newestFirst(edges, name, username),
		})
	}
	return groups
}

// LastStargazers returns the most recent stargazers across all repositories,
// sorted by starredAt descending and capped at limit. A limit <= 0 means
// [LastStargazersLimit].
func LastStargazers(payload []byte, username string, limit int) []Stargazer {
	if limit <= 0 {
		limit = LastStargazersLimit
	}

	all := []Stargazer{}
	for _, repo := range graphql.Response(payload).Get(repositoryEdgesPath).Array() {
		name := repo.Get("node.name").String()
		for _, edge := range repo.Get("node.stargazers.edges").Array() {
			if s, ok := parseStargazer(edge, name, username); ok {
				all = append(all, s)
			}
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].StarredAt.After(all[j].StarredAt)
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all
}

// RepositoryDetail extracts one repository by name. The second result is
// false when the payload has no repository with that name.
func RepositoryDetail(payload []byte, username, name string) (Repository, bool) {
	for _, repo := range graphql.Response(payload).Get(repositoryEdgesPath).Array() {
		node := repo.Get("node")
		if node.Get("name").String() != name {
			continue
		}

		r := Repository{
			Name:           name,
			URL:            node.Get("url").String(),
			Description:    node.Get("description").String(),
			StargazerCount: int(node.Get("stargazerCount").Int()),
			Stargazers:     newestFirst(node.Get("stargazers.edges").Array(), name, username),
		}
		commit := node.Get("defaultBranchRef.target.history.nodes.0")
		if commit.Exists() {
			if d := commit.Get("committedDate"); d.Exists() {
				t := d.Time()
				r.LastCommitDate = &t
			}
			r.LastCommitURL = commit.Get("url").String()
		}
		return r, true
	}
	return Repository{}, false
}

// ParseUser flattens a [UserQuery] payload. A payload without a user yields
// the zero User.
func ParseUser(payload []byte) User {
	user := graphql.Response(payload).Get("user")
	if !user.IsObject() {
		return User{}
	}
	return User{
		Login:              user.Get("login").String(),
		AvatarURL:          user.Get("avatarUrl").String(),
		WebsiteURL:         user.Get("websiteUrl").String(),
		HasSponsorsListing: user.Get("hasSponsorsListing").Bool(),
		Counts: Counts{
			Repositories:        int(user.Get("repositories.totalCount").Int()),
			Following:           int(user.Get("following.totalCount").Int()),
			StarredRepositories: int(user.Get("starredRepositories.totalCount").Int()),
			Sponsoring:          int(user.Get("sponsoring.totalCount").Int()),
		},
		Sponsors:  parseAccounts(user.Get("sponsors.nodes")),
		Followers: parseAccounts(user.Get("followers.nodes")),
	}
}

// newestFirst converts ascending stargazer edges into a newest-first list,
// skipping self-stars.
func newestFirst(edges []gjson.Result, repoName, username string) []Stargazer {
	out := make([]Stargazer, 0, len(edges))
	for _, edge := range edges {
		if s, ok := parseStargazer(edge, repoName, username); ok {
			out = append(out, s)
		}
	}
	slices.Reverse(out)
	return out
}

func parseStargazer(edge gjson.Result, repoName, username string) (Stargazer, bool) {
	node := edge.Get("node")
	login := node.Get("login").String()
	// GitHub logins are case-insensitive.
	if strings.EqualFold(login, username) {
		return Stargazer{}, false
	}
	var starredAt time.Time
	if v := edge.Get("starredAt"); v.Exists() {
		starredAt = v.Time()
	}
	return Stargazer{
		Login:     login,
		Name:      node.Get("name").String(),
		AvatarURL: node.Get("avatarUrl").String(),
		StarredAt: starredAt,
		RepoName:  repoName,
	}, true
}

func parseAccounts(nodes gjson.Result) []Account {
	accounts := []Account{}
	for _, n := range nodes.Array() {
		// Sponsors can be entities the token cannot see; those come back empty.
		if n.Get("login").String() == "" {
			continue
		}
		accounts = append(accounts, Account{
			Login:     n.Get("login").String(),
			Name:      n.Get("name").String(),
			AvatarURL: n.Get("avatarUrl").String(),
			URL:       n.Get("url").String(),
		})
	}
	return accounts
}
