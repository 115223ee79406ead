package github

import "time"

// Stargazer is one star on one repository.
type Stargazer struct {
	Login     string    `json:"login"`
	Name      string    `json:"name"`
	AvatarURL string    `json:"avatarUrl"`
	StarredAt time.Time `json:"starredAt"`
	RepoName  string    `json:"repo_name"`
}

// Repository is a repository summary with its stargazers, newest first.
type Repository struct {
	Name           string      `json:"name"`
	URL            string      `json:"url"`
	Description    string      `json:"description"`
	StargazerCount int         `json:"stargazer_count"`
	LastCommitDate *time.Time  `json:"last_commit_date"`
	LastCommitURL  string      `json:"last_commit_url"`
	Stargazers     []Stargazer `json:"stargazers"`
}

// StargazerGroup is one repository's stargazers, newest first.
type StargazerGroup struct {
	Name       string      `json:"name"`
	Stargazers []Stargazer `json:"stargazers"`
}

// StargazerGroups keeps groups in the order repositories were returned
// (most starred first).
type StargazerGroups []StargazerGroup

// Lookup returns the stargazers of the named repository.
func (g StargazerGroups) Lookup(name string) ([]Stargazer, bool) {
	for _, group := range g {
		if group.Name == name {
			return group.Stargazers, true
		}
	}
	return nil, false
}

// Names returns the repository names in order.
func (g StargazerGroups) Names() []string {
	names := make([]string, len(g))
	for i, group := range g {
		names[i] = group.Name
	}
	return names
}

// Account is a follower or sponsor.
type Account struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	URL       string `json:"url"`
}

// Counts are the totals shown on a profile.
type Counts struct {
	Repositories        int `json:"repositories"`
	Following           int `json:"following"`
	StarredRepositories int `json:"starredRepositories"`
	Sponsoring          int `json:"sponsoring"`
}

// User is a profile with flattened sponsor and follower lists.
type User struct {
	Login              string    `json:"login"`
	AvatarURL          string    `json:"avatarUrl"`
	WebsiteURL         string    `json:"websiteUrl"`
	HasSponsorsListing bool      `json:"hasSponsorsListing"`
	Counts             Counts    `json:"counts"`
	Sponsors           []Account `json:"sponsors"`
	Followers          []Account `json:"followers"`
}

// IsZero reports whether u is the empty profile.
func (u User) IsZero() bool {
	return u.Login == ""
}
