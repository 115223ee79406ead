package github

import "fmt"

const (
	// RepositoryLimit is how many repositories the stargazer query returns.
	RepositoryLimit = 100

	// StargazerLimit is how many stargazers are fetched per repository.
	StargazerLimit = 100

	// ConnectionLimit caps the sponsors and followers lists.
	ConnectionLimit = 100
)

// UserQuery fetches a user's profile.
var UserQuery = fmt.Sprintf(`
query($username: String!) {
  user(login: $username) {
    login
    avatarUrl
    websiteUrl
    hasSponsorsListing
    repositories(isFork: false, ownerAffiliations: OWNER) {
      totalCount
    }
    following {
      totalCount
    }
    starredRepositories {
      totalCount
    }
    sponsoring {
      totalCount
    }
    sponsors(first: %[1]d) {
      nodes {
        ... on User {
          login
          name
          avatarUrl
          url
        }
        ... on Organization {
          login
          name
          avatarUrl
          url
        }
      }
    }
    followers(first: %[1]d) {
      nodes {
        login
        name
        avatarUrl
        url
      }
    }
  }
}
`, ConnectionLimit)

// StargazersQuery fetches a user's non-fork repositories and their
// stargazers. Stargazers are ordered oldest first.
var StargazersQuery = fmt.Sprintf(`
query($username: String!) {
  user(login: $username) {
    login
    repositories(first: %d, isFork: false, ownerAffiliations: OWNER, orderBy: {field: STARGAZERS, direction: DESC}) {
      edges {
        node {
          name
          url
          description
          stargazerCount
          defaultBranchRef {
            target {
              ... on Commit {
                history(first: 1) {
                  nodes {
                    committedDate
                    url
                  }
                }
              }
            }
          }
          stargazers(last: %d, orderBy: {field: STARRED_AT, direction: ASC}) {
            edges {
              starredAt
              node {
                login
                name
                avatarUrl
              }
            }
          }
        }
      }
    }
  }
}
`, RepositoryLimit, StargazerLimit)
