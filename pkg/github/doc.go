// Package github fetches a user's profile and stargazers from the GitHub
// GraphQL API and reshapes them for templates.
//
// # Queries
//
// Two fixed documents are sent, both keyed by $username:
//
//   - [UserQuery]: profile, counts, sponsors and followers
//   - [StargazersQuery]: the user's non-fork repositories with up to 100
//     stargazers each, oldest star first
//
// # Reshaping
//
// The reshaping functions are pure and operate on the raw payload:
//
//   - [GroupByRepository]: stargazers grouped per repository, newest first
//   - [LastStargazers]: the most recent stargazers across all repositories
//   - [RepositoryDetail]: one repository's metadata and stargazers
//
// The queried user never appears in a stargazer list; GitHub lets owners
// star their own repositories and those stars are dropped.
//
// # Usage
//
//	gql, _ := graphql.NewClient(token)
//	client := github.NewClient(gql)
//	groups, err := client.StargazersByRepoName(ctx, "octocat")
package github
