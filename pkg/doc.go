// Package pkg provides the libraries behind gitego.
//
// # Overview
//
// gitego looks up a GitHub user and shows who starred their repositories,
// newest first. The pkg directory is organized into three areas:
//
//  1. [graphql] and [cache] - Upstream access (authenticated POSTs, TTL cache)
//  2. [github] - Queries and the pure functions that reshape their payloads
//  3. [tags] - Template functions that turn failures into renderable results
//
// Supporting packages: [errors] for coded errors, [httputil] for retries,
// [observability] for hooks, and [buildinfo] for version data.
//
// # Architecture
//
// The typical data flow through gitego:
//
//	GitHub GraphQL API
//	         ↓
//	graphql.Client (cache lookup → POST → cache store)
//	         ↓
//	github (GroupByRepository / LastStargazers / RepositoryDetail)
//	         ↓
//	tags.Library (Result{Data, Err})
//	         ↓
//	html/template page or JSON API
//
// # Quick Start
//
//	gql, err := graphql.NewClient(os.Getenv("GITHUB_PERSONAL_ACCESS_TOKEN"))
//	if err != nil {
//	    return err
//	}
//	client := github.NewClient(gql)
//
//	groups, err := client.StargazersByRepoName(ctx, "octocat")
//	if err != nil {
//	    return err
//	}
//	for _, g := range groups {
//	    fmt.Println(g.Name, len(g.Stargazers))
//	}
//
// # Caching
//
// Successful responses are cached for 30 seconds under a key derived from
// the query and its variables. [cache.MemoryCache] serves a single process,
// [cache.FileCache] survives between CLI runs, and [cache.RedisCache] is
// shared between server replicas.
//
// [graphql]: https://pkg.go.dev/github.com/matzehuels/gitego/pkg/graphql
// [cache]: https://pkg.go.dev/github.com/matzehuels/gitego/pkg/cache
// [cache.MemoryCache]: https://pkg.go.dev/github.com/matzehuels/gitego/pkg/cache#MemoryCache
// [cache.FileCache]: https://pkg.go.dev/github.com/matzehuels/gitego/pkg/cache#FileCache
// [cache.RedisCache]: https://pkg.go.dev/github.com/matzehuels/gitego/pkg/cache#RedisCache
// [github]: https://pkg.go.dev/github.com/matzehuels/gitego/pkg/github
// [tags]: https://pkg.go.dev/github.com/matzehuels/gitego/pkg/tags
// [errors]: https://pkg.go.dev/github.com/matzehuels/gitego/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/gitego/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/gitego/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/gitego/pkg/buildinfo
package pkg
