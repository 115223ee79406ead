// Package graphql is a small caching client for a GraphQL-over-HTTP endpoint.
//
// # Usage
//
//	client, err := graphql.NewClient(token)
//	if err != nil {
//	    return err
//	}
//	resp, err := client.Fetch(ctx, query, map[string]any{"username": "octocat"})
//	if err != nil {
//	    return err
//	}
//	login := resp.Get("user.login").String()
//
// # Caching
//
// Successful responses are cached under a key derived from the query text
// and the serialized variables (see [cache.Keyer]). A repeated request
// inside the TTL (30 seconds by default) is answered from the cache without
// a network call. Concurrent misses for the same key share one request.
//
// # Errors
//
// A non-2xx answer returns [*HTTPStatusError]. A 2xx answer whose body lists
// errors returns [*Error] describing the first of them. Transport failures
// are wrapped with the NETWORK_ERROR or TIMEOUT codes from pkg/errors.
// Nothing is retried unless [WithRetries] is given.
//
// [cache.Keyer]: github.com/matzehuels/gitego/pkg/cache.Keyer
package graphql
