// Package httputil provides retry helpers for upstream HTTP calls.
//
// [Retry] re-runs an operation only when it fails with an error wrapped by
// [Retryable]. Callers decide what is transient: the GraphQL client marks
// transport failures and 5xx answers, never 4xx answers or GraphQL errors.
//
//	err := httputil.Retry(ctx, 3, time.Second, func() error {
//	    return doRequest()
//	})
//
// An attempt count of 1 disables retrying, which is the client default.
package httputil
