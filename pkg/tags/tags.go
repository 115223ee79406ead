// Package tags exposes GitHub lookups as html/template functions.
//
// Every function returns a [Result] rather than an error, so a failed fetch
// never aborts rendering. Templates branch on the error:
//
//	{{ $r := stargazersByRepoName .Username }}
//	{{ if $r.Err }}
//	  <p class="error">{{ $r.Err }}</p>
//	{{ else }}
//	  {{ range $r.Data }}<h2>{{ .Name }}</h2>{{ end }}
//	{{ end }}
package tags

import (
	"context"
	"html/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/matzehuels/gitego/pkg/github"
	"github.com/matzehuels/gitego/pkg/graphql"
	"github.com/matzehuels/gitego/pkg/observability"
)

// Result pairs template data with the error that produced it, if any.
// On error Data is the empty value for its type.
type Result[T any] struct {
	Data T
	Err  error
}

// OK reports whether the lookup succeeded.
func (r Result[T]) OK() bool { return r.Err == nil }

// Fetcher is the subset of [github.Client] the library needs.
type Fetcher interface {
	FetchUser(ctx context.Context, login string) (github.User, error)
	FetchStargazers(ctx context.Context, login string) (graphql.Response, error)
}

// Library binds template functions to a Fetcher.
type Library struct {
	fetcher Fetcher
	limit   int
}

// New creates a Library. limit caps lastStargazers; 0 means
// [github.LastStargazersLimit].
func New(f Fetcher, limit int) *Library {
	if limit <= 0 {
		limit = github.LastStargazersLimit
	}
	return &Library{fetcher: f, limit: limit}
}

// User returns login's profile, or the empty profile on error.
func (l *Library) User(ctx context.Context, login string) (res Result[github.User]) {
	defer l.track(ctx, "user", login, time.Now(), &res.Err)

	u, err := l.fetcher.FetchUser(ctx, login)
	if err != nil {
		return Result[github.User]{Data: github.User{}, Err: err}
	}
	return Result[github.User]{Data: u}
}

// StargazersByRepoName returns login's stargazers grouped by repository.
func (l *Library) StargazersByRepoName(ctx context.Context, login string) (res Result[github.StargazerGroups]) {
	defer l.track(ctx, "stargazersByRepoName", login, time.Now(), &res.Err)

	payload, err := l.fetcher.FetchStargazers(ctx, login)
	if err != nil {
		return Result[github.StargazerGroups]{Data: github.StargazerGroups{}, Err: err}
	}
	return Result[github.StargazerGroups]{Data: github.GroupByRepository(payload, login)}
}

// LastStargazers returns login's most recent stargazers.
func (l *Library) LastStargazers(ctx context.Context, login string) (res Result[[]github.Stargazer]) {
	defer l.track(ctx, "lastStargazers", login, time.Now(), &res.Err)

	payload, err := l.fetcher.FetchStargazers(ctx, login)
	if err != nil {
		return Result[[]github.Stargazer]{Data: []github.Stargazer{}, Err: err}
	}
	return Result[[]github.Stargazer]{Data: github.LastStargazers(payload, login, l.limit)}
}

// Repository returns one of login's repositories. An unknown repository
// yields empty data and no error.
func (l *Library) Repository(ctx context.Context, login, name string) (res Result[github.Repository]) {
	defer l.track(ctx, "repository", login, time.Now(), &res.Err)

	if err := github.ValidateRepo(name); err != nil {
		return Result[github.Repository]{Data: emptyRepository(), Err: err}
	}
	payload, err := l.fetcher.FetchStargazers(ctx, login)
	if err != nil {
		return Result[github.Repository]{Data: emptyRepository(), Err: err}
	}
	repo, found := github.RepositoryDetail(payload, login, name)
	if !found {
		repo = emptyRepository()
	}
	return Result[github.Repository]{Data: repo}
}

func emptyRepository() github.Repository {
	return github.Repository{Stargazers: []github.Stargazer{}}
}

func (l *Library) track(ctx context.Context, tag, login string, start time.Time, err *error) {
	observability.Tags().OnTagComplete(ctx, tag, login, time.Since(start), *err)
}

// FuncMap returns the template functions bound to ctx. Build a new map per
// request so cancellation reaches the upstream call.
func (l *Library) FuncMap(ctx context.Context) template.FuncMap {
	return template.FuncMap{
		"user": func(login string) Result[github.User] {
			return l.User(ctx, login)
		},
		"stargazersByRepoName": func(login string) Result[github.StargazerGroups] {
			return l.StargazersByRepoName(ctx, login)
		},
		"lastStargazers": func(login string) Result[[]github.Stargazer] {
			return l.LastStargazers(ctx, login)
		},
		"repository": func(login, name string) Result[github.Repository] {
			return l.Repository(ctx, login, name)
		},
		"strToDate": func(s string) time.Time {
			t, _ := StrToDate(s)
			return t
		},
		"timeSince": TimeSince,
	}
}

// StrToDate parses an RFC 3339 timestamp. ok is false, and t the zero
// time, for input it cannot parse.
func StrToDate(s string) (t time.Time, ok bool) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// TimeSince renders a coarse relative time such as "3 days ago".
func TimeSince(t time.Time) string {
	return relativeTime(t, time.Now())
}

func relativeTime(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}
