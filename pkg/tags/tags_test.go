package tags

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/gitego/pkg/errors"
	"github.com/matzehuels/gitego/pkg/github"
	"github.com/matzehuels/gitego/pkg/graphql"
	"github.com/matzehuels/gitego/pkg/observability"
)

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "github", "testdata", name))
	require.NoError(t, err)
	return data
}

// newUpstream serves the user and stargazer fixtures, or status when non-zero.
func newUpstream(t *testing.T, status int) *Library {
	t.Helper()
	user := fixture(t, "user.json")
	stargazers := fixture(t, "stargazers.json")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != 0 {
			http.Error(w, "upstream broke", status)
			return
		}
		var body bytes.Buffer
		_, _ = body.ReadFrom(r.Body)
		payload := stargazers
		if bytes.Contains(body.Bytes(), []byte("hasSponsorsListing")) {
			payload = user
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":`))
		_, _ = w.Write(payload)
		_, _ = w.Write([]byte(`}`))
	}))
	t.Cleanup(server.Close)

	gql, err := graphql.NewClient("test-token", graphql.WithEndpoint(server.URL), graphql.WithHTTPClient(server.Client()))
	require.NoError(t, err)
	return New(github.NewClient(gql), 0)
}

func TestLibrary_Success(t *testing.T) {
	lib := newUpstream(t, 0)
	ctx := context.Background()

	user := lib.User(ctx, "octocat")
	require.True(t, user.OK())
	assert.Equal(t, "octocat", user.Data.Login)
	assert.Equal(t, 42, user.Data.Counts.StarredRepositories)

	groups := lib.StargazersByRepoName(ctx, "octocat")
	require.True(t, groups.OK())
	assert.Equal(t, []string{"alpha", "gamma", "delta"}, groups.Data.Names())

	recent := lib.LastStargazers(ctx, "octocat")
	require.True(t, recent.OK())
	require.Len(t, recent.Data, 3)
	assert.Equal(t, "dave", recent.Data[0].Login)

	repo := lib.Repository(ctx, "octocat", "alpha")
	require.True(t, repo.OK())
	assert.Equal(t, "alpha", repo.Data.Name)
	assert.Equal(t, "https://github.com/octocat/alpha/commit/abc123", repo.Data.LastCommitURL)
}

func TestLibrary_UnknownRepository(t *testing.T) {
	lib := newUpstream(t, 0)

	repo := lib.Repository(context.Background(), "octocat", "missing")
	assert.True(t, repo.OK())
	assert.Equal(t, emptyRepository(), repo.Data)
	assert.NotNil(t, repo.Data.Stargazers)
}

func TestLibrary_UpstreamFailure(t *testing.T) {
	lib := newUpstream(t, http.StatusInternalServerError)
	ctx := context.Background()

	assertStatus := func(t *testing.T, err error) {
		t.Helper()
		require.Error(t, err)
		var statusErr *graphql.HTTPStatusError
		require.True(t, stderrors.As(err, &statusErr))
		assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
	}

	user := lib.User(ctx, "octocat")
	assertStatus(t, user.Err)
	assert.True(t, user.Data.IsZero())

	groups := lib.StargazersByRepoName(ctx, "octocat")
	assertStatus(t, groups.Err)
	assert.NotNil(t, groups.Data)
	assert.Empty(t, groups.Data)

	recent := lib.LastStargazers(ctx, "octocat")
	assertStatus(t, recent.Err)
	assert.NotNil(t, recent.Data)
	assert.Empty(t, recent.Data)

	repo := lib.Repository(ctx, "octocat", "alpha")
	assertStatus(t, repo.Err)
	assert.Equal(t, emptyRepository(), repo.Data)

	encoded, err := json.Marshal(repo.Data)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `"stargazers":[]`)
}

func TestLibrary_InvalidInput(t *testing.T) {
	lib := New(failingFetcher{}, 0)
	ctx := context.Background()

	repo := lib.Repository(ctx, "octocat", "../etc")
	assert.Equal(t, errors.ErrCodeInvalidRepo, errors.GetCode(repo.Err))
	assert.NotNil(t, repo.Data.Stargazers)
}

type failingFetcher struct{}

func (failingFetcher) FetchUser(context.Context, string) (github.User, error) {
	return github.User{}, stderrors.New("unexpected call")
}

func (failingFetcher) FetchStargazers(context.Context, string) (graphql.Response, error) {
	return nil, stderrors.New("unexpected call")
}

type recordingTagHooks struct {
	mu    sync.Mutex
	calls []string
	errs  []error
}

func (h *recordingTagHooks) OnTagComplete(_ context.Context, tag, _ string, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls = append(h.calls, tag)
	h.errs = append(h.errs, err)
}

func TestLibrary_ReportsToHooks(t *testing.T) {
	hooks := &recordingTagHooks{}
	observability.SetTagHooks(hooks)
	t.Cleanup(observability.Reset)

	lib := New(failingFetcher{}, 0)
	lib.User(context.Background(), "octocat")
	lib.LastStargazers(context.Background(), "octocat")

	assert.Equal(t, []string{"user", "lastStargazers"}, hooks.calls)
	for _, err := range hooks.errs {
		assert.Error(t, err)
	}
}

func TestFuncMap_RendersTemplate(t *testing.T) {
	lib := newUpstream(t, 0)

	tmpl := template.Must(template.New("page").Funcs(lib.FuncMap(context.Background())).Parse(
		`{{ $r := stargazersByRepoName "octocat" }}{{ if $r.Err }}error{{ else }}` +
			`{{ range $r.Data }}{{ .Name }}:{{ range .Stargazers }}{{ .Login }},{{ end }};{{ end }}{{ end }}`))

	var out bytes.Buffer
	require.NoError(t, tmpl.Execute(&out, nil))
	assert.Equal(t, "alpha:carol,bob,;gamma:;delta:dave,;", out.String())
}

func TestFuncMap_RendersErrorBranch(t *testing.T) {
	lib := newUpstream(t, http.StatusInternalServerError)

	tmpl := template.Must(template.New("page").Funcs(lib.FuncMap(context.Background())).Parse(
		`{{ $u := user "octocat" }}{{ if $u.Err }}failed{{ else }}{{ $u.Data.Login }}{{ end }}`))

	var out bytes.Buffer
	require.NoError(t, tmpl.Execute(&out, nil))
	assert.Equal(t, "failed", out.String())
}

func TestFuncMap_StrToDate(t *testing.T) {
	lib := New(failingFetcher{}, 0)

	tmpl := template.Must(template.New("date").Funcs(lib.FuncMap(context.Background())).Parse(
		`{{ (strToDate "2024-01-02T03:04:05Z").Year }}`))

	var out bytes.Buffer
	require.NoError(t, tmpl.Execute(&out, nil))
	assert.Equal(t, "2024", out.String())
}

func TestStrToDate(t *testing.T) {
	got, ok := StrToDate("2024-01-02T03:04:05Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), got)

	got, ok = StrToDate("2024-01-02T03:04:05.123+02:00")
	require.True(t, ok)
	assert.Equal(t, 123*time.Millisecond, time.Duration(got.Nanosecond()))

	got, ok = StrToDate("yesterday")
	assert.False(t, ok)
	assert.True(t, got.IsZero())
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "now"},
		{30 * time.Second, "30 seconds ago"},
		{90 * time.Second, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{3 * time.Hour, "3 hours ago"},
		{3 * 24 * time.Hour, "3 days ago"},
		{45 * 24 * time.Hour, "1 month ago"},
		{800 * 24 * time.Hour, "2 years ago"},
		{-3 * time.Hour, "3 hours from now"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, relativeTime(now.Add(-tt.ago), now), tt.ago.String())
	}
}

func TestFuncMap_TimeSince(t *testing.T) {
	lib := New(failingFetcher{}, 0)

	tmpl := template.Must(template.New("since").Funcs(lib.FuncMap(context.Background())).Parse(
		`{{ timeSince (strToDate "2000-01-01T00:00:00Z") }}`))

	var out bytes.Buffer
	require.NoError(t, tmpl.Execute(&out, nil))
	assert.True(t, strings.HasSuffix(out.String(), " years ago"), out.String())
}
