package server

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gitego/pkg/github"
	"github.com/matzehuels/gitego/pkg/tags"
)

type indexPage struct {
	Username   string
	User       tags.Result[github.User]
	Recent     tags.Result[[]github.Stargazer]
	Stargazers tags.Result[github.StargazerGroups]
}

type repositoryPage struct {
	Username string
	Repo     string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := indexPage{Username: strings.TrimSpace(r.URL.Query().Get("username"))}

	if page.Username != "" {
		ctx := r.Context()
		// Failures travel in each Result, so the group never cancels.
		var g errgroup.Group
		g.Go(func() error {
			page.User = s.lib.User(ctx, page.Username)
			return nil
		})
		g.Go(func() error {
			page.Recent = s.lib.LastStargazers(ctx, page.Username)
			return nil
		})
		g.Go(func() error {
			page.Stargazers = s.lib.StargazersByRepoName(ctx, page.Username)
			return nil
		})
		_ = g.Wait()
	}

	s.render(w, r, "index", page)
}

// reservedLogin is the API prefix; GitHub never assigns it to a user.
const reservedLogin = "api"

func (s *Server) handleRepository(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	if strings.EqualFold(username, reservedLogin) {
		http.NotFound(w, r)
		return
	}
	s.render(w, r, "repository", repositoryPage{
		Username: username,
		Repo:     chi.URLParam(r, "repo"),
	})
}

// render executes name with template functions bound to the request
// context. Output is buffered so a template error yields a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	tmpl, err := s.pages.Clone()
	if err != nil {
		s.renderFailed(w, name, err)
		return
	}
	tmpl.Funcs(s.lib.FuncMap(r.Context()))

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		s.renderFailed(w, name, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func (s *Server) renderFailed(w http.ResponseWriter, name string, err error) {
	s.logger.Error("Render failed", "template", name, "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
