package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gitego/pkg/errors"
	"github.com/matzehuels/gitego/pkg/github"
)

func (s *Server) handleAPIUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.fetcher.FetchUser(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleAPIStargazers(w http.ResponseWriter, r *http.Request) {
	login := chi.URLParam(r, "username")
	payload, err := s.fetcher.FetchStargazers(r.Context(), login)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, github.GroupByRepository(payload, login))
}

func (s *Server) handleAPIRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		writeError(w, err)
		return
	}
	login := chi.URLParam(r, "username")
	payload, err := s.fetcher.FetchStargazers(r.Context(), login)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, github.LastStargazers(payload, login, limit))
}

func (s *Server) handleAPIRepository(w http.ResponseWriter, r *http.Request) {
	login, name := chi.URLParam(r, "username"), chi.URLParam(r, "repo")
	if err := github.ValidateRepo(name); err != nil {
		writeError(w, err)
		return
	}
	payload, err := s.fetcher.FetchStargazers(r.Context(), login)
	if err != nil {
		writeError(w, err)
		return
	}
	repo, found := github.RepositoryDetail(payload, login, name)
	if !found {
		writeError(w, errors.New(errors.ErrCodeNotFound, "%s has no repository named %q", login, name))
		return
	}
	writeJSON(w, http.StatusOK, repo)
}

// parseLimit accepts 1 to LastStargazersLimit. Empty means the maximum.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return github.LastStargazersLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > github.LastStargazersLimit {
		return 0, errors.New(errors.ErrCodeInvalidInput,
			"limit must be between 1 and %d", github.LastStargazersLimit)
	}
	return n, nil
}
