package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/errs"
	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
)

type searchResponse struct {
	Query   string         `json:"query"`
	Matches []domain.Match `json:"matches"`
}

type buildURLResponse struct {
	URL string `json:"url"`
}

// Search scans labels, URLs, descriptions and folder names across all
// sections.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			badRequest(w, "q is required")
			return
		}

		cfg, err := d.Controller.Load(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		matches := cfg.Search(query)
		if matches == nil {
			matches = []domain.Match{}
		}
		writeJSON(w, http.StatusOK, searchResponse{Query: query, Matches: matches})
	}
}

// BuildURL resolves a shortcut's final URL; dynamic shortcuts take their
// input from the ?input= query parameter.
func BuildURL(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shortcutID := chi.URLParam(r, "shortcutID")
		input := r.URL.Query().Get("input")

		cfg, err := d.Controller.Load(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		var sc *domain.Shortcut
		for _, sec := range cfg.Sections {
			if it := domain.FindItem(sec.Items, shortcutID); it != nil {
				sc, _ = it.(*domain.Shortcut)
				break
			}
		}
		if sc == nil {
			writeError(w, d.Logger, errs.NotFoundf("shortcut %s", shortcutID))
			return
		}

		url, err := sc.BuildURL(input)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, buildURLResponse{URL: url})
	}
}
