package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/mutate"
)

type createSectionRequest struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type updateSectionRequest struct {
	Name  *string `json:"name"`
	Icon  *string `json:"icon"`
	Color *string `json:"color"`
}

type reorderRequest struct {
	OrderedIDs []string `json:"orderedIds"`
}

func CreateSection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createSectionRequest
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		if req.Name == "" {
			badRequest(w, "name is required")
			return
		}

		var created *domain.Section
		if _, err := d.Controller.Apply(r.Context(), func(cfg *domain.Config) (*domain.Config, error) {
			next, sec := mutate.AddSection(cfg, req.Name, req.Icon, req.Color)
			created = sec
			return next, nil
		}); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateSection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sectionID := chi.URLParam(r, "sectionID")
		var req updateSectionRequest
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid request body")
			return
		}

		cfg, err := d.Controller.Apply(r.Context(), func(cfg *domain.Config) (*domain.Config, error) {
			return mutate.UpdateSection(cfg, sectionID, mutate.SectionUpdate{
				Name:  req.Name,
				Icon:  req.Icon,
				Color: req.Color,
			})
		})
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg.FindSection(sectionID))
	}
}

func DeleteSection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sectionID := chi.URLParam(r, "sectionID")
		_, err := d.Controller.Apply(r.Context(), func(cfg *domain.Config) (*domain.Config, error) {
			return mutate.DeleteSection(cfg, sectionID)
		})
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ReorderSections(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req reorderRequest
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		cfg, err := d.Controller.Apply(r.Context(), func(cfg *domain.Config) (*domain.Config, error) {
			return mutate.ReorderSections(cfg, req.OrderedIDs), nil
		})
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}
