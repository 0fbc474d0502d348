package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/errs"
	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/mutate"
)

type createShortcutRequest struct {
	Type              domain.ShortcutType `json:"type"`
	Label             string              `json:"label"`
	URL               string              `json:"url,omitempty"`
	URLTemplate       string              `json:"urlTemplate,omitempty"`
	Placeholder       string              `json:"placeholder,omitempty"`
	InputType         string              `json:"inputType,omitempty"`
	ValidationRegex   string              `json:"validationRegex,omitempty"`
	ValidationMessage string              `json:"validationMessage,omitempty"`
	Icon              string              `json:"icon,omitempty"`
	Description       string              `json:"description,omitempty"`
	ParentFolderID    string              `json:"parentFolderId,omitempty"`
}

type createFolderRequest struct {
	Name           string `json:"name"`
	Icon           string `json:"icon,omitempty"`
	ParentFolderID string `json:"parentFolderId,omitempty"`
}

type updateItemRequest struct {
	// Shortcut fields.
	Type              *domain.ShortcutType `json:"type"`
	Label             *string              `json:"label"`
	URL               *string              `json:"url"`
	URLTemplate       *string              `json:"urlTemplate"`
	Placeholder       *string              `json:"placeholder"`
	InputType         *string              `json:"inputType"`
	ValidationRegex   *string              `json:"validationRegex"`
	ValidationMessage *string              `json:"validationMessage"`
	Icon              *string              `json:"icon"`
	Description       *string              `json:"description"`
	// Folder fields.
	Name *string `json:"name"`
}

type reorderItemsRequest struct {
	OrderedIDs     []string `json:"orderedIds"`
	ParentFolderID string   `json:"parentFolderId,omitempty"`
}

type moveItemRequest struct {
	ItemID          string `json:"itemId"`
	SourceSectionID string `json:"sourceSectionId"`
	TargetSectionID string `json:"targetSectionId"`
	SourceFolderID  string `json:"sourceFolderId,omitempty"`
	TargetFolderID  string `json:"targetFolderId,omitempty"`
	TargetIndex     int    `json:"targetIndex"`
}

func CreateShortcut(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sectionID := chi.URLParam(r, "sectionID")
		var req createShortcutRequest
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid request body")
			return
		}

		var created *domain.Shortcut
		if _, err := d.Controller.Apply(r.Context(), func(cfg *domain.Config) (*domain.Config, error) {
			next, sc, err := mutate.AddShortcut(cfg, sectionID, mutate.ShortcutData{
				Type:              req.Type,
				Label:             req.Label,
				URL:               req.URL,
				URLTemplate:       req.URLTemplate,
				Placeholder:       req.Placeholder,
				InputType:         req.InputType,
				ValidationRegex:   req.ValidationRegex,
				ValidationMessage: req.ValidationMessage,
				Icon:              req.Icon,
				Description:       req.Description,
			}, req.ParentFolderID)
			created = sc
			return next, err
		}); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func CreateFolder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sectionID := chi.URLParam(r, "sectionID")
		var req createFolderRequest
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		if req.Name == "" {
			badRequest(w, "name is required")
			return
		}

		var created *domain.Folder
		if _, err := d.Controller.Apply(r.Context(), func(cfg *domain.Config) (*domain.Config, error) {
			next, f, err := mutate.AddFolder(cfg, sectionID, req.Name, req.Icon, req.ParentFolderID)
			created = f
			return next, err
		}); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

// UpdateItem patches a shortcut or a folder; the kind is resolved from
// the stored item, not the payload.
func UpdateItem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID := chi.URLParam(r, "itemID")
		var req updateItemRequest
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid request body")
			return
		}

		cfg, err := d.Controller.Apply(r.Context(), func(cfg *domain.Config) (*domain.Config, error) {
			switch findKind(cfg, itemID) {
			case domain.KindShortcut:
				return mutate.UpdateShortcut(cfg, itemID, mutate.ShortcutUpdate{
					Type:              req.Type,
					Label:             req.Label,
					URL:               req.URL,
					URLTemplate:       req.URLTemplate,
					Placeholder:       req.Placeholder,
					InputType:         req.InputType,
					ValidationRegex:   req.ValidationRegex,
					ValidationMessage: req.ValidationMessage,
					Icon:              req.Icon,
					Description:       req.Description,
				})
			case domain.KindFolder:
				return mutate.UpdateFolder(cfg, itemID, mutate.FolderUpdate{
					Name: req.Name,
					Icon: req.Icon,
				})
			default:
				return nil, errs.NotFoundf("item %s", itemID)
			}
		})
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}

		var updated domain.Item
		for _, sec := range cfg.Sections {
			if it := domain.FindItem(sec.Items, itemID); it != nil {
				updated = it
				break
			}
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func DeleteItem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sectionID := chi.URLParam(r, "sectionID")
		itemID := chi.URLParam(r, "itemID")
		if _, err := d.Controller.Apply(r.Context(), func(cfg *domain.Config) (*domain.Config, error) {
			return mutate.DeleteItem(cfg, sectionID, itemID)
		}); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ReorderItems(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sectionID := chi.URLParam(r, "sectionID")
		var req reorderItemsRequest
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		cfg, err := d.Controller.Apply(r.Context(), func(cfg *domain.Config) (*domain.Config, error) {
			return mutate.ReorderItems(cfg, sectionID, req.OrderedIDs, req.ParentFolderID)
		})
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg.FindSection(sectionID))
	}
}

func MoveItem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req moveItemRequest
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		cfg, err := d.Controller.Apply(r.Context(), func(cfg *domain.Config) (*domain.Config, error) {
			return mutate.MoveItem(cfg, mutate.MoveRequest{
				ItemID:          req.ItemID,
				SourceSectionID: req.SourceSectionID,
				TargetSectionID: req.TargetSectionID,
				SourceFolderID:  req.SourceFolderID,
				TargetFolderID:  req.TargetFolderID,
				TargetIndex:     req.TargetIndex,
			})
		})
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

func findKind(cfg *domain.Config, itemID string) domain.ItemKind {
	for _, sec := range cfg.Sections {
		if it := domain.FindItem(sec.Items, itemID); it != nil {
			return it.Kind()
		}
	}
	return ""
}
