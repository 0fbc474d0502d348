package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/stash/internal/auth"
	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
)

type signInRequest struct {
	UserID      string `json:"userId"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
}

type sessionResponse struct {
	SignedIn    bool   `json:"signedIn"`
	UserID      string `json:"userId,omitempty"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`
}

func GetSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, currentSession(d))
	}
}

// SignIn registers the externally authenticated user with the daemon.
// Token verification happens upstream; the daemon only consumes the
// resulting identity.
func SignIn(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signInRequest
		if err := decodeBody(r, &req); err != nil {
			badRequest(w, "invalid request body")
			return
		}
		if req.UserID == "" {
			badRequest(w, "userId is required")
			return
		}

		d.Session.SignIn(auth.UserID(req.UserID), auth.Profile{
			Email:       req.Email,
			DisplayName: req.DisplayName,
			PhotoURL:    req.PhotoURL,
		})
		writeJSON(w, http.StatusOK, currentSession(d))
	}
}

func SignOut(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Session.SignOut()
		writeJSON(w, http.StatusOK, currentSession(d))
	}
}

func currentSession(d deps.Deps) sessionResponse {
	uid, signedIn := d.Session.CurrentUser()
	if !signedIn {
		return sessionResponse{SignedIn: false}
	}
	profile := d.Session.Profile()
	return sessionResponse{
		SignedIn:    true,
		UserID:      string(uid),
		Email:       profile.Email,
		DisplayName: profile.DisplayName,
		PhotoURL:    profile.PhotoURL,
	}
}
