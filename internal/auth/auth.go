// Package auth models the authentication boundary. Token acquisition is
// external; the engine only consumes the user id and the sign-in/out
// stream. The session is dependency-injected; there is no package-level
// current user.
package auth

import "sync"

// UserID identifies an authenticated user.
type UserID string

// Profile carries the non-critical user profile data written on sign-in.
type Profile struct {
	Email       string
	DisplayName string
	PhotoURL    string
}

// Provider exposes the current user and a change stream.
type Provider interface {
	// CurrentUser returns the signed-in user id, or false.
	CurrentUser() (UserID, bool)
	// Profile returns the current user's profile (zero value when signed out).
	Profile() Profile
	// OnAuthStateChanged registers a callback invoked on every sign-in and
	// sign-out (signedIn=false). Returns an unsubscribe function.
	OnAuthStateChanged(fn func(uid UserID, signedIn bool)) (unsubscribe func())
}

// Session is an in-memory Provider driven by the external auth glue
// (the HTTP session endpoints in this daemon).
type Session struct {
	mu       sync.Mutex
	uid      UserID
	profile  Profile
	signedIn bool
	nextID   int
	subs     map[int]func(UserID, bool)
}

func NewSession() *Session {
	return &Session{subs: make(map[int]func(UserID, bool))}
}

func (s *Session) CurrentUser() (UserID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uid, s.signedIn
}

func (s *Session) Profile() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// SignIn sets the current user and notifies subscribers.
func (s *Session) SignIn(uid UserID, profile Profile) {
	s.mu.Lock()
	s.uid = uid
	s.profile = profile
	s.signedIn = true
	subs := s.snapshotLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(uid, true)
	}
}

// SignOut clears the current user and notifies subscribers.
func (s *Session) SignOut() {
	s.mu.Lock()
	uid := s.uid
	s.uid = ""
	s.profile = Profile{}
	s.signedIn = false
	subs := s.snapshotLocked()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(uid, false)
	}
}

func (s *Session) OnAuthStateChanged(fn func(UserID, bool)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// snapshotLocked copies the subscriber list so callbacks run outside the lock.
func (s *Session) snapshotLocked() []func(UserID, bool) {
	out := make([]func(UserID, bool), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}
