// Package errs defines the failure taxonomy shared by the store adapters
// and the sync controller. Errors are classified by marking them with one
// of the sentinels below (cockroachdb/errors.Mark) so callers can branch
// with errors.Is without string matching.
package errs

import "github.com/cockroachdb/errors"

var (
	// ErrNotFound: a referenced section, shortcut or folder id does not
	// exist in the tree at the time of a mutation.
	ErrNotFound = errors.New("not found")

	// ErrQuotaExceeded: a local store write would exceed the device quota.
	// Kept distinct from generic I/O failure so the UI can explain it.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrConnectivity: a remote call failed for network/offline reasons.
	// The stale-cache fallback applies only to this class.
	ErrConnectivity = errors.New("remote store unreachable")

	// ErrRemoteRejected: the remote store refused the operation
	// (permissions, validation). Never falls back to cache silently.
	ErrRemoteRejected = errors.New("remote store rejected the operation")

	// ErrInvalidImport: an import payload failed structural validation.
	ErrInvalidImport = errors.New("invalid import payload")

	// ErrInvalidShortcut: a shortcut violates its invariants (direct
	// without url, dynamic without the input token).
	ErrInvalidShortcut = errors.New("invalid shortcut")

	// ErrMigrationFailed: the local-to-remote migration write failed.
	// The local source data is preserved so migration can be retried.
	ErrMigrationFailed = errors.New("migration failed")

	// ErrCyclicMove: moving a folder into itself or one of its own
	// descendants, which would make the tree cyclic.
	ErrCyclicMove = errors.New("move would create a cycle")
)

// NotFoundf builds a NotFound error with context.
func NotFoundf(format string, args ...interface{}) error {
	return errors.Mark(errors.Newf(format, args...), ErrNotFound)
}

func IsNotFound(err error) bool      { return errors.Is(err, ErrNotFound) }
func IsQuotaExceeded(err error) bool { return errors.Is(err, ErrQuotaExceeded) }
func IsConnectivity(err error) bool  { return errors.Is(err, ErrConnectivity) }
func IsCyclicMove(err error) bool    { return errors.Is(err, ErrCyclicMove) }
