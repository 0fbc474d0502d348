package remote

import (
	"context"
	"io"
	"net"

	"github.com/cockroachdb/errors"

	"github.com/MrSnakeDoc/stash/internal/errs"
)

var errSubscriptionClosed = errors.New("subscription channel closed")

// classify maps a raw Redis error into the connectivity/rejected split the
// reconciliation layer branches on: the stale-cache fallback applies only
// to connectivity failures.
func classify(err error, msg string) error {
	if err == nil {
		return nil
	}
	wrapped := errors.Wrap(err, msg)
	if isConnectivity(err) {
		return errors.Mark(wrapped, errs.ErrConnectivity)
	}
	return errors.Mark(wrapped, errs.ErrRemoteRejected)
}

func isConnectivity(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, errSubscriptionClosed) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
