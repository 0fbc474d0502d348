package remote

import (
	"context"
	"io"
	"net"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/MrSnakeDoc/stash/internal/errs"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantMarker error
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, wantMarker: errs.ErrConnectivity},
		{name: "canceled", err: context.Canceled, wantMarker: errs.ErrConnectivity},
		{name: "eof", err: io.EOF, wantMarker: errs.ErrConnectivity},
		{name: "closed subscription", err: errSubscriptionClosed, wantMarker: errs.ErrConnectivity},
		{name: "net op error", err: &net.OpError{Op: "dial", Err: errors.New("refused")}, wantMarker: errs.ErrConnectivity},
		{name: "anything else is a rejection", err: errors.New("WRONGTYPE operation"), wantMarker: errs.ErrRemoteRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err, "op failed")
			if !errors.Is(got, tt.wantMarker) {
				t.Errorf("classify(%v) = %v, want marked %v", tt.err, got, tt.wantMarker)
			}
			if !errors.Is(got, tt.err) {
				t.Errorf("classify(%v) lost the original cause", tt.err)
			}
		})
	}

	if classify(nil, "noop") != nil {
		t.Error("classify(nil) != nil")
	}
}

func TestUserKeys(t *testing.T) {
	if got := ConfigKey("u1"); got != "stash:user:u1:config" {
		t.Errorf("ConfigKey() = %s", got)
	}
	if got := ConfigTSKey("u1"); got != "stash:user:u1:config:ts" {
		t.Errorf("ConfigTSKey() = %s", got)
	}
	if got := EventsChannel("u1"); got != "stash:user:u1:config:events" {
		t.Errorf("EventsChannel() = %s", got)
	}
	if got := ProfileKey("u1"); got != "stash:user:u1:profile" {
		t.Errorf("ProfileKey() = %s", got)
	}
}
