package redis

import (
	"testing"
	"time"
)

func TestConnectOptionsValidate(t *testing.T) {
	valid := ConnectOptions{
		Addr:           "localhost:6379",
		ConnectTimeout: 30 * time.Second,
		RetryInterval:  2 * time.Second,
	}

	tests := []struct {
		name    string
		mutate  func(*ConnectOptions)
		wantErr bool
	}{
		{
			name:    "valid options",
			mutate:  func(o *ConnectOptions) {},
			wantErr: false,
		},
		{
			name:    "empty address",
			mutate:  func(o *ConnectOptions) { o.Addr = "" },
			wantErr: true,
		},
		{
			name:    "zero connect timeout",
			mutate:  func(o *ConnectOptions) { o.ConnectTimeout = 0 },
			wantErr: true,
		},
		{
			name:    "negative retry interval",
			mutate:  func(o *ConnectOptions) { o.RetryInterval = -time.Second },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := valid
			tt.mutate(&opts)
			err := opts.validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
