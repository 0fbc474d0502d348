package domain

import "testing"

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name     string
		shortcut Shortcut
		input    string
		want     string
		wantErr  bool
	}{
		{
			name:     "direct shortcut ignores input",
			shortcut: Shortcut{Type: ShortcutDirect, Label: "Gmail", URL: "https://mail.google.com"},
			input:    "whatever",
			want:     "https://mail.google.com",
		},
		{
			name:     "direct shortcut without url",
			shortcut: Shortcut{Type: ShortcutDirect, Label: "broken"},
			wantErr:  true,
		},
		{
			name:     "dynamic shortcut substitutes input",
			shortcut: Shortcut{Type: ShortcutDynamic, Label: "Orders", URLTemplate: "https://amazon.com/orders/{input}"},
			input:    "12345",
			want:     "https://amazon.com/orders/12345",
		},
		{
			name:     "dynamic shortcut escapes input",
			shortcut: Shortcut{Type: ShortcutDynamic, Label: "Search", URLTemplate: "https://g.co/s?q={input}"},
			input:    "a b&c",
			want:     "https://g.co/s?q=a+b%26c",
		},
		{
			name:     "dynamic shortcut trims input",
			shortcut: Shortcut{Type: ShortcutDynamic, Label: "Orders", URLTemplate: "https://x/{input}"},
			input:    "  42  ",
			want:     "https://x/42",
		},
		{
			name:     "dynamic shortcut requires input",
			shortcut: Shortcut{Type: ShortcutDynamic, Label: "Orders", URLTemplate: "https://x/{input}"},
			input:    "   ",
			wantErr:  true,
		},
		{
			name: "dynamic shortcut validation regex rejects",
			shortcut: Shortcut{
				Type: ShortcutDynamic, Label: "Orders",
				URLTemplate:       "https://x/{input}",
				ValidationRegex:   `^\d+$`,
				ValidationMessage: "digits only",
			},
			input:   "abc",
			wantErr: true,
		},
		{
			name: "dynamic shortcut validation regex accepts",
			shortcut: Shortcut{
				Type: ShortcutDynamic, Label: "Orders",
				URLTemplate:     "https://x/{input}",
				ValidationRegex: `^\d+$`,
			},
			input: "42",
			want:  "https://x/42",
		},
		{
			name:     "unknown type",
			shortcut: Shortcut{Type: "weird", Label: "x"},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.shortcut.BuildURL(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("BuildURL() = %q, expected error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildURL() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("BuildURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
