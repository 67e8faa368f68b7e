package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	t.Setenv("BANKFLOW_TEST_DIR", "/srv/data")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "plain path", in: "/var/lib/app.db", want: "/var/lib/app.db"},
		{name: "env var", in: "$BANKFLOW_TEST_DIR/app.db", want: "/srv/data/app.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandPath_Tilde(t *testing.T) {
	got := ExpandPath("~/data/app.db")
	if strings.HasPrefix(got, "~") {
		t.Errorf("tilde was not expanded: %q", got)
	}
	if !strings.HasSuffix(got, filepath.Join("data", "app.db")) {
		t.Errorf("expanded path lost its suffix: %q", got)
	}
}
