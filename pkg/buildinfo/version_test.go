package buildinfo

import (
	"strings"
	"testing"
)

func TestShortCommit(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"none", "none"},
		{"0123456789ab", "0123456789ab"},
		{"0123456789abcdef0123456789abcdef01234567", "0123456789ab"},
	}
	for _, tt := range tests {
		if got := short(tt.in); got != tt.want {
			t.Errorf("short(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	if s := String(); !strings.HasPrefix(s, "brd2tpl v1.2.3 ") {
		t.Errorf("String() = %q", s)
	}
	if tpl := Template(); !strings.Contains(tpl, "version v1.2.3") {
		t.Errorf("Template() = %q", tpl)
	}
}
