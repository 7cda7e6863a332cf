package version

import (
	"strings"
	"testing"
)

func saveAndRestore() func() {
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	return func() {
		Version = origVersion
		GitCommit = origCommit
		BuildTime = origBuildTime
	}
}

func TestGetDefaults(t *testing.T) {
	defer saveAndRestore()()
	Version = "dev"
	GitCommit = ""
	BuildTime = ""

	info := Get()
	if info.Version != "dev" {
		t.Errorf("expected version 'dev', got %q", info.Version)
	}
	if info.GoVersion == "" {
		t.Error("expected GoVersion from build info")
	}
}

func TestGetLdflagsWin(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.2.0"
	GitCommit = "abc1234"
	BuildTime = "2026-01-15T10:30:00Z"

	info := Get()
	if info.Version != "1.2.0" {
		t.Errorf("expected '1.2.0', got %q", info.Version)
	}
	if info.GitCommit != "abc1234" {
		t.Errorf("expected 'abc1234', got %q", info.GitCommit)
	}
	if info.BuildTime != "2026-01-15T10:30:00Z" {
		t.Errorf("expected build time to be kept, got %q", info.BuildTime)
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"no commit", Info{Version: "dev"}, "dev"},
		{"with commit", Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234"},
		{"dirty", Info{Version: "1.0.0", GitCommit: "abc1234", IsDirty: true}, "1.0.0-abc1234-dirty"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.info.Short(); got != tc.want {
				t.Errorf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestString(t *testing.T) {
	info := Info{
		Version:   "1.0.0",
		GitCommit: "abc1234",
		BuildTime: "2026-01-15T10:30:00Z",
		GoVersion: "go1.26.0",
	}
	s := info.String()
	if !strings.Contains(s, "1.0.0-abc1234") {
		t.Errorf("expected version and commit, got %q", s)
	}
	if !strings.Contains(s, "built 2026-01-15") {
		t.Errorf("expected build time, got %q", s)
	}
	if !strings.Contains(s, "go1.26.0") {
		t.Errorf("expected go version, got %q", s)
	}
}

func TestStringBadBuildTime(t *testing.T) {
	info := Info{Version: "dev", BuildTime: "not-a-time"}
	if s := info.String(); strings.Contains(s, "built") {
		t.Errorf("expected unparseable build time to be omitted, got %q", s)
	}
}
