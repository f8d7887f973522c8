package paths

import (
	"path/filepath"
	"testing"
)

func setupTestDirs(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	for _, key := range []string{
		"NITIDUS_CONFIG_DIR", "NITIDUS_DATA_DIR",
		"XDG_CONFIG_HOME", "XDG_DATA_HOME",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("HOME", tmp)
	ResetForTest()
	return tmp
}

func TestDefaults(t *testing.T) {
	tmp := setupTestDirs(t)
	cases := []struct {
		name string
		got  func() string
		want string
	}{
		{"config", ConfigDir, filepath.Join(tmp, ".config", "nitidus")},
		{"data", DataDir, filepath.Join(tmp, ".local", "share", "nitidus")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.got(); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestEnvOverride(t *testing.T) {
	tmp := setupTestDirs(t)
	override := filepath.Join(tmp, "custom-data")
	t.Setenv("NITIDUS_DATA_DIR", override)
	ResetForTest()
	if got := DataDir(); got != override {
		t.Fatalf("expected %q, got %q", override, got)
	}
}

func TestXDGHome(t *testing.T) {
	tmp := setupTestDirs(t)
	xdg := filepath.Join(tmp, "xdg")
	t.Setenv("XDG_CONFIG_HOME", xdg)
	ResetForTest()
	if got := ConfigPath(); got != filepath.Join(xdg, "nitidus", "config.yaml") {
		t.Fatalf("unexpected config path %q", got)
	}
}

func TestResolutionIsCached(t *testing.T) {
	tmp := setupTestDirs(t)
	first := ConfigDir()
	t.Setenv("NITIDUS_CONFIG_DIR", filepath.Join(tmp, "later"))
	if got := ConfigDir(); got != first {
		t.Fatalf("expected cached %q, got %q", first, got)
	}
	ResetForTest()
	if got := ConfigDir(); got == first {
		t.Fatalf("expected reset to re-resolve")
	}
}

func TestEnsureDir(t *testing.T) {
	tmp := setupTestDirs(t)
	dir := filepath.Join(tmp, "a", "b")
	got, err := EnsureDir(dir)
	if err != nil || got != dir {
		t.Fatalf("expected %q, got %q (%v)", dir, got, err)
	}
}
