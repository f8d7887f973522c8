package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/nitidus-mail/nitidus/internal/paths"
)

func isolate(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("HOME", tmp)
	t.Setenv("NITIDUS_CONFIG_DIR", filepath.Join(tmp, "config"))
	t.Setenv("NITIDUS_DATA_DIR", filepath.Join(tmp, "data"))
	paths.ResetForTest()
	t.Cleanup(paths.ResetForTest)
	return tmp
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadArgsDefaults(t *testing.T) {
	tmp := isolate(t)
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Folder != "INBOX" || cfg.App.PageSize != 50 || cfg.App.Screen != "account" {
		t.Fatalf("unexpected defaults: %+v", cfg.App)
	}
	if !cfg.App.Index || cfg.App.WatchInterval != 30*time.Second || cfg.App.Color != "auto" {
		t.Fatalf("unexpected defaults: %+v", cfg.App)
	}
	if cfg.App.Maildir != filepath.Join(tmp, "Mail") {
		t.Fatalf("expected maildir under HOME, got %q", cfg.App.Maildir)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected info level, got %q", cfg.Logging.Level)
	}
	if want := filepath.Join(tmp, "data", "nitidus.log"); cfg.Logging.FilePath != want {
		t.Fatalf("expected log file %q, got %q", want, cfg.Logging.FilePath)
	}
	if want := filepath.Join(tmp, "config", "config.yaml"); cfg.ConfigPath != want {
		t.Fatalf("expected config path %q, got %q", want, cfg.ConfigPath)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestLoadArgsReadsDefaultConfigFile(t *testing.T) {
	tmp := isolate(t)
	writeConfig(t, filepath.Join(tmp, "config"), "folder: Archive\npage-size: 20\nindex: false\nwatch-interval: 5s\n")
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Folder != "Archive" || cfg.App.PageSize != 20 || cfg.App.Index {
		t.Fatalf("expected file values, got %+v", cfg.App)
	}
	if cfg.App.WatchInterval != 5*time.Second {
		t.Fatalf("expected 5s interval, got %s", cfg.App.WatchInterval)
	}
}

func TestLayerPrecedence(t *testing.T) {
	tmp := isolate(t)
	path := writeConfig(t, filepath.Join(tmp, "elsewhere"), "folder: FromFile\naccount: file\nscreen: mail\n")
	env := []string{"NITIDUS_FOLDER=FromEnv", "NITIDUS_ACCOUNT=env"}

	cfg, err := LoadArgs([]string{"-c", path, "-f", "FromFlag"}, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Folder != "FromFlag" {
		t.Fatalf("expected flag to win, got %q", cfg.App.Folder)
	}
	if cfg.App.Account != "env" {
		t.Fatalf("expected env to beat the file, got %q", cfg.App.Account)
	}
	if cfg.App.Screen != "mail" {
		t.Fatalf("expected file to beat defaults, got %q", cfg.App.Screen)
	}
	if cfg.ConfigPath != path {
		t.Fatalf("expected config path %q, got %q", path, cfg.ConfigPath)
	}
}

func TestConfigPathFromEnv(t *testing.T) {
	tmp := isolate(t)
	path := writeConfig(t, filepath.Join(tmp, "env"), "maildir: /srv/mail\n")
	cfg, err := LoadArgs(nil, []string{"NITIDUS_CONFIG=" + path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.Maildir != "/srv/mail" {
		t.Fatalf("expected maildir from file, got %q", cfg.App.Maildir)
	}
}

func TestExplicitMissingConfigFails(t *testing.T) {
	tmp := isolate(t)
	if _, err := LoadArgs([]string{"--config", filepath.Join(tmp, "nope.yaml")}, nil); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestMalformedConfigFails(t *testing.T) {
	tmp := isolate(t)
	writeConfig(t, filepath.Join(tmp, "config"), "folder: [unclosed\n")
	if _, err := LoadArgs(nil, nil); err == nil {
		t.Fatalf("expected parse error")
	}
	writeConfig(t, filepath.Join(tmp, "config"), "watch-interval: soon\n")
	if _, err := LoadArgs(nil, nil); err == nil || !strings.Contains(err.Error(), "watch-interval") {
		t.Fatalf("expected watch-interval error, got %v", err)
	}
}

func TestEnvValues(t *testing.T) {
	isolate(t)
	env := []string{
		"NITIDUS_PAGE_SIZE=10",
		"NITIDUS_WIDTH=100",
		"NITIDUS_HEIGHT=oops",
		"NITIDUS_INDEX=false",
		"NITIDUS_WATCH_INTERVAL=1m",
		"NITIDUS_LOG_LEVEL=debug",
		"NITIDUS_COLOR=ansi256",
	}
	cfg, err := LoadArgs(nil, env)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.App.PageSize != 10 || cfg.App.Width != 100 || cfg.App.Height != 0 {
		t.Fatalf("unexpected sizes: %+v", cfg.App)
	}
	if cfg.App.Index || cfg.App.WatchInterval != time.Minute {
		t.Fatalf("unexpected index/interval: %+v", cfg.App)
	}
	if cfg.Logging.Level != "debug" || cfg.App.Color != "ansi256" {
		t.Fatalf("unexpected level/color: %q %q", cfg.Logging.Level, cfg.App.Color)
	}
}

func TestFlagsRecorded(t *testing.T) {
	isolate(t)
	cfg, err := LoadArgs([]string{"--width", "90", "--index=false", "-a", "work"}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Flags["width"] != "90" || cfg.Flags["index"] != "false" || cfg.Flags["account"] != "work" {
		t.Fatalf("unexpected flags map: %#v", cfg.Flags)
	}
	if len(cfg.Args) != 5 {
		t.Fatalf("expected args preserved, got %#v", cfg.Args)
	}
}

func TestUnknownFlagFails(t *testing.T) {
	isolate(t)
	if _, err := LoadArgs([]string{"--socket", "x"}, nil); err == nil {
		t.Fatalf("expected unknown flag error")
	}
}

func TestPrintDefaultConfigCommand(t *testing.T) {
	isolate(t)
	cfg, err := LoadArgs([]string{"--page-size", "25", CommandPrintDefaultConfig}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Command != CommandPrintDefaultConfig {
		t.Fatalf("expected print command, got %q", cfg.Command)
	}
	out, err := cfg.YAML()
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	for _, want := range []string{"page-size: 25", "folder: INBOX", "watch-interval: 30s", "index: true"} {
		if !strings.Contains(string(out), want) {
			t.Fatalf("expected %q in:\n%s", want, out)
		}
	}
	if _, err := LoadArgs([]string{"frobnicate"}, nil); err == nil {
		t.Fatalf("expected unknown command error")
	}
}

func TestFlagsAfterCommand(t *testing.T) {
	isolate(t)
	cfg, err := LoadArgs([]string{CommandPrintDefaultConfig, "--page-size", "5", "-f", "Sent"}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Command != CommandPrintDefaultConfig {
		t.Fatalf("expected print command, got %q", cfg.Command)
	}
	if cfg.App.PageSize != 5 || cfg.App.Folder != "Sent" {
		t.Fatalf("expected flags after the command applied, got %+v", cfg.App)
	}
	if _, err := LoadArgs([]string{CommandPrintDefaultConfig, "--page-size", "5", "extra"}, nil); err == nil {
		t.Fatalf("expected error for trailing argument")
	}
}

func TestValidate(t *testing.T) {
	isolate(t)
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"negative width", []string{"--width", "-1"}, "width must be >= 0"},
		{"zero page size", []string{"--page-size", "0"}, "page-size must be > 0"},
		{"screen", []string{"--screen", "inbox"}, "unknown screen"},
		{"log level", []string{"--log-level", "loud"}, "unknown log level"},
		{"color", []string{"--color", "sepia"}, "unknown color profile"},
		{"interval", []string{"--watch-interval", "-1s"}, "watch-interval must be >= 0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := LoadArgs(tc.args, nil)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			err = Validate(cfg)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q, got %v", tc.want, err)
			}
		})
	}
}
