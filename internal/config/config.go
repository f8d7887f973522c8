package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nitidus-mail/nitidus/internal/account"
	"github.com/nitidus-mail/nitidus/internal/app"
	"github.com/nitidus-mail/nitidus/internal/logging"
	"github.com/nitidus-mail/nitidus/internal/mail"
	"github.com/nitidus-mail/nitidus/internal/paths"
)

// Config captures runtime configuration for the application.
type Config struct {
	App        app.Config
	Logging    Logging
	ConfigPath string
	Command    string
	Flags      map[string]string
	Args       []string
}

type Logging struct {
	FilePath string
	Level    string
}

// CommandPrintDefaultConfig prints the merged configuration and exits.
const CommandPrintDefaultConfig = "print-default-config"

const (
	envConfig        = "NITIDUS_CONFIG"
	envDataDir       = "NITIDUS_DATA_DIR"
	envLogLevel      = "NITIDUS_LOG_LEVEL"
	envLogFile       = "NITIDUS_LOG_FILE"
	envAccount       = "NITIDUS_ACCOUNT"
	envFolder        = "NITIDUS_FOLDER"
	envMaildir       = "NITIDUS_MAILDIR"
	envPageSize      = "NITIDUS_PAGE_SIZE"
	envScreen        = "NITIDUS_SCREEN"
	envWidth         = "NITIDUS_WIDTH"
	envHeight        = "NITIDUS_HEIGHT"
	envWatchInterval = "NITIDUS_WATCH_INTERVAL"
	envIndex         = "NITIDUS_INDEX"
	envColor         = "NITIDUS_COLOR"

	defaultLogLevel      = "info"
	defaultScreen        = "account"
	defaultWatchInterval = 30 * time.Second
	logFileName          = "nitidus.log"
)

// File is the YAML configuration file. Every key is optional.
type File struct {
	DataDir       string `yaml:"data-dir,omitempty"`
	LogLevel      string `yaml:"log-level,omitempty"`
	LogFile       string `yaml:"log-file,omitempty"`
	Account       string `yaml:"account,omitempty"`
	Folder        string `yaml:"folder,omitempty"`
	Maildir       string `yaml:"maildir,omitempty"`
	PageSize      *int   `yaml:"page-size,omitempty"`
	Screen        string `yaml:"screen,omitempty"`
	Width         *int   `yaml:"width,omitempty"`
	Height        *int   `yaml:"height,omitempty"`
	WatchInterval string `yaml:"watch-interval,omitempty"`
	Index         *bool  `yaml:"index,omitempty"`
	Color         string `yaml:"color,omitempty"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Values are
// layered defaults, config file, environment, flags; later layers win.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	flags := flag.NewFlagSet("nitidus", flag.ContinueOnError)
	flags.SetOutput(new(strings.Builder))

	var configPath, accountName, folder string
	flags.StringVar(&configPath, "config", "", "path to the YAML config file")
	flags.StringVar(&configPath, "c", "", "shorthand for --config")
	dataDir := flags.String("data-dir", "", "directory for the envelope index and log file")
	logLevel := flags.String("log-level", "", "log level (error, warn, info, debug, trace, off)")
	logFile := flags.String("log-file", "", "path to the log file")
	flags.StringVar(&accountName, "account", "", "account name shown on the account screen")
	flags.StringVar(&accountName, "a", "", "shorthand for --account")
	flags.StringVar(&folder, "folder", "", "folder to open")
	flags.StringVar(&folder, "f", "", "shorthand for --folder")
	maildirRoot := flags.String("maildir", "", "root of the Maildir tree")
	pageSize := flags.Int("page-size", 0, "envelopes listed per page")
	screen := flags.String("screen", "", "screen shown at start (account or mail)")
	width := flags.Int("width", 0, "desired viewport width in cells (0 uses terminal width)")
	height := flags.Int("height", 0, "desired viewport height in rows (0 uses terminal height)")
	watchInterval := flags.Duration("watch-interval", 0, "how often the folder is polled (0 disables polling)")
	useIndex := flags.Bool("index", true, "cache envelopes in a SQLite index")
	color := flags.String("color", "", "color profile (auto, ascii, ansi, ansi256, truecolor)")

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}
	var command string
	if rest := flags.Args(); len(rest) > 0 {
		if rest[0] != CommandPrintDefaultConfig {
			return Config{}, fmt.Errorf("unknown command %q", strings.Join(rest, " "))
		}
		command = rest[0]
		// flags may follow the command too
		if err := flags.Parse(rest[1:]); err != nil {
			return Config{}, err
		}
		if extra := flags.Args(); len(extra) > 0 {
			return Config{}, fmt.Errorf("unexpected arguments after %s: %q", command, strings.Join(extra, " "))
		}
	}
	set := make(map[string]bool)
	flags.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	isSet := func(names ...string) bool {
		for _, name := range names {
			if set[name] {
				return true
			}
		}
		return false
	}

	path := paths.ConfigPath()
	explicitPath := false
	if v, ok := env[envConfig]; ok && v != "" {
		path, explicitPath = v, true
	}
	if isSet("config", "c") {
		path, explicitPath = configPath, true
	}
	file, err := LoadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) || explicitPath {
			return Config{}, err
		}
	}

	v := defaults()
	if err := v.applyFile(file); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	v.applyEnv(env)

	if isSet("data-dir") {
		v.DataDir = *dataDir
	}
	if isSet("log-level") {
		v.LogLevel = *logLevel
	}
	if isSet("log-file") {
		v.LogFile = *logFile
	}
	if isSet("account", "a") {
		v.Account = accountName
	}
	if isSet("folder", "f") {
		v.Folder = folder
	}
	if isSet("maildir") {
		v.Maildir = *maildirRoot
	}
	if isSet("page-size") {
		v.PageSize = *pageSize
	}
	if isSet("screen") {
		v.Screen = *screen
	}
	if isSet("width") {
		v.Width = *width
	}
	if isSet("height") {
		v.Height = *height
	}
	if isSet("watch-interval") {
		v.WatchInterval = *watchInterval
	}
	if isSet("index") {
		v.Index = *useIndex
	}
	if isSet("color") {
		v.Color = *color
	}
	if v.LogFile == "" {
		v.LogFile = filepath.Join(v.DataDir, logFileName)
	}

	cfg := Config{
		App: app.Config{
			Account:       v.Account,
			Folder:        v.Folder,
			Maildir:       v.Maildir,
			DataDir:       v.DataDir,
			PageSize:      v.PageSize,
			Screen:        v.Screen,
			Width:         v.Width,
			Height:        v.Height,
			WatchInterval: v.WatchInterval,
			Index:         v.Index,
			Color:         v.Color,
		},
		Logging: Logging{
			FilePath: v.LogFile,
			Level:    v.LogLevel,
		},
		ConfigPath: path,
		Command:    command,
		Flags: map[string]string{
			"config":        path,
			"dataDir":       v.DataDir,
			"logLevel":      v.LogLevel,
			"logFile":       v.LogFile,
			"account":       v.Account,
			"folder":        v.Folder,
			"maildir":       v.Maildir,
			"pageSize":      strconv.Itoa(v.PageSize),
			"screen":        v.Screen,
			"width":         strconv.Itoa(v.Width),
			"height":        strconv.Itoa(v.Height),
			"watchInterval": v.WatchInterval.String(),
			"index":         strconv.FormatBool(v.Index),
			"color":         v.Color,
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// values is the merged configuration while layers are applied.
type values struct {
	DataDir       string
	LogLevel      string
	LogFile       string
	Account       string
	Folder        string
	Maildir       string
	PageSize      int
	Screen        string
	Width         int
	Height        int
	WatchInterval time.Duration
	Index         bool
	Color         string
}

func defaults() values {
	return values{
		DataDir:       paths.DataDir(),
		LogLevel:      defaultLogLevel,
		Folder:        mail.DefaultFolder,
		Maildir:       account.DefaultMaildir(),
		PageSize:      mail.DefaultPageSize,
		Screen:        defaultScreen,
		WatchInterval: defaultWatchInterval,
		Index:         true,
		Color:         app.ColorAuto,
	}
}

func (v *values) applyFile(f File) error {
	setString(&v.DataDir, f.DataDir)
	setString(&v.LogLevel, f.LogLevel)
	setString(&v.LogFile, f.LogFile)
	setString(&v.Account, f.Account)
	setString(&v.Folder, f.Folder)
	setString(&v.Maildir, f.Maildir)
	setString(&v.Screen, f.Screen)
	setString(&v.Color, f.Color)
	if f.PageSize != nil {
		v.PageSize = *f.PageSize
	}
	if f.Width != nil {
		v.Width = *f.Width
	}
	if f.Height != nil {
		v.Height = *f.Height
	}
	if f.Index != nil {
		v.Index = *f.Index
	}
	if f.WatchInterval != "" {
		d, err := time.ParseDuration(f.WatchInterval)
		if err != nil {
			return fmt.Errorf("watch-interval: %w", err)
		}
		v.WatchInterval = d
	}
	return nil
}

func (v *values) applyEnv(env map[string]string) {
	v.DataDir = envOrDefault(env, envDataDir, v.DataDir)
	v.LogLevel = envOrDefault(env, envLogLevel, v.LogLevel)
	v.LogFile = envOrDefault(env, envLogFile, v.LogFile)
	v.Account = envOrDefault(env, envAccount, v.Account)
	v.Folder = envOrDefault(env, envFolder, v.Folder)
	v.Maildir = envOrDefault(env, envMaildir, v.Maildir)
	v.PageSize = envOrInt(env, envPageSize, v.PageSize)
	v.Screen = envOrDefault(env, envScreen, v.Screen)
	v.Width = envOrInt(env, envWidth, v.Width)
	v.Height = envOrInt(env, envHeight, v.Height)
	v.WatchInterval = envOrDuration(env, envWatchInterval, v.WatchInterval)
	v.Index = envOrBool(env, envIndex, v.Index)
	v.Color = envOrDefault(env, envColor, v.Color)
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// LoadFile reads a YAML config file. A missing file yields an error that
// wraps fs.ErrNotExist.
func LoadFile(path string) (File, error) {
	var f File
	data, err := os.ReadFile(path)
	if err != nil {
		return f, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("failed to parse yaml: %w", err)
	}
	return f, nil
}

// YAML renders the merged configuration in config file form.
func (c Config) YAML() ([]byte, error) {
	pageSize, width, height, index := c.App.PageSize, c.App.Width, c.App.Height, c.App.Index
	f := File{
		DataDir:       c.App.DataDir,
		LogLevel:      c.Logging.Level,
		LogFile:       c.Logging.FilePath,
		Account:       c.App.Account,
		Folder:        c.App.Folder,
		Maildir:       c.App.Maildir,
		PageSize:      &pageSize,
		Screen:        c.App.Screen,
		Width:         &width,
		Height:        &height,
		WatchInterval: c.App.WatchInterval.String(),
		Index:         &index,
		Color:         c.App.Color,
	}
	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok && v != "" {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

var screens = map[string]bool{"account": true, "mail": true}

// Validate reports every invalid setting at once.
func Validate(cfg Config) error {
	var errs []error
	if cfg.App.Width < 0 {
		errs = append(errs, fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width))
	}
	if cfg.App.Height < 0 {
		errs = append(errs, fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height))
	}
	if cfg.App.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("page-size must be > 0 (got %d)", cfg.App.PageSize))
	}
	if cfg.App.WatchInterval < 0 {
		errs = append(errs, fmt.Errorf("watch-interval must be >= 0 (got %s)", cfg.App.WatchInterval))
	}
	if !screens[cfg.App.Screen] {
		errs = append(errs, fmt.Errorf("unknown screen %q", cfg.App.Screen))
	}
	if _, err := logging.ParseLevel(cfg.Logging.Level); err != nil {
		errs = append(errs, err)
	}
	if _, _, err := app.ColorProfile(cfg.App.Color); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(cfg.App.Folder) == "" {
		errs = append(errs, errors.New("folder must not be empty"))
	}
	return errors.Join(errs...)
}
