package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/shlex"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the file configuration.
const (
	EnvConfigDir   = "CDA_PORTAL_CONFIG_DIR"
	EnvTheme       = "CDA_PORTAL_THEME"
	EnvCatalogPath = "CDA_PORTAL_CATALOG"
	EnvAPIAddr     = "CDA_PORTAL_API_ADDR"
)

// Default configuration values
const (
	DefaultToastTTLMs    = 4000 // 4 seconds
	DefaultFeaturedCount = 3
	DefaultChatHistory   = 50
	DefaultAPIAddr       = ":8080"
	ConfigVersion        = "1.1.0" // Increment when schema changes require migration
)

// Theme values mirror the web portal's theme switch.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// UI configures TUI display settings.
type UI struct {
	ToastTTLMs    *int  `yaml:"toast_ttl_ms"`   // Toast notification duration in milliseconds
	SmoothScroll  *bool `yaml:"smooth_scroll"`  // Animate scroll-to-top on navigation
	FeaturedCount *int  `yaml:"featured_count"` // Items per home page section
	ChatHistory   *int  `yaml:"chat_history"`   // Messages kept by the Nemi chat
	// RetainViewParams keeps the webinars category and studio tool when
	// navigating to a view that does not own them.
	RetainViewParams bool `yaml:"retain_view_params"`
}

// WatchMeta records viewing history for a single video.
type WatchMeta struct {
	LastPlayed time.Time `yaml:"last_played,omitempty"`
	Plays      int       `yaml:"plays"`
}

type Config struct {
	Version      string               `yaml:"version,omitempty"` // Config schema version for migrations
	LogLevel     string               `yaml:"log_level"`
	Theme        string               `yaml:"theme"`
	CatalogPath  string               `yaml:"catalog_path"`
	WatchCatalog *bool                `yaml:"watch_catalog"`
	OpenCommand  string               `yaml:"open_command"`
	APIAddr      string               `yaml:"api_addr"`
	UI           UI                   `yaml:"ui"`
	Watched      map[string]WatchMeta `yaml:"watched"`     // video id -> history
	QuizScores   map[string]int       `yaml:"quiz_scores"` // video id -> best correct answers
}

// Defaults returns a sensible default config.
func Defaults() Config {
	return Config{
		Version:      ConfigVersion,
		LogLevel:     "INFO",
		Theme:        ThemeAuto,
		CatalogPath:  "",
		WatchCatalog: boolPtr(true),
		OpenCommand:  "",
		APIAddr:      DefaultAPIAddr,
		UI: UI{
			ToastTTLMs:    intPtr(DefaultToastTTLMs),
			SmoothScroll:  boolPtr(true),
			FeaturedCount: intPtr(DefaultFeaturedCount),
			ChatHistory:   intPtr(DefaultChatHistory),
		},
		Watched:    map[string]WatchMeta{},
		QuizScores: map[string]int{},
	}
}

func configDir() (string, error) {
	if dir := strings.TrimSpace(os.Getenv(EnvConfigDir)); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cdaportal"), nil
}

func path() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Path returns the location of the configuration file.
func Path() (string, error) { return path() }

func EnsureDir() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", err
	}
	if err := os.Chmod(dir, 0o700); err != nil {
		return "", err
	}
	return dir, nil
}

// migrateConfig applies any necessary migrations to bring the config up to the current version.
// Returns the migrated config and a list of warnings about migrations applied.
func migrateConfig(c Config) (Config, []string) {
	var warnings []string

	switch {
	case c.Version == "":
		c.Version = ConfigVersion
		warnings = append(warnings, "config upgraded to version "+ConfigVersion)
	case compareVersions(c.Version, "1.1.0") < 0:
		// 1.0.x stored the theme as "system"; 1.1.0 calls it "auto".
		if strings.EqualFold(strings.TrimSpace(c.Theme), "system") {
			c.Theme = ThemeAuto
		}
		warnings = append(warnings, fmt.Sprintf("config upgraded from %s to %s", c.Version, ConfigVersion))
		c.Version = ConfigVersion
	case compareVersions(c.Version, ConfigVersion) < 0:
		warnings = append(warnings, fmt.Sprintf("config upgraded from %s to %s", c.Version, ConfigVersion))
		c.Version = ConfigVersion
	}

	return c, warnings
}

// compareVersions compares two semantic version strings.
// Returns -1 if v1 < v2, 0 if v1 == v2, 1 if v1 > v2.
// Handles missing or malformed versions gracefully (treats them as 0.0.0).
func compareVersions(v1, v2 string) int {
	parse := func(v string) [3]int {
		var out [3]int
		parts := strings.Split(v, ".")
		for i := 0; i < len(parts) && i < 3; i++ {
			_, _ = fmt.Sscanf(parts[i], "%d", &out[i])
		}
		return out
	}

	a, b := parse(v1), parse(v2)
	for i := range a {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}

// LoadResult holds the result of loading configuration, including any warnings
// that occurred during loading (e.g., partial parse failures).
type LoadResult struct {
	Config   Config
	Warnings []string
}

// Load reads the configuration from disk, falling back to defaults on error.
// Warnings are logged; use LoadWithWarnings to handle them yourself.
func Load() Config {
	result := LoadWithWarnings()
	for _, warning := range result.Warnings {
		log.Printf("Warning: %s", warning)
	}
	return result.Config
}

// LoadWithWarnings reads the configuration from disk and returns any warnings
// encountered during loading. Environment overrides are applied last.
func LoadWithWarnings() LoadResult {
	result := loadFile()
	result.Config = ApplyEnv(result.Config)
	return result
}

func loadFile() LoadResult {
	p, err := path()
	if err != nil {
		return LoadResult{
			Config:   Defaults(),
			Warnings: []string{"could not determine config path: " + err.Error()},
		}
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return LoadResult{Config: Defaults()}
	}
	if err != nil {
		return LoadResult{
			Config:   Defaults(),
			Warnings: []string{"could not read config file: " + err.Error()},
		}
	}

	// Start with empty config instead of defaults to preserve explicit zero values
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return LoadResult{
			Config:   Defaults(),
			Warnings: []string{fmt.Sprintf("config file corrupt (using defaults): %v", err)},
		}
	}

	c, warnings := migrateConfig(c)
	c, fillWarnings := fillDefaults(c)
	warnings = append(warnings, fillWarnings...)

	return LoadResult{Config: c, Warnings: warnings}
}

// fillDefaults applies defaults only for fields that weren't explicitly set.
func fillDefaults(c Config) (Config, []string) {
	var warnings []string
	defaults := Defaults()

	setStringDefault := func(field *string, defaultValue string) {
		if strings.TrimSpace(*field) == "" {
			*field = defaultValue
		}
	}
	setStringDefault(&c.LogLevel, defaults.LogLevel)
	setStringDefault(&c.Theme, defaults.Theme)
	setStringDefault(&c.APIAddr, defaults.APIAddr)

	if c.WatchCatalog == nil {
		c.WatchCatalog = boolPtr(*defaults.WatchCatalog)
	}
	if c.UI.ToastTTLMs == nil {
		c.UI.ToastTTLMs = intPtr(*defaults.UI.ToastTTLMs)
	}
	if c.UI.SmoothScroll == nil {
		c.UI.SmoothScroll = boolPtr(*defaults.UI.SmoothScroll)
	}
	if c.UI.FeaturedCount == nil {
		c.UI.FeaturedCount = intPtr(*defaults.UI.FeaturedCount)
	}
	if c.UI.ChatHistory == nil {
		c.UI.ChatHistory = intPtr(*defaults.UI.ChatHistory)
	}
	if c.Watched == nil {
		c.Watched = map[string]WatchMeta{}
	}
	if c.QuizScores == nil {
		c.QuizScores = map[string]int{}
	}

	c.LogLevel = normalizeLogLevel(c.LogLevel)
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))

	if *c.UI.FeaturedCount <= 0 {
		warnings = append(warnings, fmt.Sprintf("featured_count must be > 0, got %d; using default value %d", *c.UI.FeaturedCount, DefaultFeaturedCount))
		c.UI.FeaturedCount = intPtr(DefaultFeaturedCount)
	}
	if *c.UI.ChatHistory <= 0 {
		warnings = append(warnings, fmt.Sprintf("chat_history must be > 0, got %d; using default value %d", *c.UI.ChatHistory, DefaultChatHistory))
		c.UI.ChatHistory = intPtr(DefaultChatHistory)
	}

	return c, warnings
}

func normalizeLogLevel(level string) string {
	trim := strings.ToUpper(strings.TrimSpace(level))
	switch trim {
	case "":
		return "INFO"
	case "WARN":
		return "WARNING"
	default:
		return trim
	}
}

// ApplyEnv overlays the CDA_PORTAL_* environment variables onto c.
func ApplyEnv(c Config) Config {
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		c.Theme = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvCatalogPath)); v != "" {
		c.CatalogPath = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIAddr)); v != "" {
		c.APIAddr = v
	}
	return c
}

// DefaultSaveTimeout is the maximum time allowed for a config save operation.
const DefaultSaveTimeout = 5 * time.Second

// Save writes the configuration to disk.
// It applies a timeout to prevent indefinite hangs on slow or failing filesystems.
func Save(c Config) error {
	return SaveWithTimeout(c, DefaultSaveTimeout)
}

// SaveWithTimeout writes the configuration to disk with a specified timeout.
// If the save takes longer than the timeout, it returns a timeout error.
func SaveWithTimeout(c Config, timeout time.Duration) error {
	if _, err := EnsureDir(); err != nil {
		return err
	}
	p, err := path()
	if err != nil {
		return err
	}
	if c.Version == "" {
		c.Version = ConfigVersion
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		saveMu.Lock()
		defer saveMu.Unlock()
		done <- writeFileAtomic(p, b, 0o600)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(timeout):
		return errors.New("config save timed out after " + timeout.String())
	}
}

// saveMu serializes writers of the config file within the process.
var saveMu sync.Mutex

// writeFileAtomic writes to a temp file in the same directory and renames it
// over path, so readers never see a partially written file.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	name := tmp.Name()
	cleanup := func() { _ = os.Remove(name) }

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := tmp.Chmod(perm); err != nil {
		_ = tmp.Close()
		cleanup()
		return fmt.Errorf("chmod temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp config: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		cleanup()
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}

// RecordPlay bumps the viewing history of a video.
func (c *Config) RecordPlay(videoID string, at time.Time) {
	if c.Watched == nil {
		c.Watched = map[string]WatchMeta{}
	}
	meta := c.Watched[videoID]
	meta.Plays++
	meta.LastPlayed = at
	c.Watched[videoID] = meta
}

// RecordQuizScore keeps the best score seen for a video's quiz and reports
// whether score improved on it.
func (c *Config) RecordQuizScore(videoID string, score int) bool {
	if c.QuizScores == nil {
		c.QuizScores = map[string]int{}
	}
	if best, ok := c.QuizScores[videoID]; ok && best >= score {
		return false
	}
	c.QuizScores[videoID] = score
	return true
}

// Clone returns a deep copy of the configuration so callers can mutate the
// returned value without affecting the receiver's internal maps or pointers.
func (c Config) Clone() Config {
	copyCfg := c
	if c.WatchCatalog != nil {
		copyCfg.WatchCatalog = boolPtr(*c.WatchCatalog)
	}
	if c.UI.ToastTTLMs != nil {
		copyCfg.UI.ToastTTLMs = intPtr(*c.UI.ToastTTLMs)
	}
	if c.UI.SmoothScroll != nil {
		copyCfg.UI.SmoothScroll = boolPtr(*c.UI.SmoothScroll)
	}
	if c.UI.FeaturedCount != nil {
		copyCfg.UI.FeaturedCount = intPtr(*c.UI.FeaturedCount)
	}
	if c.UI.ChatHistory != nil {
		copyCfg.UI.ChatHistory = intPtr(*c.UI.ChatHistory)
	}
	if c.Watched != nil {
		clone := make(map[string]WatchMeta, len(c.Watched))
		for k, meta := range c.Watched {
			clone[k] = meta
		}
		copyCfg.Watched = clone
	}
	if c.QuizScores != nil {
		clone := make(map[string]int, len(c.QuizScores))
		for k, score := range c.QuizScores {
			clone[k] = score
		}
		copyCfg.QuizScores = clone
	}
	return copyCfg
}

// Equal reports whether two configurations contain the same values. It treats
// nil and empty maps as equivalent so callers can rely on it for "dirty"
// state detection without spurious diffs.
func (c Config) Equal(other Config) bool {
	// Version is managed during load/save and is excluded.
	if c.LogLevel != other.LogLevel ||
		c.Theme != other.Theme ||
		c.CatalogPath != other.CatalogPath ||
		c.OpenCommand != other.OpenCommand ||
		c.APIAddr != other.APIAddr {
		return false
	}
	if !equalBoolPointers(c.WatchCatalog, other.WatchCatalog) {
		return false
	}
	if !equalIntPointers(c.UI.ToastTTLMs, other.UI.ToastTTLMs) ||
		!equalBoolPointers(c.UI.SmoothScroll, other.UI.SmoothScroll) ||
		!equalIntPointers(c.UI.FeaturedCount, other.UI.FeaturedCount) ||
		!equalIntPointers(c.UI.ChatHistory, other.UI.ChatHistory) ||
		c.UI.RetainViewParams != other.UI.RetainViewParams {
		return false
	}
	if len(c.Watched) != len(other.Watched) {
		return false
	}
	for id, a := range c.Watched {
		b, ok := other.Watched[id]
		if !ok || a.Plays != b.Plays || !equalTimes(a.LastPlayed, b.LastPlayed) {
			return false
		}
	}
	if len(c.QuizScores) != len(other.QuizScores) {
		return false
	}
	for id, a := range c.QuizScores {
		if b, ok := other.QuizScores[id]; !ok || a != b {
			return false
		}
	}
	return true
}

func equalTimes(a, b time.Time) bool {
	if a.IsZero() && b.IsZero() {
		return true
	}
	if a.IsZero() != b.IsZero() {
		return false
	}
	return a.Equal(b)
}

func intPtr(i int) *int { return &i }

func boolPtr(b bool) *bool { return &b }

func equalIntPointers(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalBoolPointers(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Helpers for callers that need the dereferenced UI values.

func (c Config) ToastTTL() time.Duration {
	if c.UI.ToastTTLMs == nil {
		return DefaultToastTTLMs * time.Millisecond
	}
	return time.Duration(*c.UI.ToastTTLMs) * time.Millisecond
}

func (c Config) SmoothScrollEnabled() bool {
	return c.UI.SmoothScroll == nil || *c.UI.SmoothScroll
}

func (c Config) FeaturedCount() int {
	if c.UI.FeaturedCount == nil || *c.UI.FeaturedCount <= 0 {
		return DefaultFeaturedCount
	}
	return *c.UI.FeaturedCount
}

func (c Config) ChatHistory() int {
	if c.UI.ChatHistory == nil || *c.UI.ChatHistory <= 0 {
		return DefaultChatHistory
	}
	return *c.UI.ChatHistory
}

func (c Config) WatchCatalogEnabled() bool {
	return c.WatchCatalog == nil || *c.WatchCatalog
}

// ValidationIssue represents a configuration validation issue.
type ValidationIssue struct {
	Field    string
	Message  string
	Severity string // "error", "warning", "info"
}

// ValidationResult holds the results of inter-field validation.
type ValidationResult struct {
	Valid  bool
	Issues []ValidationIssue
}

// AddError adds an error-level issue.
func (v *ValidationResult) AddError(field, message string) {
	v.Issues = append(v.Issues, ValidationIssue{Field: field, Message: message, Severity: "error"})
	v.Valid = false
}

// AddWarning adds a warning-level issue.
func (v *ValidationResult) AddWarning(field, message string) {
	v.Issues = append(v.Issues, ValidationIssue{Field: field, Message: message, Severity: "warning"})
}

// AddInfo adds an informational issue.
func (v *ValidationResult) AddInfo(field, message string) {
	v.Issues = append(v.Issues, ValidationIssue{Field: field, Message: message, Severity: "info"})
}

// Errors returns only error-level issues.
func (v *ValidationResult) Errors() []ValidationIssue {
	return v.filter("error")
}

// Warnings returns only warning-level issues.
func (v *ValidationResult) Warnings() []ValidationIssue {
	return v.filter("warning")
}

func (v *ValidationResult) filter(severity string) []ValidationIssue {
	var out []ValidationIssue
	for _, issue := range v.Issues {
		if issue.Severity == severity {
			out = append(out, issue)
		}
	}
	return out
}

// ValidateInterField performs cross-field validation on the configuration.
func (c Config) ValidateInterField() ValidationResult {
	result := ValidationResult{Valid: true}

	switch c.Theme {
	case ThemeAuto, ThemeDark, ThemeLight, "":
	default:
		result.AddError("theme", "must be one of: auto, dark, light")
	}

	validLogLevels := map[string]bool{
		"DEBUG":   true,
		"INFO":    true,
		"WARNING": true,
		"ERROR":   true,
		"WARN":    true, // Alias
	}
	if !validLogLevels[strings.ToUpper(c.LogLevel)] {
		result.AddError("log_level", "must be one of: DEBUG, INFO, WARNING, ERROR")
	}

	if strings.TrimSpace(c.OpenCommand) != "" {
		parts, err := shlex.Split(c.OpenCommand)
		if err != nil {
			result.AddError("open_command", "cannot be parsed: "+err.Error())
		} else if len(parts) == 0 {
			result.AddError("open_command", "resulted in no command parts after splitting")
		}
	}

	if c.APIAddr != "" {
		if _, _, err := net.SplitHostPort(c.APIAddr); err != nil {
			result.AddError("api_addr", "must be host:port, e.g. :8080")
		}
	}

	if c.CatalogPath != "" {
		if info, err := os.Stat(c.CatalogPath); err != nil {
			result.AddWarning("catalog_path", "not readable; the built-in catalog will be used")
		} else if info.IsDir() {
			result.AddError("catalog_path", "must point to a YAML file, not a directory")
		}
	} else if c.WatchCatalog != nil && *c.WatchCatalog {
		result.AddInfo("watch_catalog", "has no effect without catalog_path")
	}

	if c.UI.ToastTTLMs != nil && *c.UI.ToastTTLMs < 0 {
		result.AddError("ui.toast_ttl_ms", "must be >= 0")
	}
	if c.UI.FeaturedCount != nil && *c.UI.FeaturedCount > 12 {
		result.AddWarning("ui.featured_count", "more than 12 featured items crowds the home page")
	}

	for id, score := range c.QuizScores {
		if score < 0 {
			result.AddError("quiz_scores."+id, "must be >= 0")
		}
	}

	return result
}
