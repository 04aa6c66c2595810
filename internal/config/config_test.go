package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestConfigCloneIndependence(t *testing.T) {
	base := Defaults()
	stamp := time.Now()
	base.Watched = map[string]WatchMeta{
		"flipped-01": {Plays: 2, LastPlayed: stamp},
	}
	base.QuizScores = map[string]int{"flipped-01": 3}

	clone := base.Clone()
	if !base.Equal(clone) {
		t.Fatalf("expected clone to be equal to original")
	}

	clone.Watched["flipped-01"] = WatchMeta{Plays: 9}
	clone.QuizScores["flipped-01"] = 0
	*clone.UI.FeaturedCount = 7

	if got := base.Watched["flipped-01"].Plays; got != 2 {
		t.Fatalf("original watched map mutated by clone change, got %d", got)
	}
	if got := base.QuizScores["flipped-01"]; got != 3 {
		t.Fatalf("original quiz scores mutated by clone change, got %d", got)
	}
	if got := *base.UI.FeaturedCount; got != DefaultFeaturedCount {
		t.Fatalf("original featured count mutated by clone change, got %d", got)
	}
}

func TestConfigEqual(t *testing.T) {
	base := Defaults()
	base.UI.RetainViewParams = true
	base.Watched = map[string]WatchMeta{"udl-basics": {Plays: 1}}

	if !base.Equal(base.Clone()) {
		t.Fatalf("expected equal configs to report true")
	}

	modified := base.Clone()
	modified.UI.RetainViewParams = false
	if base.Equal(modified) {
		t.Fatalf("expected differing retain_view_params to report inequality")
	}

	modified = base.Clone()
	modified.UI.SmoothScroll = boolPtr(!*base.UI.SmoothScroll)
	if base.Equal(modified) {
		t.Fatalf("expected differing smooth_scroll to report inequality")
	}

	modified = base.Clone()
	modified.Watched["udl-basics"] = WatchMeta{Plays: 1, LastPlayed: time.Now()}
	if base.Equal(modified) {
		t.Fatalf("expected differing last_played to report inequality")
	}

	modified = base.Clone()
	modified.Version = "0.9.0"
	if !base.Equal(modified) {
		t.Fatalf("version differences should be ignored")
	}

	empty := Defaults()
	empty.Watched = nil
	if !Defaults().Equal(empty) {
		t.Fatalf("nil and empty maps should compare equal")
	}
}

func TestRecordPlayAndQuizScore(t *testing.T) {
	cfg := Config{}
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	cfg.RecordPlay("rubrics-101", at)
	cfg.RecordPlay("rubrics-101", at.Add(time.Hour))

	meta := cfg.Watched["rubrics-101"]
	if meta.Plays != 2 {
		t.Fatalf("expected 2 plays, got %d", meta.Plays)
	}
	if !meta.LastPlayed.Equal(at.Add(time.Hour)) {
		t.Fatalf("expected last played to advance, got %v", meta.LastPlayed)
	}

	if !cfg.RecordQuizScore("rubrics-101", 2) {
		t.Fatalf("first score should be recorded")
	}
	if cfg.RecordQuizScore("rubrics-101", 1) {
		t.Fatalf("lower score should not replace the best one")
	}
	if !cfg.RecordQuizScore("rubrics-101", 3) {
		t.Fatalf("higher score should replace the best one")
	}
	if got := cfg.QuizScores["rubrics-101"]; got != 3 {
		t.Fatalf("expected best score 3, got %d", got)
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.1.0", -1},
		{"1.1.0", "1.1.0", 0},
		{"2.0", "1.9.9", 1},
		{"", "0.0.0", 0},
		{"garbage", "1.0.0", -1},
	}
	for _, tt := range tests {
		if got := compareVersions(tt.a, tt.b); got != tt.want {
			t.Errorf("compareVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMigrateConfigRenamesSystemTheme(t *testing.T) {
	cfg, warnings := migrateConfig(Config{Version: "1.0.2", Theme: "System"})
	if cfg.Theme != ThemeAuto {
		t.Fatalf("expected theme %q after migration, got %q", ThemeAuto, cfg.Theme)
	}
	if cfg.Version != ConfigVersion {
		t.Fatalf("expected version %s, got %s", ConfigVersion, cfg.Version)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one migration warning, got %v", warnings)
	}

	cfg, warnings = migrateConfig(Config{Version: ConfigVersion, Theme: ThemeDark})
	if cfg.Theme != ThemeDark || len(warnings) != 0 {
		t.Fatalf("current config should not migrate, got %q %v", cfg.Theme, warnings)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv(EnvConfigDir, t.TempDir())
	t.Setenv(EnvTheme, "")
	t.Setenv(EnvCatalogPath, "")
	t.Setenv(EnvAPIAddr, "")

	result := LoadWithWarnings()
	if len(result.Warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", result.Warnings)
	}
	if !result.Config.Equal(Defaults()) {
		t.Fatalf("expected defaults, got %+v", result.Config)
	}
}

func TestSaveLoadRoundTripPreservesExplicitValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	t.Setenv(EnvTheme, "")
	t.Setenv(EnvCatalogPath, "")
	t.Setenv(EnvAPIAddr, "")

	cfg := Defaults()
	cfg.Theme = ThemeLight
	cfg.UI.SmoothScroll = boolPtr(false)
	cfg.UI.ToastTTLMs = intPtr(0)
	cfg.UI.RetainViewParams = true
	cfg.RecordPlay("genai-classroom", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	info, err := os.Stat(filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected 0600 permissions, got %o", perm)
	}

	result := LoadWithWarnings()
	if len(result.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", result.Warnings)
	}
	if !result.Config.Equal(cfg) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", result.Config, cfg)
	}
	if result.Config.SmoothScrollEnabled() {
		t.Fatalf("explicit smooth_scroll=false was overwritten by defaults")
	}
	if result.Config.ToastTTL() != 0 {
		t.Fatalf("explicit toast_ttl_ms=0 was overwritten by defaults")
	}
}

func TestLoadCorruptFileWarns(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	t.Setenv(EnvTheme, "")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("theme: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}

	result := LoadWithWarnings()
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "corrupt") {
		t.Fatalf("expected corrupt warning, got %v", result.Warnings)
	}
	if result.Config.Theme != ThemeAuto {
		t.Fatalf("expected default theme, got %q", result.Config.Theme)
	}
}

func TestLoadFixesNonPositiveCounts(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	body := "version: " + ConfigVersion + "\nui:\n  featured_count: 0\n  chat_history: -4\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	result := LoadWithWarnings()
	if len(result.Warnings) != 2 {
		t.Fatalf("expected two warnings, got %v", result.Warnings)
	}
	if result.Config.FeaturedCount() != DefaultFeaturedCount {
		t.Fatalf("expected featured count reset, got %d", result.Config.FeaturedCount())
	}
	if result.Config.ChatHistory() != DefaultChatHistory {
		t.Fatalf("expected chat history reset, got %d", result.Config.ChatHistory())
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv(EnvTheme, " Dark ")
	t.Setenv(EnvCatalogPath, "/srv/catalog.yaml")
	t.Setenv(EnvAPIAddr, "127.0.0.1:9000")

	cfg := ApplyEnv(Defaults())
	if cfg.Theme != ThemeDark {
		t.Errorf("theme = %q, want %q", cfg.Theme, ThemeDark)
	}
	if cfg.CatalogPath != "/srv/catalog.yaml" {
		t.Errorf("catalog path = %q", cfg.CatalogPath)
	}
	if cfg.APIAddr != "127.0.0.1:9000" {
		t.Errorf("api addr = %q", cfg.APIAddr)
	}
}

func TestNormalizeLogLevel(t *testing.T) {
	if got := normalizeLogLevel(" warn "); got != "WARNING" {
		t.Errorf("expected WARNING, got %q", got)
	}
	if got := normalizeLogLevel(""); got != "INFO" {
		t.Errorf("expected INFO, got %q", got)
	}
	if got := normalizeLogLevel("debug"); got != "DEBUG" {
		t.Errorf("expected DEBUG, got %q", got)
	}
}

func TestConcurrentSavesLeaveValidFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)
	t.Setenv(EnvTheme, "")
	t.Setenv(EnvCatalogPath, "")
	t.Setenv(EnvAPIAddr, "")

	// Snapshots of different sizes: a short one landing after a long one must
	// not leave the long one's tail behind.
	snapshots := make([]Config, 0, 8)
	for i := 0; i < 8; i++ {
		cfg := Defaults()
		for j := 0; j <= i*5; j++ {
			cfg.RecordPlay(fmt.Sprintf("video-%02d-%02d", i, j), time.Date(2026, 1, 1, 0, 0, j, 0, time.UTC))
		}
		snapshots = append(snapshots, cfg)
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(snapshots)*4)
	for round := 0; round < 4; round++ {
		for _, cfg := range snapshots {
			wg.Add(1)
			go func(c Config) {
				defer wg.Done()
				errs <- Save(c)
			}(cfg)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	result := LoadWithWarnings()
	if len(result.Warnings) != 0 {
		t.Fatalf("config corrupted by concurrent saves: %v", result.Warnings)
	}
	matched := false
	for _, cfg := range snapshots {
		if result.Config.Equal(cfg) {
			matched = true
			break
		}
	}
	if !matched {
		t.Fatalf("loaded config matches none of the saved snapshots")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".config-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}
