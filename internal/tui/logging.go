package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/SimoKiihamaki/cdaportal/internal/config"
)

type journalLevel string

const (
	levelInfo  journalLevel = "INFO"
	levelWarn  journalLevel = "WARN"
	levelError journalLevel = "ERROR"
)

// rank orders levels. Config spells warnings "WARNING"; unknown levels rank
// lowest so nothing is filtered by mistake.
func (l journalLevel) rank() int {
	switch strings.ToUpper(string(l)) {
	case "DEBUG":
		return 0
	case "INFO":
		return 1
	case "WARN", "WARNING":
		return 2
	case "ERROR":
		return 3
	default:
		return 0
	}
}

// sessionLog appends one line per navigation, overlay and chat event to a
// per-session file under the config directory. A nil *sessionLog discards
// everything.
type sessionLog struct {
	w      io.WriteCloser
	path   string
	status string
	now    func() time.Time
	// events below min are dropped
	min journalLevel
}

// openSessionLog creates logs/session_YYYYMMDD_HHMMSS.log. On failure the
// returned journal is nil and the error is meant for the status bar.
func openSessionLog(cfg config.Config, now func() time.Time) (*sessionLog, error) {
	if now == nil {
		now = time.Now
	}
	cfgDir, err := config.EnsureDir()
	if err != nil {
		return nil, fmt.Errorf("prepare log directory: %w", err)
	}
	logDir := filepath.Join(cfgDir, "logs")
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	started := now()
	path := filepath.Join(logDir, fmt.Sprintf("session_%s.log", started.Format("20060102_150405")))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	j := newSessionLog(f, now)
	j.min = journalLevel(cfg.LogLevel)
	j.path = path
	j.status = displayPath(path)
	if err := j.writeHeader(cfg, started); err != nil {
		j.close("header error")
		return nil, err
	}
	return j, nil
}

func newSessionLog(w io.WriteCloser, now func() time.Time) *sessionLog {
	if now == nil {
		now = time.Now
	}
	return &sessionLog{w: w, now: now}
}

func (j *sessionLog) writeHeader(cfg config.Config, started time.Time) error {
	headers := []string{
		fmt.Sprintf("# cdaportal session started %s", started.Format(time.RFC3339)),
		fmt.Sprintf("Theme: %s", cfg.Theme),
	}
	if cfg.CatalogPath != "" {
		headers = append(headers, fmt.Sprintf("Catalog: %s", displayPath(cfg.CatalogPath)))
	} else {
		headers = append(headers, "Catalog: embedded")
	}
	headers = append(headers, "")
	if _, err := io.WriteString(j.w, strings.Join(headers, "\n")+"\n"); err != nil {
		return fmt.Errorf("write log header: %w", err)
	}
	return nil
}

// event records one line. Write failures close the journal and are returned
// so the caller can surface them once.
func (j *sessionLog) event(level journalLevel, format string, args ...any) error {
	if j == nil || j.w == nil || level.rank() < j.min.rank() {
		return nil
	}
	text := strings.TrimRight(fmt.Sprintf(format, args...), "\r\n")
	entry := fmt.Sprintf("[%s] %s: %s\n", j.now().Format(time.RFC3339), level, text)
	if _, err := io.WriteString(j.w, entry); err != nil {
		j.close("write error")
		return fmt.Errorf("write log file: %w", err)
	}
	return nil
}

func (j *sessionLog) close(reason string) {
	if j == nil || j.w == nil {
		return
	}
	if reason != "" {
		_, _ = io.WriteString(j.w, fmt.Sprintf("# session %s at %s\n", reason, j.now().Format(time.RFC3339)))
	}
	_ = j.w.Close()
	j.w = nil
	if j.path != "" {
		j.status = displayPath(j.path)
		if reason != "" && reason != "quit" {
			j.status = fmt.Sprintf("%s (%s)", j.status, reason)
		}
	}
}

// displayPath shortens paths under the home directory to "~/...".
func displayPath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return ""
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p
	}
	rel, err := filepath.Rel(filepath.Clean(home), p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return p
	}
	if rel == "." {
		return "~"
	}
	return filepath.Join("~", rel)
}
