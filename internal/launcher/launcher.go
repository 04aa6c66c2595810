// Package launcher opens external resources (agent chats, tool sites, video
// pages) in the user's browser without tying them to the portal's lifetime.
package launcher

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"regexp"
	"runtime"
	"strings"

	"github.com/google/shlex"
)

// URLPlaceholder marks where the URL goes in a custom open command. Without
// it the URL is appended as the last argument.
const URLPlaceholder = "{url}"

var ErrUnsupportedURL = errors.New("launcher: only http and https URLs can be opened")

// Launcher starts the configured opener for a URL.
type Launcher struct {
	command string
	goos    string
	start   func(*exec.Cmd) error
}

type Option func(*Launcher)

// WithStarter replaces the process starter; tests use it to capture commands.
func WithStarter(start func(*exec.Cmd) error) Option {
	return func(l *Launcher) { l.start = start }
}

// WithGOOS picks the platform default opener for goos instead of the running one.
func WithGOOS(goos string) Option {
	return func(l *Launcher) { l.goos = goos }
}

// New returns a launcher for openCommand. An empty command selects the
// platform default (xdg-open, open, or rundll32).
func New(openCommand string, opts ...Option) *Launcher {
	l := &Launcher{
		command: strings.TrimSpace(openCommand),
		goos:    runtime.GOOS,
		start:   startDetached,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open starts the opener for rawURL and returns once the process is running.
func (l *Launcher) Open(rawURL string) error {
	cmd, err := l.Command(rawURL)
	if err != nil {
		return err
	}
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("open %s: %w", rawURL, err)
	}
	return nil
}

// Command builds the process that would open rawURL.
func (l *Launcher) Command(rawURL string) (*exec.Cmd, error) {
	target, err := CheckURL(rawURL)
	if err != nil {
		return nil, err
	}
	argv, err := l.argv(target)
	if err != nil {
		return nil, err
	}
	return exec.Command(argv[0], argv[1:]...), nil
}

// CheckURL trims rawURL and verifies it is an absolute http(s) URL.
func CheckURL(rawURL string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.String(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedURL, rawURL)
	}
}

func (l *Launcher) argv(target string) ([]string, error) {
	if l.command == "" {
		return defaultOpener(l.goos, target), nil
	}
	if err := validateCommand(l.command); err != nil {
		return nil, err
	}
	parts, err := shlex.Split(l.command)
	if err != nil {
		return nil, fmt.Errorf("failed to parse open command %q: %w", l.command, err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("open command %q resulted in no command parts after splitting", l.command)
	}
	replaced := false
	for i, p := range parts {
		if strings.Contains(p, URLPlaceholder) {
			parts[i] = strings.ReplaceAll(p, URLPlaceholder, target)
			replaced = true
		}
	}
	if !replaced {
		parts = append(parts, target)
	}
	return parts, nil
}

func defaultOpener(goos, target string) []string {
	switch goos {
	case "darwin":
		return []string{"open", target}
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler", target}
	default:
		return []string{"xdg-open", target}
	}
}

// Shell metacharacters have no meaning once the command is split, so their
// presence means the user expected a shell.
var dangerousChars = regexp.MustCompile("[;&|`$<>]")

func validateCommand(command string) error {
	if dangerousChars.MatchString(command) {
		return fmt.Errorf("open command contains shell metacharacters: %q", command)
	}
	return nil
}

// startDetached runs cmd in its own process group and reaps it in the
// background so closing the portal leaves the browser running.
func startDetached(cmd *exec.Cmd) error {
	setupProcessGroup(cmd)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
