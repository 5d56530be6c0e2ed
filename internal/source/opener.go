package source

import (
	"context"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// Opener shows a record's link outside the terminal.
type Opener interface {
	Open(ctx context.Context, link string) error
}

// BrowserOpener opens links with the platform's default browser. It starts
// the helper and does not wait for it.
type BrowserOpener struct {
	GOOS        string
	execCommand func(ctx context.Context, name string, args ...string) *exec.Cmd
}

func NewBrowserOpener() *BrowserOpener {
	return &BrowserOpener{GOOS: runtime.GOOS, execCommand: exec.CommandContext}
}

func (o *BrowserOpener) Open(ctx context.Context, link string) error {
	name, args, err := openCommand(o.GOOS, link)
	if err != nil {
		return err
	}
	cmd := o.execCommand(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", link, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func openCommand(goos, link string) (string, []string, error) {
	u, err := url.Parse(link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", nil, fmt.Errorf("not a web link: %q", link)
	}
	switch goos {
	case "darwin":
		return "open", []string{link}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", link}, nil
	default:
		return "xdg-open", []string{link}, nil
	}
}
