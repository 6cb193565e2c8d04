package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/lrstanley/go-ytdlp"
)

const supportedPlatform = "linux"

var ErrUnsupportedPlatform = errors.New("unsupported platform")

// dependency is an external tool the pipeline needs before it can run.
type dependency struct {
	name    string
	present func(ctx context.Context) bool
	install func(ctx context.Context) error
}

type Preflight struct {
	goos     string
	deps     []dependency
	notifier *Notifier
}

func NewPreflight(notifier *Notifier) *Preflight {
	return &Preflight{
		goos:     runtime.GOOS,
		notifier: notifier,
		deps: []dependency{
			{
				name:    "yt-dlp",
				present: ytdlpResolved,
				install: installYtdlp,
			},
			{
				name:    "ffmpeg",
				present: onPath("ffmpeg"),
				install: aptInstall("ffmpeg"),
			},
		},
	}
}

// EnsureReady reports whether the host can run the pipeline, installing
// any missing dependency along the way. Installed tools are never removed.
func (p *Preflight) EnsureReady(ctx context.Context) bool {
	if err := p.check(ctx); err != nil {
		p.notifier.Fail("%v", err)
		return false
	}
	return true
}

func (p *Preflight) check(ctx context.Context) error {
	if p.goos != supportedPlatform {
		return fmt.Errorf(
			"%w: frost only works on %s, this host is %s",
			ErrUnsupportedPlatform, supportedPlatform, p.goos,
		)
	}
	for _, dep := range p.deps {
		if dep.present(ctx) {
			continue
		}
		p.notifier.Notify("installing %s", dep.name)
		err := suppressStdout(func() error {
			return dep.install(ctx)
		})
		if err != nil {
			return fmt.Errorf("install %s: %w", dep.name, err)
		}
	}
	return nil
}

func onPath(name string) func(ctx context.Context) bool {
	return func(context.Context) bool {
		_, err := exec.LookPath(name)
		return err == nil
	}
}

// ytdlpResolved reports whether a yt-dlp binary is on PATH or in the
// go-ytdlp cache, without downloading anything. Any version counts.
func ytdlpResolved(ctx context.Context) bool {
	_, err := ytdlp.Install(ctx, &ytdlp.InstallOptions{
		DisableDownload:      true,
		AllowVersionMismatch: true,
	})
	return err == nil
}

// installYtdlp reuses a cached yt-dlp build when there is one and downloads
// the release binary otherwise.
func installYtdlp(ctx context.Context) error {
	_, err := ytdlp.Install(ctx, &ytdlp.InstallOptions{AllowVersionMismatch: true})
	return err
}

func aptInstall(pkg string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		cmd := exec.CommandContext(ctx, "apt-get", "install", "-y", pkg)
		cmd.Stdout = io.Discard
		cmd.Stderr = os.Stderr
		return cmd.Run()
	}
}

// suppressStdout points os.Stdout at the null device while fn runs.
// The original stream is restored however fn returns.
func suppressStdout(fn func() error) error {
	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer devnull.Close()

	saved := os.Stdout
	os.Stdout = devnull
	defer func() { os.Stdout = saved }()

	return fn()
}
