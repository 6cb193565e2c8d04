package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/lrstanley/go-ytdlp"
)

const (
	outputTemplate = "%(title)s.%(ext)s"
	audioFormat    = "mp3"
	audioQuality   = "320K"
	dirMode        = 0o755
)

var (
	ErrDirectoryDeclined = errors.New("output directory was not created")
	ErrDirectoryCreate   = errors.New("cannot create output directory")
	ErrNotDirectory      = errors.New("output path is not a directory")
)

// Fetcher downloads every target into dir as audio files. Failures of
// single targets are skipped, not returned.
type Fetcher interface {
	Fetch(ctx context.Context, dir string, targets []string) error
}

type ytdlpFetcher struct {
	verbose bool
}

func (f ytdlpFetcher) Fetch(ctx context.Context, dir string, targets []string) error {
	dl := ytdlp.New().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat(audioFormat).
		AudioQuality(audioQuality).
		NoOverwrites().
		IgnoreErrors().
		Paths(dir).
		Output(outputTemplate)
	if f.verbose {
		dl = dl.Verbose()
	}

	result, err := dl.Run(ctx, targets...)
	if f.verbose && result != nil {
		for _, l := range result.OutputLogs {
			log.Println(l.Line)
		}
	}
	return err
}

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(message string) (bool, error)

func surveyConfirm(message string) (bool, error) {
	var ok bool
	err := survey.AskOne(
		&survey.Confirm{
			Message: message,
			Default: false,
		},
		&ok,
	)
	return ok, err
}

func alwaysConfirm(string) (bool, error) {
	return true, nil
}

// ResolveDirectory returns the directory downloads go to, ending in a
// separator. A missing directory is only created after confirm agrees.
func ResolveDirectory(dir string, confirm ConfirmFunc) (string, error) {
	if dir == "" {
		dir = "."
	}

	info, err := os.Stat(dir)
	switch {
	case err == nil:
		if !info.IsDir() {
			return "", fmt.Errorf("%w: %s", ErrNotDirectory, dir)
		}
	case errors.Is(err, os.ErrNotExist):
		ok, err := confirm(fmt.Sprintf("%s does not exist, create it?", dir))
		if err != nil {
			return "", fmt.Errorf("%w: %s: %v", ErrDirectoryDeclined, dir, err)
		}
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrDirectoryDeclined, dir)
		}
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return "", fmt.Errorf("%w: %v", ErrDirectoryCreate, err)
		}
	default:
		return "", fmt.Errorf("%w: %v", ErrDirectoryCreate, err)
	}

	return withTrailingSeparator(dir), nil
}

// Orchestrator fetches targets into the output directory and works out
// which files the fetch created.
type Orchestrator struct {
	Fetcher  Fetcher
	Confirm  ConfirmFunc
	Notifier *Notifier
}

func NewOrchestrator(req Request, notifier *Notifier) *Orchestrator {
	confirm := ConfirmFunc(surveyConfirm)
	if req.AssumeYes {
		confirm = alwaysConfirm
	}
	return &Orchestrator{
		Fetcher:  ytdlpFetcher{verbose: req.Verbose},
		Confirm:  confirm,
		Notifier: notifier,
	}
}

// Run returns the sorted names of the files the fetch added to the resolved
// directory, along with that directory. Only directory problems are errors.
func (o *Orchestrator) Run(ctx context.Context, req Request) ([]string, string, error) {
	dir, err := ResolveDirectory(req.Dir, o.Confirm)
	if err != nil {
		return nil, "", err
	}

	before, err := TakeSnapshot(dir)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", dir, err)
	}

	o.Notifier.Notify("fetching %d target(s) into %s", len(req.Targets), dir)
	if err := o.Fetcher.Fetch(ctx, dir, req.Targets); err != nil {
		log.Printf("yt-dlp reported errors, continuing: %v", err)
	}

	after, err := TakeSnapshot(dir)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", dir, err)
	}

	created := after.NewSince(before)
	o.Notifier.Notify("%d new file(s)", len(created))
	return created, dir, nil
}
