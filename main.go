package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
)

func main() {
	os.Exit(run(context.Background(), os.Args))
}

func run(ctx context.Context, args []string) int {
	notifier := NewNotifier(os.Stdout)

	if !NewPreflight(notifier).EnsureReady(ctx) {
		return 1
	}

	req, err := ParseOptions(filepath.Base(args[0]), args[1:], os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		notifier.Fail("%v", err)
		return 2
	}

	return execute(ctx, req, NewOrchestrator(req, notifier), notifier)
}

func execute(ctx context.Context, req Request, orch *Orchestrator, notifier *Notifier) int {
	files, dir, err := orch.Run(ctx, req)
	if err != nil {
		notifier.Fail("%v", err)
		return 1
	}

	if err := req.Overrides.Apply(dir, files); err != nil {
		notifier.Fail("%v", err)
		return 1
	}

	notifier.Notify("done: %d file(s) in %s", len(files), dir)
	return 0
}
