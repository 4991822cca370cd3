// Package app implements the application layer for memo.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/memo/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/memo/internal/engine/decide"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	hasher   ports.Hasher
	store    ports.RecordStore
	executor ports.Executor
	logger   ports.Logger
}

// New creates a new App instance.
func New(hasher ports.Hasher, store ports.RecordStore, executor ports.Executor, logger ports.Logger) *App {
	return &App{
		hasher:   hasher,
		store:    store,
		executor: executor,
		logger:   logger,
	}
}

// RunOptions carries the per-invocation knobs for Run.
type RunOptions struct {
	// CacheRoot overrides the default cache location when non-empty.
	CacheRoot string
	// Force runs the command unconditionally, bypassing the stored record.
	Force bool
	// Stdout and Stderr receive the wrapped command's output. Nil streams
	// default to the process's own.
	Stdout io.Writer
	Stderr io.Writer
}

// Outcome reports how a Run concluded.
type Outcome struct {
	// Skipped is true when the cached record made the run unnecessary.
	Skipped bool
	// Reason explains why the command ran or was skipped.
	Reason decide.Reason
	// ExitCode is the wrapped command's exit status; zero for a skip.
	ExitCode int
}

// Run executes one memoized invocation of the call.
//
// The call's declared inputs and outputs are digested, compared against the
// stored record for the call's identity, and the command is skipped when
// everything matches. After a successful run both sets are digested again and
// the record is rewritten. A failing command leaves the previous record
// untouched, so the next invocation retries.
func (a *App) Run(ctx context.Context, call domain.Call, opts RunOptions) (Outcome, error) {
	if len(call.Command) == 0 {
		return Outcome{}, domain.ErrNoCommand
	}

	root, err := resolveCacheRoot(opts.CacheRoot)
	if err != nil {
		return Outcome{}, err
	}

	id := domain.Identify(call)
	a.logger.Debug(fmt.Sprintf("call identity %s", id))

	var rec *domain.CacheRecord
	if !opts.Force {
		rec, err = a.store.Get(root, id)
		if err != nil {
			return Outcome{}, err
		}
	}

	inputs, err := a.hasher.DigestAll(ctx, call.WorkingDir, call.Inputs)
	if err != nil {
		return Outcome{}, err
	}
	outputs, err := a.hasher.DigestAll(ctx, call.WorkingDir, call.Outputs)
	if err != nil {
		return Outcome{}, err
	}

	decision := decide.Decide(call, rec, inputs, outputs)
	if opts.Force {
		decision = decide.Decision{Run: true, Reason: decide.ReasonForced}
	}

	if !decision.Run {
		a.logger.Debug(fmt.Sprintf("skipping %q: %s", call.CommandLine(), decision.Reason))
		return Outcome{Skipped: true, Reason: decision.Reason}, nil
	}

	if decision.Path != "" {
		a.logger.Debug(fmt.Sprintf("running %q: %s (%s)", call.CommandLine(), decision.Reason, decision.Path))
	} else {
		a.logger.Debug(fmt.Sprintf("running %q: %s", call.CommandLine(), decision.Reason))
	}

	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	result, err := a.executor.Execute(ctx, call, stdout, stderr)
	if err != nil {
		return Outcome{Reason: decision.Reason}, err
	}
	if result.ExitCode != 0 {
		// The record is left untouched so the next invocation retries.
		// Wrap so the sentinel stays in the errors.Is chain; zerr.With on a
		// *zerr.Error copies the message without keeping the original as cause.
		return Outcome{Reason: decision.Reason, ExitCode: result.ExitCode}, zerr.With(
			zerr.Wrap(domain.ErrCommandFailed, ""), "exit_code", result.ExitCode,
		)
	}

	// Re-digest both sets after the run: the command may rewrite its own
	// inputs, and the outputs it produced are what the next invocation must
	// compare against.
	inputs, err = a.hasher.DigestAll(ctx, call.WorkingDir, call.Inputs)
	if err != nil {
		return Outcome{Reason: decision.Reason}, err
	}
	outputs, err = a.hasher.DigestAll(ctx, call.WorkingDir, call.Outputs)
	if err != nil {
		return Outcome{Reason: decision.Reason}, err
	}

	updated := domain.NewCacheRecord(call, inputs, outputs, time.Now().UTC())
	if err := a.store.Put(root, id, updated); err != nil {
		return Outcome{Reason: decision.Reason}, err
	}

	return Outcome{Reason: decision.Reason}, nil
}

// WatchOptions carries the per-invocation knobs for Watch.
type WatchOptions struct {
	RunOptions

	// Debounce is the window for coalescing file events. Zero selects the
	// default.
	Debounce time.Duration

	// OnOutcome, when set, is invoked after every completed run or skip.
	OnOutcome func(Outcome, error)
}

// Watch runs the call once, then re-runs it whenever a declared input's
// content changes. It blocks until the context is canceled.
//
// Events that do not change content (touches, identical rewrites) are
// discarded by a fast fingerprint check before the run pipeline starts; the
// run itself still decides from full digests, so the prefilter can only
// suppress no-op wakeups, never a needed run.
func (a *App) Watch(ctx context.Context, call domain.Call, w ports.Watcher, opts WatchOptions) error {
	if len(call.Command) == 0 {
		return domain.ErrNoCommand
	}

	paths := make([]string, len(call.Inputs))
	for i, p := range call.Inputs {
		paths[i] = absPath(call.WorkingDir, p)
	}

	cache := watcher.NewHashCache()
	cache.Prime(paths)

	window := opts.Debounce
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}

	trigger := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(window, func(batch []string) {
		changed := cache.Changed(batch)
		if len(changed) == 0 {
			return
		}
		select {
		case trigger <- changed:
		default:
			// A run is already pending; the digests will pick up this
			// change when it executes.
		}
	})

	if err := w.Start(ctx, paths); err != nil {
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	defer func() {
		if err := w.Stop(); err != nil {
			a.logger.Error(zerr.Wrap(err, "failed to stop watcher"))
		}
	}()

	go func() {
		for event := range w.Events() {
			debouncer.Add(event.Path)
		}
	}()

	outcome, err := a.Run(ctx, call, opts.RunOptions)
	a.report(opts, outcome, err)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case changed := <-trigger:
			a.logger.Debug(fmt.Sprintf("inputs changed: %v", changed))
			outcome, err = a.Run(ctx, call, opts.RunOptions)
			a.report(opts, outcome, err)
		}
	}
}

func (a *App) report(opts WatchOptions, outcome Outcome, err error) {
	if err != nil && !errors.Is(err, domain.ErrCommandFailed) {
		a.logger.Error(err)
	}
	if opts.OnOutcome != nil {
		opts.OnOutcome(outcome, err)
	}
}

// Clean removes every stored record under the cache root.
func (a *App) Clean(cacheRoot string) error {
	root, err := resolveCacheRoot(cacheRoot)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(root); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove cache"), "root", root)
	}
	a.logger.Debug(fmt.Sprintf("removed cache at %s", root))
	return nil
}

func resolveCacheRoot(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	root, err := domain.DefaultCacheRoot()
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrCacheRootResolution.Error())
	}
	return root, nil
}

func absPath(dir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(dir, path)
}
