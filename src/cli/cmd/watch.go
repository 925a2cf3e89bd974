package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/sofmeright/reviewbadge/src/config"
	"github.com/sofmeright/reviewbadge/src/output"
)

var watchOut string

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 150 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate the badge whenever the config file changes",
	Long: `Watch the config file and regenerate the badge document on every change.

A change that arrives while a generation is still running supersedes it; only
the newest generation is written.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "output file (default: output.file from config)")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path, err := filepath.Abs(configPath())
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so atomic saves (write + rename) are seen.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(path), err)
	}

	out := watchOut
	if out == "" {
		out = cfg.Output.File
	}
	r := &rebuilder{out: out}
	defer r.wait()

	logger.Info().Str("config", path).Str("out", out).Msg("watching for changes")
	r.trigger(ctx, cfg)

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				debounce = time.After(watchDebounce)
			}

		case <-debounce:
			debounce = nil
			next, err := reloadConfig(path)
			if err != nil {
				logger.Error().Err(err).Msg("config not reloaded")
				continue
			}
			r.trigger(ctx, next)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("watch error")
		}
	}
}

// reloadConfig reads and validates the config file again.
func reloadConfig(path string) (*config.Config, error) {
	c, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	warnings, err := config.Validate(c)
	for _, w := range warnings {
		logger.Warn().Msg(w)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// rebuilder runs generations in the background. Starting one cancels the
// previous, and only the newest may write its result.
type rebuilder struct {
	out string

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func (r *rebuilder) trigger(ctx context.Context, c *config.Config) {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.seq++
	seq := r.seq
	gctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.mu.Unlock()

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		start := time.Now()

		html, err := render(gctx, c)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Debug().Uint64("generation", seq).Msg("superseded")
				return
			}
			logger.Error().Err(err).Msg("generation failed")
			return
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if seq != r.seq {
			logger.Debug().Uint64("generation", seq).Msg("superseded")
			return
		}
		if err := writeDocument(r.out, html); err != nil {
			logger.Error().Err(err).Msg("writing badge")
			return
		}
		logger.Info().
			Str("layout", string(c.Badge.Layout)).
			Int("bytes", len(html)).
			Dur("took", time.Since(start)).
			Msg("badge regenerated")
	}()
}

func (r *rebuilder) wait() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()
	r.wg.Wait()
}

// render generates the document for c in a fresh session.
func render(ctx context.Context, c *config.Config) (string, error) {
	sess, err := openSession(ctx, c)
	if err != nil {
		return "", err
	}
	defer sess.Close()

	if w := sess.Warning(); w != "" {
		output.Warning(os.Stderr, w, output.UseColor())
	}
	return sess.Generate(ctx)
}
