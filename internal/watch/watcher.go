// SPDX-License-Identifier: MPL-2.0

// Package watch follows theme roots on disk and reports, per theme directory,
// which files changed once edits settle.
//
// Every immediate subdirectory of a watched root is a theme. Events are
// debounced and grouped by theme so the callback can refresh each theme's
// last_update stamp once, no matter how many files an editor touched.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
)

// defaultDebounce is the quiet period before the callback fires. Editors
// commonly write a temp file and rename it; both events land in one batch.
const defaultDebounce = 500 * time.Millisecond

// defaultIgnores are always excluded, on top of Config.Ignore.
var defaultIgnores = []string{
	"**/.git/**",
	"**/node_modules/**",
	"**/.sass-cache/**",
	"**/*.swp",
	"**/*.swo",
	"**/*~",
	"**/.DS_Store",
}

// ErrInvalidWatchConfig is the sentinel wrapped by InvalidWatchConfigError.
var ErrInvalidWatchConfig = errors.New("invalid watch configuration")

type (
	// Config holds the parameters for a Watcher.
	Config struct {
		// Roots are theme root directories. Missing roots are skipped with a
		// note on Stderr; at least one must exist.
		Roots []string

		// Patterns are doublestar globs matched against a path relative to its
		// theme directory (e.g. "css/**/*.css"). Empty selects every file.
		Patterns []string

		// Ignore are extra doublestar globs matched against a path relative to
		// its root, merged with the built-in ignores.
		Ignore []string

		// Debounce falls back to defaultDebounce when zero or negative.
		Debounce time.Duration

		// ClearScreen writes an ANSI clear sequence to Stdout before each
		// callback. No terminal detection is performed.
		ClearScreen bool

		// OnChange receives one Change per theme with modified files. A nil
		// callback is a no-op.
		OnChange func(ctx context.Context, changes []Change) error

		Stdout io.Writer
		Stderr io.Writer
	}

	// Change lists the files modified inside one theme directory.
	Change struct {
		// Root is the absolute theme root the theme lives under.
		Root string
		// Theme is the directory name below Root.
		Theme string
		// Dir is the absolute theme directory.
		Dir string
		// Files are slash-separated paths relative to Dir, sorted.
		Files []string
	}

	// InvalidWatchConfigError collects every problem found by Config.Validate.
	InvalidWatchConfigError struct {
		FieldErrors []error
	}

	// Watcher monitors theme roots. Run must be called exactly once.
	Watcher struct {
		cfg      Config
		fsw      *fsnotify.Watcher
		ignores  []string
		stdout   io.Writer
		stderr   io.Writer
		debounce time.Duration
		roots    []string
		started  atomic.Bool

		quietMu sync.Mutex
		quiet   map[string]time.Time
	}
)

// Error implements error.
func (e *InvalidWatchConfigError) Error() string {
	return fmt.Sprintf("%s: %d field error(s): %v", ErrInvalidWatchConfig, len(e.FieldErrors), errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidWatchConfig for errors.Is.
func (e *InvalidWatchConfigError) Unwrap() error { return ErrInvalidWatchConfig }

// Validate checks roots and glob syntax without touching the filesystem.
func (c Config) Validate() error {
	var errs []error
	if len(c.Roots) == 0 {
		errs = append(errs, errors.New("roots: at least one theme root is required"))
	}
	for i, root := range c.Roots {
		if strings.TrimSpace(root) == "" {
			errs = append(errs, fmt.Errorf("roots[%d]: must not be blank", i))
		}
	}
	errs = append(errs, patternErrors(c.Patterns, "patterns")...)
	errs = append(errs, patternErrors(c.Ignore, "ignore")...)
	if len(errs) > 0 {
		return &InvalidWatchConfigError{FieldErrors: errs}
	}
	return nil
}

// New validates cfg, resolves the roots and registers every non-ignored
// directory below them.
func New(cfg Config) (*Watcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	roots := make([]string, 0, len(cfg.Roots))
	for _, root := range cfg.Roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("watch: resolve root %q: %w", root, err)
		}
		if info, statErr := os.Stat(abs); statErr != nil || !info.IsDir() {
			fmt.Fprintf(stderr, "watch: skipping missing theme root %q\n", abs)
			continue
		}
		if !slices.Contains(roots, abs) {
			roots = append(roots, abs)
		}
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("watch: none of the theme roots exist: %s", strings.Join(cfg.Roots, ", "))
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}

	ignores := make([]string, 0, len(defaultIgnores)+len(cfg.Ignore))
	ignores = append(ignores, defaultIgnores...)
	ignores = append(ignores, cfg.Ignore...)

	w := &Watcher{
		cfg:      cfg,
		fsw:      fsw,
		ignores:  ignores,
		stdout:   stdout,
		stderr:   stderr,
		debounce: debounce,
		roots:    roots,
		quiet:    make(map[string]time.Time),
	}

	for _, root := range roots {
		if err := w.addTree(root, root); err != nil {
			if closeErr := fsw.Close(); closeErr != nil {
				fmt.Fprintf(stderr, "watch: close after init failure: %v\n", closeErr)
			}
			return nil, err
		}
	}
	return w, nil
}

// Roots returns the absolute roots being watched.
func (w *Watcher) Roots() []string { return slices.Clone(w.roots) }

// Quiet drops events for the given files for two debounce periods. The
// callback uses it for files it rewrites itself, such as a theme manifest
// after a last_update refresh.
func (w *Watcher) Quiet(paths ...string) {
	until := time.Now().Add(2 * w.debounce)
	w.quietMu.Lock()
	defer w.quietMu.Unlock()
	for _, p := range paths {
		if abs, err := filepath.Abs(p); err == nil {
			w.quiet[abs] = until
		}
	}
}

func (w *Watcher) isQuiet(path string) bool {
	w.quietMu.Lock()
	defer w.quietMu.Unlock()
	until, ok := w.quiet[path]
	if !ok {
		return false
	}
	if time.Now().After(until) {
		delete(w.quiet, path)
		return false
	}
	return true
}

// Run blocks until ctx is cancelled, dispatching debounced callbacks. It
// returns nil on cancellation and an error when the watcher breaks.
func (w *Watcher) Run(ctx context.Context) error {
	if !w.started.CompareAndSwap(false, true) {
		return fmt.Errorf("watch: Run called more than once")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running atomic.Bool
	)

	// fire may run after cancellation since it is scheduled by AfterFunc.
	fire := func() {
		if ctx.Err() != nil {
			return
		}
		if !running.CompareAndSwap(false, true) {
			fmt.Fprintf(w.stderr, "watch: skipping refresh (previous run still in progress)\n")
			mu.Lock()
			if timer != nil {
				timer.Reset(w.debounce)
			}
			mu.Unlock()
			return
		}
		defer running.Store(false)

		mu.Lock()
		if len(pending) == 0 {
			mu.Unlock()
			return
		}
		changed := slices.Sorted(maps.Keys(pending))
		clear(pending)
		mu.Unlock()

		changes := w.group(changed)
		if len(changes) == 0 {
			return
		}

		if w.cfg.ClearScreen {
			fmt.Fprint(w.stdout, "\033[2J\033[H")
		}

		if w.cfg.OnChange != nil {
			if err := w.cfg.OnChange(ctx, changes); err != nil {
				fmt.Fprintf(w.stderr, "watch: callback error: %v\n", err)
			}
		}
	}

	defer func() {
		mu.Lock()
		localTimer := timer
		mu.Unlock()
		if localTimer != nil && !localTimer.Stop() {
			select {
			case <-localTimer.C:
			default:
			}
		}
		if closeErr := w.fsw.Close(); closeErr != nil {
			fmt.Fprintf(w.stderr, "watch: close fsnotify: %v\n", closeErr)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case evt, ok := <-w.fsw.Events:
			if !ok {
				return fmt.Errorf("watch: fsnotify event channel closed unexpectedly")
			}
			// Attribute-only events come from our own directory touches.
			if evt.Op == fsnotify.Chmod {
				continue
			}
			if evt.Has(fsnotify.Create) {
				w.maybeAddTree(evt.Name)
			}
			if !w.accepts(evt.Name) || w.isQuiet(evt.Name) {
				continue
			}

			mu.Lock()
			pending[evt.Name] = struct{}{}
			if timer == nil {
				timer = time.AfterFunc(w.debounce, fire)
			} else {
				timer.Reset(w.debounce)
			}
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return fmt.Errorf("watch: fsnotify error channel closed unexpectedly")
			}
			if watcherBroken(err) {
				return fmt.Errorf("watch: fatal fsnotify error: %w", err)
			}
			fmt.Fprintf(w.stderr, "watch: fsnotify error: %v\n", err)
		}
	}
}

// accepts reports whether an event path lies inside a theme directory and
// passes the ignore and pattern filters.
func (w *Watcher) accepts(path string) bool {
	_, theme, file, ok := w.locate(path)
	if !ok || w.isIgnored(theme+"/"+file) {
		return false
	}
	return w.matchesPatterns(file)
}

// locate splits path into its root, theme name and theme-relative file. Files
// directly under a root and the theme directories themselves are not inside
// a theme.
func (w *Watcher) locate(path string) (root, theme, file string, ok bool) {
	for _, r := range w.roots {
		rel, err := filepath.Rel(r, path)
		if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			continue
		}
		parts := strings.SplitN(filepath.ToSlash(rel), "/", 2)
		if len(parts) != 2 || parts[1] == "" {
			return "", "", "", false
		}
		return r, parts[0], parts[1], true
	}
	return "", "", "", false
}

// group turns absolute changed paths into sorted per-theme changes.
func (w *Watcher) group(changed []string) []Change {
	byDir := make(map[string]*Change)
	for _, path := range changed {
		root, theme, file, ok := w.locate(path)
		if !ok {
			continue
		}
		dir := filepath.Join(root, theme)
		c, seen := byDir[dir]
		if !seen {
			c = &Change{Root: root, Theme: theme, Dir: dir}
			byDir[dir] = c
		}
		if !slices.Contains(c.Files, file) {
			c.Files = append(c.Files, file)
		}
	}

	out := make([]Change, 0, len(byDir))
	for _, dir := range slices.Sorted(maps.Keys(byDir)) {
		c := byDir[dir]
		slices.Sort(c.Files)
		out = append(out, *c)
	}
	return out
}

// addTree registers dir and every non-ignored directory below it.
func (w *Watcher) addTree(root, dir string) error {
	walkErr := filepath.WalkDir(dir, func(path string, d os.DirEntry, walkDirErr error) error {
		if walkDirErr != nil {
			fmt.Fprintf(w.stderr, "watch: skipping inaccessible path %q: %v\n", path, walkDirErr)
			return nil //nolint:nilerr // inaccessible paths are skipped, not fatal
		}
		if !d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil //nolint:nilerr // skip paths that cannot be made relative
		}
		if rel != "." && (w.isIgnored(rel) || w.isIgnored(rel+"/")) {
			return filepath.SkipDir
		}

		if addErr := w.fsw.Add(path); addErr != nil {
			return fmt.Errorf("watch: add directory %q: %w", path, addErr)
		}
		return nil
	})
	if walkErr != nil {
		return fmt.Errorf("watch: walk theme root: %w", walkErr)
	}
	return nil
}

// maybeAddTree extends the watch to a directory created after startup, such
// as a freshly copied theme.
func (w *Watcher) maybeAddTree(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return
	}
	for _, root := range w.roots {
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		if addErr := w.addTree(root, path); addErr != nil {
			fmt.Fprintf(w.stderr, "watch: add new directory %q: %v\n", path, addErr)
		}
		return
	}
}

// isIgnored matches a root-relative path against the ignore list.
func (w *Watcher) isIgnored(rel string) bool {
	return matchAny(w.ignores, rel)
}

// matchesPatterns matches a theme-relative path against Config.Patterns.
func (w *Watcher) matchesPatterns(file string) bool {
	if len(w.cfg.Patterns) == 0 {
		return true
	}
	return matchAny(w.cfg.Patterns, file)
}

func matchAny(patterns []string, rel string) bool {
	normalized := filepath.ToSlash(rel)
	for _, pat := range patterns {
		if matched, err := doublestar.Match(pat, normalized); err == nil && matched {
			return true
		}
	}
	return false
}

// DefaultIgnores returns a copy of the built-in ignore patterns.
func DefaultIgnores() []string {
	return slices.Clone(defaultIgnores)
}

func patternErrors(patterns []string, label string) []error {
	var errs []error
	for i, pat := range patterns {
		if strings.TrimSpace(pat) == "" {
			errs = append(errs, fmt.Errorf("%s[%d]: must not be empty", label, i))
			continue
		}
		if !doublestar.ValidatePattern(pat) {
			errs = append(errs, fmt.Errorf("%s[%d]: invalid glob %q", label, i, pat))
		}
	}
	return errs
}
