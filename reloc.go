// Package reloc lets a program find the directory it was started from, and the
// resource directory shipped alongside it, without hardcoding an install
// location. The whole tree can then be moved anywhere and keep working.
//
// The executable is located at most once per Resolver by the first strategy
// which succeeds: the OS's own answer (/proc/self/exe, the loader) first, then
// argv[0] interpreted against the start directory and PATH, then the
// compiled-in DefaultDir. If all of those fail the accessors return Invalid.
package reloc // import "gopkg.in/hlandau/reloc.v1"

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Build-time configuration. These are variables only so they can be set with
// the linker, e.g.
//
//	go build -ldflags "-X gopkg.in/hlandau/reloc.v1.ResourceOffset=../share/foo"
//
// Nothing at runtime changes them.
var (
	// Location of the resource directory relative to the application
	// directory. Must be relative. Use "." for a flat layout.
	ResourceOffset = "../share"

	// Absolute directory to assume if the executable cannot be located.
	// Empty means there is no default and Invalid is returned instead.
	DefaultDir = ""
)

// Returned (wrapped) by Err if the location of the executable is unknown.
var ErrUnresolved = errors.New("reloc: cannot locate executable")

// Name reported by Strategy when the result came from DefaultDir.
const StrategyDefault = "default"

// Options for New. The zero value gives the same behaviour as the package-level
// functions.
type Options struct {
	// Relative offset from the application directory to the resource
	// directory. Empty means ResourceOffset.
	ResourceOffset string

	// Fallback application directory. Must be absolute. Empty means
	// DefaultDir.
	DefaultDir string

	// Strategies tried in order. nil means the platform defaults.
	Strategies []Strategy

	// Attempts are logged at debug level. nil means no logging.
	Logger *zap.Logger
}

// A Resolver locates the running executable once and then answers every query
// from the cached result. It is safe for concurrent use. The zero value behaves
// like New(Options{}).
type Resolver struct {
	offset     string
	defaultDir string
	strategies []Strategy
	log        *zap.Logger

	once     sync.Once
	exe      Path
	dir      Path
	strategy string
	err      error

	ready     bool
	configErr error
}

// Offsets may climb at most this many directories above the application
// directory.
const MaxOffsetDepth = 8

// New returns a Resolver. Nothing is resolved until the first query.
func New(opts Options) (*Resolver, error) {
	r := &Resolver{
		offset:     opts.ResourceOffset,
		defaultDir: opts.DefaultDir,
		strategies: opts.Strategies,
		log:        opts.Logger,
	}

	r.setup()
	if r.configErr != nil {
		return nil, r.configErr
	}

	return r, nil
}

// setup fills in defaults. Invalid settings are replaced by safe ones (a flat
// layout, no default directory) and recorded in configErr.
func (r *Resolver) setup() {
	if r.ready {
		return
	}
	r.ready = true

	if r.offset == "" {
		r.offset = ResourceOffset
	}
	offset, err := cleanOffset(r.offset)
	if err != nil {
		r.configErr = multierr.Append(r.configErr, err)
		offset = "."
	}
	r.offset = offset

	if r.defaultDir == "" {
		r.defaultDir = DefaultDir
	}
	if r.defaultDir != "" {
		if filepath.IsAbs(r.defaultDir) {
			r.defaultDir = filepath.Clean(r.defaultDir)
		} else {
			r.configErr = multierr.Append(r.configErr,
				fmt.Errorf("default directory %q must be absolute", r.defaultDir))
			r.defaultDir = ""
		}
	}

	if r.strategies == nil {
		r.strategies = platformStrategies()
	}

	if r.log == nil {
		r.log = zap.NewNop()
	}
}

func cleanOffset(offset string) (string, error) {
	if offset == "" {
		return ".", nil
	}

	if filepath.IsAbs(offset) || filepath.VolumeName(offset) != "" {
		return "", fmt.Errorf("resource offset %q must be relative to the application directory", offset)
	}

	offset = filepath.Clean(filepath.FromSlash(offset))
	if n := climbs(offset); n > MaxOffsetDepth {
		return "", fmt.Errorf("resource offset %q climbs %d directories, more than %d", offset, n, MaxOffsetDepth)
	}

	return offset, nil
}

// climbs returns the number of leading ".." elements of a clean relative path.
func climbs(rel string) int {
	n := 0
	for _, e := range strings.Split(rel, string(filepath.Separator)) {
		if e != ".." {
			break
		}
		n++
	}
	return n
}

// depth returns the number of elements in a clean absolute path.
func depth(abs string) int {
	rest := strings.Trim(abs[len(filepath.VolumeName(abs)):], string(filepath.Separator))
	if rest == "" {
		return 0
	}
	return strings.Count(rest, string(filepath.Separator)) + 1
}

// ApplicationDir returns the absolute, symlink-free directory containing the
// running executable, or Invalid.
func (r *Resolver) ApplicationDir() Path {
	r.once.Do(r.resolve)
	return r.dir
}

// ResourceDir returns ApplicationDir joined with the resource offset. It is
// Invalid if ApplicationDir is, or if the offset would climb above the
// filesystem root.
func (r *Resolver) ResourceDir() Path {
	dir := r.ApplicationDir()
	if !dir.Valid() || climbs(r.offset) > depth(string(dir)) {
		return Invalid
	}

	return dir.Join(r.offset)
}

// Executable returns the canonical path of the executable file itself. It is
// Invalid if resolution failed or fell back to the default directory.
func (r *Resolver) Executable() Path {
	r.once.Do(r.resolve)
	return r.exe
}

// Strategy returns the name of the strategy which located the executable,
// StrategyDefault if DefaultDir was used, or "" on failure.
func (r *Resolver) Strategy() string {
	r.once.Do(r.resolve)
	return r.strategy
}

// Err returns nil if the executable was located (or DefaultDir applied).
// Otherwise it returns an error wrapping ErrUnresolved which describes why each
// strategy failed. It also reports build-time settings which were invalid and
// replaced by safe values.
func (r *Resolver) Err() error {
	r.once.Do(r.resolve)
	return multierr.Append(r.configErr, r.err)
}

// ResourceOffset returns the offset used to derive ResourceDir.
func (r *Resolver) ResourceOffset() string {
	r.once.Do(r.resolve)
	return r.offset
}

func (r *Resolver) resolve() {
	r.setup()
	if r.configErr != nil {
		r.log.Warn("invalid build-time configuration", zap.Error(r.configErr))
	}

	var errs error

	for _, s := range r.strategies {
		raw, err := s.Locate()
		if err == nil {
			var exe string
			exe, err = canonicalize(raw)
			if err == nil {
				r.exe = Path(exe)
				r.dir = Path(filepath.Dir(exe))
				r.strategy = s.Name()
				r.log.Debug("located executable",
					zap.String("strategy", r.strategy),
					zap.String("path", exe))
				return
			}
		}

		r.log.Debug("strategy failed", zap.String("strategy", s.Name()), zap.Error(err))
		errs = multierr.Append(errs, fmt.Errorf("%s: %w", s.Name(), err))
	}

	if r.defaultDir != "" {
		r.dir = Path(r.defaultDir)
		r.strategy = StrategyDefault
		r.log.Warn("cannot locate executable, using default directory",
			zap.String("dir", r.defaultDir),
			zap.Error(errs))
		return
	}

	if errs == nil {
		errs = errors.New("no strategies")
	}

	r.err = fmt.Errorf("%w: %w", ErrUnresolved, errs)
	r.log.Warn("cannot locate executable", zap.Error(errs))
}

// canonicalize makes p absolute and resolves every symlink in it. If the file
// itself has gone (it was replaced while running), the directory is still
// resolved so the result remains useful.
func canonicalize(p string) (string, error) {
	if p == "" {
		return "", errors.New("empty path")
	}

	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return filepath.Clean(resolved), nil
	}

	dir, err2 := filepath.EvalSymlinks(filepath.Dir(abs))
	if err2 != nil {
		return "", err
	}

	return filepath.Join(dir, filepath.Base(abs)), nil
}

// © 2015 Hugo Landau <hlandau@devever.net>  ISC License
