package reloc_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"gopkg.in/hlandau/reloc.v1"
)

// tempRoot returns a fresh directory with any symlinks in its own path
// resolved (on macOS the temporary directory lives behind /var -> /private/var).
func tempRoot(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return root
}

func writeFile(t *testing.T, path, content string, mode os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), mode))
}

func fixed(path string) reloc.Strategy {
	return reloc.StrategyFunc("fixed", func() (string, error) { return path, nil })
}

func failing(name string) reloc.Strategy {
	return reloc.StrategyFunc(name, func() (string, error) {
		return "", reloc.ErrUnavailable
	})
}

func newResolver(t *testing.T, opts reloc.Options) *reloc.Resolver {
	t.Helper()
	r, err := reloc.New(opts)
	require.NoError(t, err)
	return r
}

func TestInstalledLayout(t *testing.T) {
	root := tempRoot(t)
	exe := filepath.Join(root, "opt", "app", "bin", "app")
	writeFile(t, exe, "", 0o755)

	r := newResolver(t, reloc.Options{
		ResourceOffset: "../share",
		Strategies:     []reloc.Strategy{fixed(exe)},
	})

	require.NoError(t, r.Err())
	assert.Equal(t, reloc.Path(filepath.Join(root, "opt", "app", "bin")), r.ApplicationDir())
	assert.Equal(t, reloc.Path(filepath.Join(root, "opt", "app", "share")), r.ResourceDir())
	assert.Equal(t, reloc.Path(exe), r.Executable())
	assert.Equal(t, "fixed", r.Strategy())
}

func TestFlatLayout(t *testing.T) {
	root := tempRoot(t)
	exe := filepath.Join(root, "app")
	writeFile(t, exe, "", 0o755)

	r := newResolver(t, reloc.Options{
		ResourceOffset: ".",
		Strategies:     []reloc.Strategy{fixed(exe)},
	})

	assert.Equal(t, reloc.Path(root), r.ApplicationDir())
	assert.Equal(t, r.ApplicationDir(), r.ResourceDir())
}

func TestRelativeResultIsMadeAbsolute(t *testing.T) {
	root := tempRoot(t)
	writeFile(t, filepath.Join(root, "bin", "app"), "", 0o755)

	wd, err := os.Getwd()
	require.NoError(t, err)
	rel, err := filepath.Rel(wd, filepath.Join(root, "bin", ".", "..", "bin", "app"))
	if err != nil {
		t.Skip("temporary directory not reachable by a relative path")
	}

	r := newResolver(t, reloc.Options{Strategies: []reloc.Strategy{fixed(rel)}})
	assert.Equal(t, reloc.Path(filepath.Join(root, "bin")), r.ApplicationDir())
}

func TestResolvesSymlinks(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}

	root := tempRoot(t)
	exe := filepath.Join(root, "real", "bin", "app")
	writeFile(t, exe, "", 0o755)

	link := filepath.Join(root, "links", "app")
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0o755))
	require.NoError(t, os.Symlink(exe, link))

	direct := newResolver(t, reloc.Options{Strategies: []reloc.Strategy{fixed(exe)}})
	viaLink := newResolver(t, reloc.Options{Strategies: []reloc.Strategy{fixed(link)}})

	assert.Equal(t, reloc.Path(filepath.Join(root, "real", "bin")), viaLink.ApplicationDir())
	assert.Equal(t, direct.ApplicationDir(), viaLink.ApplicationDir())
}

func TestReplacedExecutable(t *testing.T) {
	root := tempRoot(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "bin"), 0o755))

	r := newResolver(t, reloc.Options{
		Strategies: []reloc.Strategy{fixed(filepath.Join(root, "bin", "gone"))},
	})
	assert.Equal(t, reloc.Path(filepath.Join(root, "bin")), r.ApplicationDir())
}

func TestFallsThroughStrategies(t *testing.T) {
	root := tempRoot(t)
	exe := filepath.Join(root, "bin", "app")
	writeFile(t, exe, "", 0o755)

	r := newResolver(t, reloc.Options{
		Strategies: []reloc.Strategy{
			failing("procfs"),
			fixed(filepath.Join(root, "missing", "app")),
			reloc.StrategyFunc("second", func() (string, error) { return exe, nil }),
		},
	})

	assert.Equal(t, "second", r.Strategy())
	assert.Equal(t, reloc.Path(filepath.Join(root, "bin")), r.ApplicationDir())
	assert.NoError(t, r.Err())
}

func TestUnresolved(t *testing.T) {
	r := newResolver(t, reloc.Options{
		Strategies: []reloc.Strategy{
			failing("procfs"),
			reloc.StrategyFunc("argv0", func() (string, error) {
				return "", errors.New("not found in PATH")
			}),
		},
	})

	assert.Equal(t, reloc.Invalid, r.ApplicationDir())
	assert.Equal(t, reloc.Invalid, r.ResourceDir())
	assert.Equal(t, reloc.Invalid, r.Executable())
	assert.Equal(t, "", r.Strategy())
	assert.Equal(t, "<unresolved>", r.ApplicationDir().String())

	err := r.Err()
	require.Error(t, err)
	assert.ErrorIs(t, err, reloc.ErrUnresolved)
	assert.ErrorIs(t, err, reloc.ErrUnavailable)
	assert.Contains(t, err.Error(), "procfs")
	assert.Contains(t, err.Error(), "not found in PATH")

	if diff := cmp.Diff(reloc.Layout{}, r.Layout()); diff != "" {
		t.Errorf("layout of unresolved executable (-want +got):\n%s", diff)
	}
}

func TestNoStrategies(t *testing.T) {
	r := newResolver(t, reloc.Options{Strategies: []reloc.Strategy{}})
	assert.False(t, r.ApplicationDir().Valid())
	assert.ErrorIs(t, r.Err(), reloc.ErrUnresolved)
}

func TestDefaultDir(t *testing.T) {
	root := tempRoot(t)
	def := filepath.Join(root, "usr", "local", "bin")

	r := newResolver(t, reloc.Options{
		DefaultDir:     def,
		ResourceOffset: "../share/app",
		Strategies:     []reloc.Strategy{failing("procfs")},
	})

	assert.NoError(t, r.Err())
	assert.Equal(t, reloc.StrategyDefault, r.Strategy())
	assert.Equal(t, reloc.Path(def), r.ApplicationDir())
	assert.Equal(t, reloc.Path(filepath.Join(root, "usr", "local", "share", "app")), r.ResourceDir())
	assert.Equal(t, reloc.Invalid, r.Executable())
}

func TestNewRejectsBadOptions(t *testing.T) {
	abs, err := filepath.Abs("share")
	require.NoError(t, err)

	_, err = reloc.New(reloc.Options{ResourceOffset: abs})
	assert.Error(t, err)

	_, err = reloc.New(reloc.Options{DefaultDir: "relative/bin"})
	assert.Error(t, err)

	_, err = reloc.New(reloc.Options{ResourceOffset: "../../../../../../../../.."})
	assert.Error(t, err)

	r, err := reloc.New(reloc.Options{ResourceOffset: "../../../../../../../../share"})
	require.NoError(t, err)
	assert.Equal(t, filepath.FromSlash("../../../../../../../../share"), r.ResourceOffset())
}

func TestOffsetAboveRoot(t *testing.T) {
	root := string(filepath.Separator)
	if vol := filepath.VolumeName(tempRoot(t)); vol != "" {
		root = vol + root
	}
	appDir := filepath.Join(root, "opt", "bin")

	r := newResolver(t, reloc.Options{
		DefaultDir:     appDir,
		ResourceOffset: "../../../share",
		Strategies:     []reloc.Strategy{failing("procfs")},
	})
	assert.Equal(t, reloc.Path(appDir), r.ApplicationDir())
	assert.Equal(t, reloc.Invalid, r.ResourceDir())
	assert.Equal(t, reloc.Invalid, r.Layout().Resource)

	// Climbing exactly to the root is fine.
	r = newResolver(t, reloc.Options{
		DefaultDir:     appDir,
		ResourceOffset: "../../share",
		Strategies:     []reloc.Strategy{failing("procfs")},
	})
	assert.Equal(t, reloc.Path(filepath.Join(root, "share")), r.ResourceDir())
}

func TestZeroValueResolver(t *testing.T) {
	var r reloc.Resolver

	require.NoError(t, r.Err())
	assert.Equal(t, reloc.ApplicationDir(), r.ApplicationDir())
	assert.Equal(t, reloc.ResourceDir(), r.ResourceDir())
	assert.Equal(t, reloc.Default().ResourceOffset(), r.ResourceOffset())
}

func TestBadBuildTimeConfiguration(t *testing.T) {
	defer func(offset, def string) {
		reloc.ResourceOffset, reloc.DefaultDir = offset, def
	}(reloc.ResourceOffset, reloc.DefaultDir)

	abs, err := filepath.Abs("share")
	require.NoError(t, err)
	reloc.ResourceOffset = abs
	reloc.DefaultDir = "relative/bin"

	_, err = reloc.New(reloc.Options{})
	assert.Error(t, err)

	// The zero value (as used by the package-level functions) degrades to a
	// flat layout and reports the problem instead of failing.
	var r reloc.Resolver
	assert.True(t, r.ApplicationDir().Valid())
	assert.Equal(t, ".", r.ResourceOffset())
	assert.Equal(t, r.ApplicationDir(), r.ResourceDir())

	err = r.Err()
	require.Error(t, err)
	assert.NotErrorIs(t, err, reloc.ErrUnresolved)
	assert.Contains(t, err.Error(), "resource offset")
	assert.Contains(t, err.Error(), "default directory")
}

func TestDefaultOffset(t *testing.T) {
	r := newResolver(t, reloc.Options{})
	assert.Equal(t, filepath.Clean(filepath.FromSlash(reloc.ResourceOffset)), r.ResourceOffset())
}

func TestLayout(t *testing.T) {
	root := tempRoot(t)
	exe := filepath.Join(root, "bin", "app")
	writeFile(t, exe, "", 0o755)

	r := newResolver(t, reloc.Options{
		ResourceOffset: "../share/app",
		Strategies:     []reloc.Strategy{fixed(exe)},
	})

	p := func(elem ...string) reloc.Path {
		return reloc.Path(filepath.Join(append([]string{root}, elem...)...))
	}
	want := reloc.Layout{
		Prefix:   p(),
		Bin:      p("bin"),
		Sbin:     p("sbin"),
		Data:     p("share"),
		Locale:   p("share", "locale"),
		Lib:      p("lib"),
		LibExec:  p("libexec"),
		Etc:      p("etc"),
		Resource: p("share", "app"),
	}
	if diff := cmp.Diff(want, r.Layout()); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}
}

func TestResolvesOnceUnderConcurrency(t *testing.T) {
	root := tempRoot(t)
	exe := filepath.Join(root, "bin", "app")
	writeFile(t, exe, "", 0o755)

	var calls atomic.Int32
	r := newResolver(t, reloc.Options{
		Strategies: []reloc.Strategy{
			reloc.StrategyFunc("counting", func() (string, error) {
				calls.Add(1)
				return exe, nil
			}),
		},
	})

	const n = 64
	results := make([]reloc.Path, n)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			if i%2 == 0 {
				results[i] = r.ApplicationDir()
			} else {
				results[i] = r.ResourceDir().Dir().Join("bin")
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, calls.Load())
	for _, got := range results {
		assert.Equal(t, reloc.Path(filepath.Join(root, "bin")), got)
	}
}

func TestIdempotent(t *testing.T) {
	first := reloc.ApplicationDir()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, reloc.ApplicationDir())
		assert.Equal(t, first.Join(reloc.Default().ResourceOffset()), reloc.ResourceDir())
	}
}

func TestLocatesTestBinary(t *testing.T) {
	exe, err := os.Executable()
	require.NoError(t, err)
	exe, err = filepath.EvalSymlinks(exe)
	require.NoError(t, err)

	require.NoError(t, reloc.Err())
	assert.Equal(t, reloc.Path(exe), reloc.Executable())
	assert.Equal(t, reloc.Path(filepath.Dir(exe)), reloc.ApplicationDir())
	assert.Equal(t, reloc.Path(filepath.Dir(exe)).Dir(), reloc.GetLayout().Prefix)
}

func TestLogsAttempts(t *testing.T) {
	root := tempRoot(t)
	exe := filepath.Join(root, "bin", "app")
	writeFile(t, exe, "", 0o755)

	core, logs := observer.New(zap.DebugLevel)
	r := newResolver(t, reloc.Options{
		Logger:     zap.New(core),
		Strategies: []reloc.Strategy{failing("procfs"), fixed(exe)},
	})
	r.ApplicationDir()

	assert.Equal(t, 1, logs.FilterMessage("strategy failed").Len())
	located := logs.FilterMessage("located executable").All()
	require.Len(t, located, 1)
	assert.Equal(t, "fixed", located[0].ContextMap()["strategy"])
}

// © 2015 Hugo Landau <hlandau@devever.net>  ISC License
