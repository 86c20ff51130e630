package reloc

import "sync"

var (
	defaultResolver     *Resolver
	defaultResolverOnce sync.Once
)

// Default returns the process-wide Resolver used by the package-level
// functions. It is configured only by the build-time variables.
func Default() *Resolver {
	defaultResolverOnce.Do(func() {
		// A bad ResourceOffset or DefaultDir from the linker is reported by
		// Err rather than New.
		defaultResolver = &Resolver{}
	})
	return defaultResolver
}

// ApplicationDir returns the directory containing the running executable, or
// Invalid. See Resolver.ApplicationDir.
func ApplicationDir() Path {
	return Default().ApplicationDir()
}

// ResourceDir returns the resource directory of the running executable, or
// Invalid. See Resolver.ResourceDir.
func ResourceDir() Path {
	return Default().ResourceDir()
}

// Executable returns the path of the running executable, or Invalid.
func Executable() Path {
	return Default().Executable()
}

// Err returns the reason ApplicationDir is Invalid, or nil.
func Err() error {
	return Default().Err()
}

// GetLayout returns the installation layout around the running executable.
func GetLayout() Layout {
	return Default().Layout()
}
