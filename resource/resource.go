// Package resource opens files shipped in an application's resource directory.
package resource

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/hlandau/reloc.v1"
)

// Name of the resource file read by the demo programs.
const Name = "resource.txt"

// An AccessError reports that a resource could not be located or read. It does
// not mean the application directory is wrong; the resource may simply be
// missing from the installation.
type AccessError struct {
	Path string // Path that was tried, or the bare name if no path could be formed.
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("could not open resource \"%s\": %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

var errInvalidName = errors.New("invalid resource name")

// Path returns the path of the named resource within dir. The name is
// slash-separated and must stay inside dir; reserved names such as NUL on
// Windows are rejected too.
func Path(dir reloc.Path, name string) (string, error) {
	if !dir.Valid() {
		return "", &AccessError{Path: name, Err: reloc.ErrUnresolved}
	}

	rel := filepath.FromSlash(name)
	if !filepath.IsLocal(rel) {
		return "", &AccessError{Path: name, Err: errInvalidName}
	}

	return string(dir.Join(rel)), nil
}

// Open opens the named resource within dir for reading.
func Open(dir reloc.Path, name string) (*os.File, error) {
	p, err := Path(dir, name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, &AccessError{Path: p, Err: err}
	}

	return f, nil
}

// ReadFile returns the entire contents of the named resource within dir.
func ReadFile(dir reloc.Path, name string) ([]byte, error) {
	p, err := Path(dir, name)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(p)
	if err != nil {
		return nil, &AccessError{Path: p, Err: err}
	}

	return b, nil
}
