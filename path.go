package reloc

import (
	"path/filepath"
)

// A Path is an absolute, cleaned filesystem path produced by a Resolver.
//
// The zero value is Invalid, which is what every accessor returns when the
// location of the executable could not be determined. It is never the current
// directory; callers must check Valid before using a Path.
type Path string

// Invalid is the Path returned when resolution failed.
const Invalid Path = ""

const invalidString = "<unresolved>"

// Valid reports whether p is a usable absolute path.
func (p Path) Valid() bool {
	return p != Invalid && filepath.IsAbs(string(p))
}

// Join appends path elements to p and cleans the result. Joining to an Invalid
// path yields Invalid.
func (p Path) Join(elem ...string) Path {
	if !p.Valid() {
		return Invalid
	}

	return Path(filepath.Join(append([]string{string(p)}, elem...)...))
}

// Dir returns the parent directory of p, or Invalid.
func (p Path) Dir() Path {
	if !p.Valid() {
		return Invalid
	}

	return Path(filepath.Dir(string(p)))
}

// String returns p as a string. Invalid is rendered as "<unresolved>" so that
// printing it can never be mistaken for a relative path.
func (p Path) String() string {
	if !p.Valid() {
		return invalidString
	}

	return string(p)
}

// © 2015 Hugo Landau <hlandau@devever.net>  ISC License
