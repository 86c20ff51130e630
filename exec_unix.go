//go:build unix

package reloc

import (
	"os"

	"golang.org/x/sys/unix"
)

// executableCandidate returns p if it names a regular file the process may
// execute, and "" otherwise.
func executableCandidate(p string) string {
	fi, err := os.Stat(p)
	if err != nil || !fi.Mode().IsRegular() {
		return ""
	}

	if unix.Access(p, unix.X_OK) != nil {
		return ""
	}

	return p
}
