//go:build unix

package reloc

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sys/unix"
)

// ProcLink reads a procfs symlink which the kernel points at the image of the
// current process, such as /proc/self/exe on Linux.
type ProcLink struct {
	Path string
}

func (s ProcLink) Name() string { return "proc:" + s.Path }

func (s ProcLink) Locate() (string, error) {
	target, err := readlink(s.Path)
	if err != nil {
		if errors.Is(err, unix.ENOENT) || errors.Is(err, unix.ENOTDIR) {
			// procfs not mounted.
			return "", fmt.Errorf("%w: %s: %v", ErrUnavailable, s.Path, err)
		}
		return "", fmt.Errorf("readlink %s: %w", s.Path, err)
	}

	return trimDeleted(target), nil
}

// Linux appends this to the link target once the executable has been unlinked,
// e.g. because a package upgrade replaced it while it was running.
const deletedSuffix = " (deleted)"

func trimDeleted(p string) string {
	return strings.TrimSuffix(p, deletedSuffix)
}

// readlink(2) does not report the length of the target, so grow the buffer
// until the result fits with room to spare.
func readlink(name string) (string, error) {
	for size := 256; ; size *= 2 {
		buf := make([]byte, size)
		n, err := unix.Readlink(name, buf)
		if err != nil {
			return "", err
		}

		if n < size {
			return string(buf[:n]), nil
		}
	}
}
