package reloc

import (
	"fmt"
	"strings"

	"github.com/prometheus/procfs"
)

// ProcMaps scans the memory map of a process for the first executable mapping
// backed by a file. For a normally started program this is the text segment
// of the main executable. It is a fallback for when the exe link cannot be
// read, which happens under some hardened kernels.
type ProcMaps struct {
	Mount string // procfs mount point, usually /proc
	PID   int    // 0 means the current process
}

func (s ProcMaps) Name() string { return "maps:" + s.Mount }

func (s ProcMaps) Locate() (string, error) {
	fs, err := procfs.NewFS(s.Mount)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var proc procfs.Proc
	if s.PID == 0 {
		proc, err = fs.Self()
	} else {
		proc, err = fs.Proc(s.PID)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	maps, err := proc.ProcMaps()
	if err != nil {
		return "", fmt.Errorf("reading maps under %s: %w", s.Mount, err)
	}

	for _, m := range maps {
		if p, ok := executableMapping(m); ok {
			return p, nil
		}
	}

	return "", fmt.Errorf("no executable file mapping under %s", s.Mount)
}

// Anonymous mappings have inode 0 and pseudo-files such as [vdso] have no
// absolute path.
func executableMapping(m *procfs.ProcMap) (string, bool) {
	if m.Perms == nil || !m.Perms.Execute || m.Inode == 0 {
		return "", false
	}

	if !strings.HasPrefix(m.Pathname, "/") {
		return "", false
	}

	return trimDeleted(m.Pathname), true
}
