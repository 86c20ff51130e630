//go:build !unix && !windows

package reloc

import "os"

func executableCandidate(p string) string {
	fi, err := os.Stat(p)
	if err != nil || !fi.Mode().IsRegular() || fi.Mode().Perm()&0111 == 0 {
		return ""
	}

	return p
}
