//go:build windows

package reloc

import (
	"os"
	"path/filepath"
	"strings"
)

// Windows has no execute bit. A file is executable if its extension appears in
// PATHEXT, and argv[0] usually omits that extension, so each one is tried.
func executableCandidate(p string) string {
	exts := pathExts()

	if ext := filepath.Ext(p); ext != "" && hasExt(exts, ext) && isRegular(p) {
		return p
	}

	for _, ext := range exts {
		if isRegular(p + ext) {
			return p + ext
		}
	}

	return ""
}

func pathExts() []string {
	v := os.Getenv("PATHEXT")
	if v == "" {
		return []string{".com", ".exe", ".bat", ".cmd"}
	}

	var exts []string
	for _, e := range strings.Split(strings.ToLower(v), ";") {
		if e == "" {
			continue
		}
		if e[0] != '.' {
			e = "." + e
		}
		exts = append(exts, e)
	}

	return exts
}

func hasExt(exts []string, ext string) bool {
	ext = strings.ToLower(ext)
	for _, e := range exts {
		if e == ext {
			return true
		}
	}

	return false
}

func isRegular(p string) bool {
	fi, err := os.Stat(p)
	return err == nil && fi.Mode().IsRegular()
}
