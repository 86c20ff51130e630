package reloc

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// ModuleFileName asks the Windows loader for the file of the main module.
type ModuleFileName struct{}

func (ModuleFileName) Name() string { return "module" }

// Long path names are capped at 32767 UTF-16 units.
const maxLongPath = 32768

func (ModuleFileName) Locate() (string, error) {
	buf := make([]uint16, windows.MAX_PATH)
	for {
		n, err := windows.GetModuleFileName(0, &buf[0], uint32(len(buf)))
		if err != nil && err != windows.ERROR_INSUFFICIENT_BUFFER {
			return "", fmt.Errorf("GetModuleFileName: %w", err)
		}

		// A truncated result fills the whole buffer.
		if n < uint32(len(buf)) {
			return windows.UTF16ToString(buf[:n]), nil
		}

		if len(buf) >= maxLongPath {
			return "", fmt.Errorf("GetModuleFileName: path exceeds %d characters", maxLongPath)
		}

		buf = make([]uint16, 2*len(buf))
	}
}
