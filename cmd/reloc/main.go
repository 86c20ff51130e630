// Command reloc prints where it is running from, as determined by package
// reloc, and can read files from its resource directory.
package main

import (
	"fmt"
	"os"
)

func main() {
	err := newCLI(defaultResolver).Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
