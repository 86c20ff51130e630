// Command slpackage reports its own location and prints the resource file
// installed beside it.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/hlandau/reloc.v1"
	"gopkg.in/hlandau/reloc.v1/resource"
)

func run(stdout, stderr io.Writer, r *reloc.Resolver) int {
	appDir := r.ApplicationDir()
	fmt.Fprintf(stdout, "[application in]: %s\n", appDir)
	if !appDir.Valid() {
		fmt.Fprintf(stderr, "[error]: %v\n", r.Err())
		return 1
	}

	content, err := resource.ReadFile(r.ResourceDir(), resource.Name)
	if err != nil {
		// A missing resource is reported but is not fatal.
		var ae *resource.AccessError
		if errors.As(err, &ae) {
			fmt.Fprintf(stderr, "[error]: could not open resource \"%s\"\n", ae.Path)
		} else {
			fmt.Fprintf(stderr, "[error]: %v\n", err)
		}
		return 0
	}

	fmt.Fprintf(stdout, "[resource]: '%s'\n", content)
	return 0
}

func main() {
	os.Exit(run(os.Stdout, os.Stderr, reloc.Default()))
}
