package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the application version, overridable at build time:
//
//	go build -ldflags "-X github.com/agbru/convplan/internal/app.Version=v1.2.3"
var Version = "dev"

// HasVersionFlag reports whether the arguments request the version banner.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-version" || arg == "--version" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "convplan %s (%s)\n", Version, runtime.Version())
}
