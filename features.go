// features.go - Build information for -version

package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"slices"

	lua "github.com/yuin/gopher-lua"
)

// Version is overridden at link time with -ldflags "-X main.Version=...".
var Version = "dev"

// compiledFeatures is filled by init() in the backend files selected by
// build tags.
var compiledFeatures []string

// writeVersion prints the version, the backends compiled in and the
// versions of the modules the binary was linked against.
func writeVersion(w io.Writer) {
	fmt.Fprintf(w, "PolyVM %s (%s %s/%s, %s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH, lua.LuaVersion)

	fmt.Fprintln(w, "Backends:")
	features := slices.Sorted(slices.Values(compiledFeatures))
	if len(features) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, f := range features {
		fmt.Fprintf(w, "  %s\n", f)
	}

	info, ok := debug.ReadBuildInfo()
	if !ok || len(info.Deps) == 0 {
		return
	}
	fmt.Fprintln(w, "Modules:")
	for _, dep := range info.Deps {
		fmt.Fprintf(w, "  %-40s %s\n", dep.Path, dep.Version)
	}
}
