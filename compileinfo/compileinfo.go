// Package compileinfo reports the program version and the VCS state the
// binary was built from.
package compileinfo

import (
	"fmt"
	"io"
	"runtime/debug"
)

const (
	Program = "smartchip_analyzer"
	Version = "1.0.2"
)

type CompileInfo struct {
	Program    string
	Version    string
	Package    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	out := fmt.Sprintf("%s version: %s", c.Program, c.Version)
	if c.GoVersion == "" {
		return out
	}

	out += fmt.Sprintf(" (%s built with %s", c.Package, c.GoVersion)
	if c.Commit != "" {
		out += fmt.Sprintf(" at commit %v at time %v", c.Commit, c.CommitTime)
	}
	if c.Modified {
		out += "; files in the repo were modified after that commit"
	}

	return out + ")"
}

func Get() CompileInfo {
	out := CompileInfo{
		Program: Program,
		Version: Version,
	}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Package = z.Path
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

// Print writes the compile info as one line.
func Print(w io.Writer) {
	fmt.Fprintf(w, "%s\n", Get())
}
