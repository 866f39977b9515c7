package compileinfo

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
)

// BuildStamp identifies the binary that produced a report, so tables can be
// traced back to the code that computed them.
type BuildStamp struct {
	Binary     string
	Version    string
	GoVersion  string
	Revision   string
	RevisionAt string
	Dirty      bool
}

func (b BuildStamp) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s (%s)", b.Binary, b.version(), b.GoVersion)
	if b.Revision != "" {
		fmt.Fprintf(&sb, " revision %s", b.Revision)
		if b.RevisionAt != "" {
			fmt.Fprintf(&sb, " from %s", b.RevisionAt)
		}
	}
	if b.Dirty {
		sb.WriteString(" with uncommitted changes")
	}

	return sb.String()
}

func (b BuildStamp) version() string {
	if b.Version == "" {
		return "(devel)"
	}

	return b.Version
}

// FromBuildInfo extracts a BuildStamp from Go's embedded build metadata.
func FromBuildInfo(info *debug.BuildInfo) BuildStamp {
	out := BuildStamp{
		Binary:    info.Path,
		Version:   info.Main.Version,
		GoVersion: info.GoVersion,
	}

	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Revision = s.Value
		case "vcs.time":
			out.RevisionAt = s.Value
		case "vcs.modified":
			out.Dirty = s.Value == "true"
		}
	}

	return out
}

// Current returns the stamp of the running binary. The zero value is returned
// when the binary carries no build metadata.
func Current() BuildStamp {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return BuildStamp{}
	}

	return FromBuildInfo(info)
}

func Fprint(w io.Writer) {
	fmt.Fprintln(w, Current())
}

func PrintToStdErr() {
	Fprint(os.Stderr)
}
