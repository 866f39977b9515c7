// Package compileinfoprint stamps a command's stderr with the build that is
// running. Import it for its side effect.
package compileinfoprint

import "github.com/naobservatory/mgsreport/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
