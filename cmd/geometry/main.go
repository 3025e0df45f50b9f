// Command geometry evaluates, plots and meshes scenes of trimmed curves and
// surfaces described in TOML.
package main

import (
	"fmt"
	"os"

	"github.com/soypat/geometry/cmd/geometry/cmd"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
