// roomshare-e2e is the suite's command-line entry point.
//
//	roomshare-e2e serve              # run the fixture app for manual poking
//	roomshare-e2e smoke              # fixture + headless Chrome + mock harness
//
// serve runs the Roomshare fixture server so the search page, continuation
// action, and auth endpoints can be explored by hand. smoke runs the whole
// stack once (fixture, browser, interception session) and exits non-zero
// if the mocked pagination flow misbehaves.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:           "roomshare-e2e",
		Short:         "Roomshare e2e fixture server and smoke runner",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newSmokeCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
