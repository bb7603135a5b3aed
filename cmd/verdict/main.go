// Command verdict evaluates loan requests against a household financial
// profile: remotely through the staged analysis pipeline, or locally through
// the offline estimator. It can also run the HTTP server exposing both.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
