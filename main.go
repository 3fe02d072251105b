// Skygaze browses NASA's open imagery APIs from the terminal, keeping
// the last result of each feature cached locally.
package main

import (
	"os"

	_ "golang.org/x/crypto/x509roots/fallback"
	_ "modernc.org/sqlite"

	"github.com/skygaze/skygaze/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
