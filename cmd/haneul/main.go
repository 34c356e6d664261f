// Haneul estimates personal colour from a portrait.
//
// It classifies skin undertone, depth and brightness from cheek and neck
// samples, guesses a coarse face shape, and recommends palettes, makeup and
// outfit colours. See "haneul --help".
package main

import (
	"os"

	"github.com/haneulpalette/haneul/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
