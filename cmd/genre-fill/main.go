// Command genre-fill sets the genre and artist tags of MP3 files.
package main

import (
	"os"

	"github.com/binaryphile/genre-fill/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
