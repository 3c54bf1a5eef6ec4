package main

import (
	"os"

	"github.com/rs/zerolog/log"
)

// Set by ldflags.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("codeninja failed")
		os.Exit(1)
	}
}
