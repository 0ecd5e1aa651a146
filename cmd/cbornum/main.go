package main

import (
	"os"

	"github.com/rs/zerolog/log"

	"github.com/calebcase/cbornum/cmd/cbornum/command"
)

func main() {
	err := command.Root.Execute()
	if err != nil {
		log.Error().Err(err).Msg("cbornum failed")
		os.Exit(1)
	}
}
