package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/cliente-api/cmd/clientectl/cmds"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := cmds.NewRootCommand().Execute(); err != nil {
		log.Fatal().Err(err).Msg("clientectl failed")
	}
}
