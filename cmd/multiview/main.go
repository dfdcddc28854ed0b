package main

import (
	"os"

	json_storage "github.com/drakos74/multiview/internal/storage/file/json"
	flags "github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		os.Exit(1)
	}
	if opts.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := run(opts, os.Stdout, json_storage.BlobShard(tableName, opts.Out)); err != nil {
		log.Fatal().Err(err).Msg("multi-view clustering failed")
	}
}
