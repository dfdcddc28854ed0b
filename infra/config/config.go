package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/rs/zerolog/log"
)

// Path is the directory of the default config files.
var Path = "infra/config"

// Load loads the json config file into v.
func Load(file string, v interface{}) error {
	b, err := ioutil.ReadFile(file)
	if err != nil {
		return fmt.Errorf("could not load config '%s': %w", file, err)
	}

	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("could not unmarshal config '%s': %w", file, err)
	}

	log.Info().Str("file", file).Msg("loaded config")
	return nil
}

// File returns the default config file for the given key.
func File(key string) string {
	return fmt.Sprintf("%s/%s.json", Path, key)
}

// Exists reports whether a default config file is present for the given key.
func Exists(key string) bool {
	_, err := os.Stat(File(key))
	return err == nil
}

// MustLoad loads the default config for the given key
func MustLoad(key string, v interface{}) {
	if err := Load(File(key), v); err != nil {
		panic(err.Error())
	}
}
