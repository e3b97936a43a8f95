// Package config provides environment-based process configuration.
//
// Loads from .env file (godotenv), maps to Config struct via go-simpler/env
// struct tags. Secret values themselves are NOT process configuration; the
// secrets package loads those through its own backends.
package config
