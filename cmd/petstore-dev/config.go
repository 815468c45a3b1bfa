package main

import "github.com/adampresley/configinator"

// Config holds the dev backend settings, read from flags, env and defaults.
type Config struct {
	Host     string `flag:"host" env:"PETSTORE_HOST" default:"localhost:8080" description:"The address and port to bind the HTTP server to"`
	BasePath string `flag:"basepath" env:"PETSTORE_BASE_PATH" default:"/mingoy" description:"Path prefix for the pet endpoints"`
	Seed     bool   `flag:"seed" env:"PETSTORE_SEED" default:"false" description:"Start with a few sample pets"`
	LogLevel string `flag:"loglevel" env:"LOG_LEVEL" default:"info" description:"The log level to use. Valid values are 'debug', 'info', 'warn', and 'error'"`
}

func loadConfig() Config {
	config := Config{}
	configinator.Behold(&config)
	return config
}
