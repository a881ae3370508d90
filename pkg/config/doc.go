// Package config loads typed configuration structs from environment variables.
//
// Structs describe their variables with caarlos0/env tags:
//
//	type Config struct {
//	    Cookie    cookie.Config
//	    Session   session.Config
//	    StoreKind string `env:"MEMBER_STORE" envDefault:"memory"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
//
// Load reads an optional .env file once per process, parses the struct and
// caches the result per type, so later calls for the same type return the
// same values without re-reading the environment. Parse bypasses the cache
// and accepts a variable prefix.
package config
