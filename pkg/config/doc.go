// Package config loads configuration structs from environment variables.
//
// Struct fields are mapped with `env` tags as understood by
// github.com/caarlos0/env, including envDefault, envSeparator and the
// required option. Dotenv files are read with github.com/joho/godotenv
// first; real environment variables always take precedence over them.
//
//	var cfg signup.Config
//	config.MustLoad(&cfg, config.WithEnvFiles(".env.local"))
package config
