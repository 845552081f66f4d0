// Package config loads service configuration from YAML, .env files and the
// environment using viper and godotenv.
//
// Lookup order, lowest precedence first: config.yml, .env, process
// environment. Nested keys map to upper-snake env names (server.port is
// SERVER_PORT); extra names can be bound with WithEnvAliases.
package config
