// Package config loads runtime configuration for the giftbox CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file and GIFTBOX_* environment variables.
//  3. Optional JSON or YAML file selected via -c or --config.
//  4. Command-line flags bound by BindFlags, which override earlier values.
//
// # File schema
//
// Durations can be strings like "600ms" or integer nanoseconds:
//
//	mode: hosted
//	server_endpoint_addr: gifts.example.com:50051
//	api_key: eyJhbGciOi...
//	entrance_delay: 400ms
package config
