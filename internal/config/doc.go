// Package config loads petgallery's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/petgallery/config.toml
//  3. If the file doesn't exist, use the defaults
//  4. Empty or non-positive values in an existing file keep their defaults
//
// Command-line flags are applied on top of the loaded Config by the caller.
//
// # TOML Format
//
//	api_url = "http://localhost:8080/mingoy"
//	log_file = "~/.local/share/petgallery/petgallery.log"
//	log_level = "info"
//	notification_seconds = 5
//	request_timeout_seconds = 0
//	reconcile_on_failure = false
//	max_image_workers = 4
//	show_images = true
//
// Every field is optional. request_timeout_seconds of zero leaves requests
// bounded only by the transport. reconcile_on_failure reloads the full pet
// list after a failed add, edit or delete.
//
// # Path Expansion
//
// Tilde paths are expanded to the home directory and relative paths are made
// absolute, both for the config location and for log_file.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files and TOML
// parse errors. A missing file is not an error.
package config
