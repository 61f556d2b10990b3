// Package config loads FoodLens client settings from a TOML file.
//
// # Resolution
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/foodlens/config.toml
//  3. If the file doesn't exist, use Default()
//  4. Empty or whitespace-only fields keep their defaults
//
// Command-line flags and FOODLENS_* environment variables are layered on
// top of the loaded Config by the command package.
//
// # Fields
//
//	api_url = "https://food-lens-api.onrender.com"  # base URL; /analyze-food is appended
//	request_timeout = "30s"                         # empty: no client-side timeout
//	log_file = "~/.local/state/foodlens/foodlens.log"
//	log_level = "info"                              # debug, info, warn, error
//	prefs_file = "~/.config/foodlens/prefs.toml"    # remembers theme and last folder
//	theme = "Nightfox"                              # Nightfox, Kanagawa, Slate
//
// Nothing is written to disk unless log_file or prefs_file is set.
//
// Paths starting with ~ are expanded against the user's home directory.
// Parse errors and unreadable files are returned wrapped; a missing file is
// not an error.
package config
