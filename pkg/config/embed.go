package config

import _ "embed"

// defaultConfig holds the built-in defaults, loaded before any user config.
//
//go:embed dotlink.toml
var defaultConfig []byte
