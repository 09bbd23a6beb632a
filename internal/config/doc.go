// Package config loads, normalizes, and validates pgnlens configuration.
//
// Configuration lives in a TOML file (default ~/.config/pgnlens/config.toml,
// falling back to ./pgnlens.toml) decoded on top of Default(). Loading expands
// "~" in every path, cleans up the scan extension list, and picks up the
// player username from PGNLENS_USERNAME when the file leaves it empty.
//
// CreateSample writes the embedded sample_config.toml so users can start from
// a documented file.
package config
