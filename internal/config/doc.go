// Package config loads, normalizes, and validates talkmatch configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the TALKMATCH_DATABASE and
// TALKMATCH_OVERRIDES environment fallbacks. The Config type centralizes the
// knobs the reconciliation driver and CLI need.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
