// Package config loads and validates reelsync configuration.
//
// Configuration lives in a TOML file, resolved from an explicit --config
// path, then ~/.config/reelsync/config.toml, then a project-local
// reelsync.toml. Missing files are not an error; defaults apply and the
// caller is told whether a file was found.
package config
