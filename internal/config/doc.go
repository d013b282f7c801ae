// Package config loads and merges git-bp configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (GITBP_BACKEND, GITBP_GIT, GITBP_LOG, GITBP_COLOR)
//  3. Config file ($XDG_CONFIG_HOME/git-bp/config.toml)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config], [Save] to write a config file,
// and [SetField] to update a single key.
package config
