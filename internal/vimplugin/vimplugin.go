// Package vimplugin installs the Vim/Neovim filetype plugin for commit
// list files.
package vimplugin

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the plugin's name under ftplugin/.
const FileName = "gitbackportcommits.vim"

//go:embed ftplugin/gitbackportcommits.vim
var content []byte

// Content returns the embedded plugin.
func Content() []byte {
	return content
}

// Install writes the plugin to dir/ftplugin, creating directories as
// needed. An existing file is left alone unless force is set; installed
// reports whether anything was written.
func Install(dir string, force bool) (path string, installed bool, err error) {
	path = filepath.Join(dir, "ftplugin", FileName)

	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, false, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return path, false, fmt.Errorf("checking %s: %w", path, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return path, false, fmt.Errorf("creating plugin directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return path, false, fmt.Errorf("writing plugin: %w", err)
	}
	return path, true, nil
}

// DefaultDirs returns the Neovim config directory ($XDG_CONFIG_HOME/nvim,
// else ~/.config/nvim) followed by ~/.vim.
func DefaultDirs() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}
	nvim := filepath.Join(home, ".config", "nvim")
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		nvim = filepath.Join(xdg, "nvim")
	}
	return []string{nvim, filepath.Join(home, ".vim")}, nil
}
