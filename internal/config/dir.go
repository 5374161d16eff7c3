// Package config locates and loads conv-cmt configuration.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Name is the directory and file stem used for configuration.
const Name = "conv-cmt"

// Dir returns the global configuration directory.
//
// Resolution:
//   - $CONV_CMT_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/conv-cmt if set, on any platform
//   - %AppData%/conv-cmt on Windows
//   - ~/.config/conv-cmt elsewhere
func Dir() string {
	if dir := os.Getenv("CONV_CMT_CONFIG_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, Name)
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, Name)
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", Name)
}

// GlobalPaths lists the global config files in lookup order.
func GlobalPaths() []string {
	dir := Dir()
	if dir == "" {
		return nil
	}
	return []string{
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.yml"),
		filepath.Join(dir, "config.toml"),
	}
}

// LocalPaths lists the repository config files under root in lookup order.
func LocalPaths(root string) []string {
	if root == "" {
		return nil
	}
	return []string{
		filepath.Join(root, ".conv-cmt.yaml"),
		filepath.Join(root, ".conv-cmt.yml"),
		filepath.Join(root, ".conv-cmt.toml"),
	}
}

// InitPath returns the file `conv-cmt init` writes: the repository file when
// local is set, the global file otherwise.
func InitPath(root string, local, useTOML bool) string {
	ext := ".yaml"
	if useTOML {
		ext = ".toml"
	}
	if local {
		return filepath.Join(root, ".conv-cmt"+ext)
	}
	return filepath.Join(Dir(), "config"+ext)
}
