package app

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

const Name = "termfolio"

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", Name), nil
}

func LogDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", Name), nil
}

func DefaultDownloadDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Downloads"), nil
}

// ExpandPath resolves a leading ~ against the home directory.
func ExpandPath(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	return homedir.Expand(p)
}
