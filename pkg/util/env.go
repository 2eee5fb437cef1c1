package util

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// EnvFallbackFiles returns the .env files consulted before configuration is parsed:
// ./.env first, then $HOME/.local/bin/.env.
func EnvFallbackFiles() []string {
	paths := []string{".env"}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".local", "bin", ".env"))
	}
	return paths
}

// LoadEnvFallbacks loads every existing file in paths without overriding variables
// that are already set, so the process environment always wins. The first file to
// define a variable wins over later ones. It returns the files that were loaded.
func LoadEnvFallbacks(paths ...string) ([]string, error) {
	var loaded []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		// godotenv.Load does not override variables that are already set.
		if err := godotenv.Load(p); err != nil {
			return loaded, err
		}
		loaded = append(loaded, p)
	}
	return loaded, nil
}
