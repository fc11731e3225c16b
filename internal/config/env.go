package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/joho/godotenv"
)

// envFiles are read in order; a variable set by an earlier file wins.
var envFiles = []string{".env.local", ".env"}

// loadEnvFiles loads environment variables from the env files in dir.
// Missing files are skipped. Variables already present in the process
// environment are not overwritten.
func loadEnvFiles(dir string) error {
	for _, name := range envFiles {
		envPath := filepath.Join(dir, name)
		info, err := os.Stat(envPath)
		if err != nil || info.IsDir() {
			continue
		}
		if err := godotenv.Load(envPath); err != nil {
			return fmt.Errorf("load %s: %w", envPath, err)
		}
	}
	return nil
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv replaces ${VAR} references with the variable's value. A bare $
// is left as written; date formats in option values may contain one.
func expandEnv(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		return os.Getenv(ref[2 : len(ref)-1])
	})
}
