package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"invite-app-go/pkg/logger"
)

const dotenvFilename = ".env"

// loadDotEnv looks for a .env file in the working directory or any parent and
// loads it. Variables already present in the environment are left untouched.
func loadDotEnv(log logger.Logger) error {
	path, err := findDotEnv(dotenvFilename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug("dotenv: no file found, using process environment")
			return nil
		}
		return err
	}

	if err := godotenv.Load(path); err != nil {
		return err
	}

	log.Info("dotenv: loaded", "path", path)
	return nil
}

func findDotEnv(filename string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}
