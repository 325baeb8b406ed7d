package dotenv

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoadDotEnvs loads the nearest .env file, walking up from the working
// directory so binaries under cmd/ and tests in nested packages all pick
// up the same repo-root file. Missing .env is not an error, deployed
// environments inject real environment variables instead.
func LoadDotEnvs() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	for i := 0; i < 6; i++ {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			return godotenv.Load(path)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil
}
