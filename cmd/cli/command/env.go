package command

import (
	"fmt"

	"github.com/joho/godotenv"
)

func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}
