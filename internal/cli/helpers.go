package cli

import (
	"fmt"
	"os"
)

func ensureOutputDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	if path == "/" {
		return fmt.Errorf("refusing to use filesystem root as output directory")
	}
	return os.MkdirAll(path, 0o755)
}
