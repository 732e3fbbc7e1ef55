// Command s3find is find(1) for S3-compatible object storage.
package main

import (
	"os"

	"github.com/3leaps/s3find/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
