// Command querygen prints SQL statements for annotated Go structs.
package main

import (
	"os"

	"github.com/glushkov/querygen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
