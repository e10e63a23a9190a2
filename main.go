// failbell runs a command in a pseudo-terminal and plays an alert sound
// when it fails.
package main

import (
	"os"

	"github.com/lazyvibe/failbell/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
