package main

import (
	"os"

	"github.com/careerup/careerup/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
