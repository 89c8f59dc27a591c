package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/arga1212/smartnote/cmd"
)

func main() {
	// Optional .env for API keys and server settings.
	_ = godotenv.Load()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
