// main is the entry point for the repopulse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/repopulse/repopulse/cmd"
)

func main() {
	// Load .env if present so tokens and connection strings stay out of flags.
	_ = godotenv.Load()

	err := cmd.Execute()
	if cerr := cmd.CloseHistory(); cerr != nil {
		fmt.Fprintf(os.Stderr, "Warning failed to close score history: %v\n", cerr)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(2)
	}
}
