// Command genai is a command-line client for the GenAI Bot text generation
// service. It supports single and batch generation, usage analytics, and
// configuration management.
package main

import (
	"fmt"
	"os"

	"github.com/genai-bot/genai-cli/internal/format"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, format.Error(err.Error()))
		os.Exit(1)
	}
}
