// Command blogctl inspects category pages from the terminal: it prints the
// content API query for a route, fetches a page as text or JSON, and runs
// an interactive browser.
package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
