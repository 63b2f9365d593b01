// Command alertguide shows the TradingView alert setup guide in the terminal
// and exports it as Markdown, HTML or JSON.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"

	"github.com/vanderheijden86/alertguide/pkg/debug"
	_ "github.com/vanderheijden86/alertguide/pkg/ttyguard"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: .env: %v\n", err)
	}

	err := newRootCmd().Execute()
	_ = debug.Close()
	if err != nil {
		if !errors.Is(err, errMissingImages) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
