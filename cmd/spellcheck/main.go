package main

import (
	"errors"
	"fmt"
	"os"

	"spellchecker/internal/cli"
)

func main() {
	command := cli.NewDefaultSpellCmd()

	err := command.Execute()
	if err != nil {
		if !errors.Is(err, cli.ErrMisspellingsFound) {
			fmt.Fprintf(os.Stderr, "spellcheck: Error: %s\n", err)
		}
		os.Exit(1)
	}
}
