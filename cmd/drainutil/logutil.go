package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/pretty"
	"golang.org/x/term"
)

// dumpJSON prints data to stderr for debugging, with colors when stderr is a
// terminal.
func dumpJSON(data any) error {
	b, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return err
	}

	if term.IsTerminal(int(os.Stderr.Fd())) {
		b = pretty.Color(b, pretty.TerminalStyle)
	}

	fmt.Fprintln(os.Stderr, string(b))

	return nil
}
