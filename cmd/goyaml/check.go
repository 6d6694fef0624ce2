package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inge4pres/goyaml"
	"github.com/inge4pres/goyaml/internal/diag"
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Parse a YAML document and report whether it is well-formed",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	diag.Tracef("check: reading %q", path)

	input, err := readInput(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	parsed, err := goyaml.ParseFromSlice(input)
	if err != nil {
		return describeErr(err)
	}
	parsed.Close()

	fmt.Fprintln(os.Stdout, "ok")
	return nil
}

// describeErr formats a *goyaml.SyntaxError with its source position,
// and falls back to the bare error for anything else (I/O failures).
func describeErr(err error) error {
	var se *goyaml.SyntaxError
	if errors.As(err, &se) {
		return fmt.Errorf("%s: %s (%s)", se.Mark, se.Code, se.Message)
	}
	return err
}
