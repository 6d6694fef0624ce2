package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inge4pres/goyaml"
	"github.com/inge4pres/goyaml/internal/diag"
)

var (
	fmtIndent        uint
	fmtCompactSeq    bool
	fmtCompactMap    bool
	fmtFlowThreshold uint
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Parse a YAML document and re-serialize it",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFmt,
}

func init() {
	def := goyaml.DefaultOptions()
	fmtCmd.Flags().UintVar(&fmtIndent, "indent", def.IndentSize, "indentation width")
	fmtCmd.Flags().BoolVar(&fmtCompactSeq, "compact-seq", def.CompactSequences, "emit scalar-only sequences in flow style when short")
	fmtCmd.Flags().BoolVar(&fmtCompactMap, "compact-map", def.CompactMappings, "emit small scalar-only mappings in flow style when short")
	fmtCmd.Flags().UintVar(&fmtFlowThreshold, "flow-threshold", def.FlowThreshold, "max rendered width of a compacted flow collection")
}

func runFmt(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	diag.Tracef("fmt: reading %q", path)

	input, err := readInput(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	parsed, err := goyaml.ParseFromSlice(input)
	if err != nil {
		return describeErr(err)
	}
	defer parsed.Close()

	opts := goyaml.Options{
		IndentSize:       fmtIndent,
		CompactSequences: fmtCompactSeq,
		CompactMappings:  fmtCompactMap,
		FlowThreshold:    fmtFlowThreshold,
	}
	diag.Tracef("fmt: serializing with indent=%d compact-seq=%v compact-map=%v", opts.IndentSize, opts.CompactSequences, opts.CompactMappings)
	return goyaml.StringifyWithOptions(parsed.Root, os.Stdout, opts)
}
