// Command vitalang reads a single source file, runs it through the
// scanner, first pass, and parser, and prints the resulting AST — the
// same read/tokenize/parse/print driver shape as the reference
// implementation's main().
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vitras21/VitaLang/parser"
	"github.com/vitras21/VitaLang/vitalang"
)

func main() {
	var (
		noColor    bool
		dumpTokens bool
	)

	rootCmd := &cobra.Command{
		Use:           "vitalang <file>",
		Short:         "Scan and parse a VitaLang source file",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			useColor := ShouldUseColor(noColor)

			src, err := os.ReadFile(args[0])
			if err != nil {
				return fail(useColor, fmt.Sprintf("failed to read %s: %v", args[0], err))
			}

			result, err := vitalang.Parse(string(src))
			if dumpTokens {
				for _, tok := range result.Tokens {
					fmt.Println(tok.String())
				}
			}
			if err != nil {
				return fail(useColor, err.Error())
			}

			fmt.Println("AST:", parser.Dump(result.AST))
			return nil
		},
	}

	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored diagnostics")
	rootCmd.Flags().BoolVar(&dumpTokens, "tokens", false, "dump the scanner's token stream before parsing")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func fail(useColor bool, message string) error {
	fmt.Fprintln(os.Stderr, Colorize(message, ColorRed, useColor))
	return fmt.Errorf("%s", message)
}
