package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opdeflang/opdef/lexer"
)

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "dump tokens and exit",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func runLex(c *cobra.Command, args []string) error {
	src, err := readSource(args[0])
	if err != nil {
		return err
	}

	ts := lexer.NewTokenStream(lexer.New(src))
	for _, tok := range ts.ConsumeAll() {
		fmt.Printf("%-12s %-10q %d:%d\n", tok.ID, tok.Lexeme, tok.Line, tok.Column)
	}
	return nil
}
