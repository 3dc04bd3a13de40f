package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var helpCmd = &cobra.Command{
	Use:    "help",
	Short:  "show format-tag usage and exit",
	Hidden: true,
	RunE: func(c *cobra.Command, args []string) error {
		printFormatTagHelp(c)
		return nil
	},
}

// printFormatTagHelp supplements spec.md §6.2's bare usage line with a
// full format-tag reference, in the spirit of original_source/main.cpp's
// token table (royertiago/INE5426).
func printFormatTagHelp(c *cobra.Command) {
	out := c.OutOrStdout()
	fmt.Fprintln(out, "opdef - an interpreter for the user-defined-operator language")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  opdef [flags] <file>")
	fmt.Fprintln(out, "  opdef run|lex|parse|semantic <file>")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Flags:")
	fmt.Fprintln(out, "  -l, --lexer      dump tokens and exit")
	fmt.Fprintln(out, "  -p, --parser     dump parsed declarations and exit")
	fmt.Fprintln(out, "  -s, --semantic   dump resolved declarations and exit")
	fmt.Fprintln(out, "  -r, --run        run the program (default)")
	fmt.Fprintln(out, "  -h, --help       show this help")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Operator format tags (arity, associativity, operand-priority bound):")
	fmt.Fprintln(out, "  f    nullary")
	fmt.Fprintln(out, "  fx   prefix,  non-associative right operand (< priority)")
	fmt.Fprintln(out, "  fy   prefix,  associative right operand     (<= priority)")
	fmt.Fprintln(out, "  xf   postfix, non-associative left operand  (< priority)")
	fmt.Fprintln(out, "  yf   postfix, associative left operand      (<= priority)")
	fmt.Fprintln(out, "  xfx  binary,  non-associative both operands (< priority)")
	fmt.Fprintln(out, "  yfx  binary,  left-associative              (left <= priority, right < priority)")
	fmt.Fprintln(out, "  xfy  binary,  right-associative             (left < priority, right <= priority)")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Declarations: include IDENT | category IDENT | format PRIORITY sig_tok+ body")
}
