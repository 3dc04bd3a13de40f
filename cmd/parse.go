package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opdeflang/opdef/declparser"
	"github.com/opdeflang/opdef/lexer"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "dump parsed declarations and exit",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(c *cobra.Command, args []string) error {
	src, err := readSource(args[0])
	if err != nil {
		return err
	}

	ts := lexer.NewTokenStream(lexer.New(src))
	p := declparser.New(ts)

	failed := false
	for p.HasNext() {
		stmt, perr := p.Next()
		if perr != nil {
			redColor.Fprintf(c.ErrOrStderr(), "%s\n", perr.Error())
			failed = true
			continue
		}
		fmt.Println(formatStatement(stmt))
	}
	if failed {
		return fmt.Errorf("one or more declarations failed to parse")
	}
	return nil
}

func formatStatement(stmt *declparser.Statement) string {
	switch stmt.Kind {
	case declparser.IncludeStmt:
		return fmt.Sprintf("include %s", stmt.Filename.Lexeme)
	case declparser.CategoryStmt:
		return fmt.Sprintf("category %s", stmt.Name.Lexeme)
	case declparser.OperatorDefStmt:
		def := stmt.Def
		sig := ""
		for i, p := range def.Patterns {
			if i > 0 {
				sig += " "
			}
			sig += p.String()
		}
		return fmt.Sprintf("%s %d %s %s -- %s", def.Format, def.Priority, def.Name.Lexeme, sig, def.Body.String())
	}
	return "?"
}
