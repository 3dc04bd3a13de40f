package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opdeflang/opdef/body"
	"github.com/opdeflang/opdef/declparser"
	"github.com/opdeflang/opdef/driver"
)

var semanticCmd = &cobra.Command{
	Use:   "semantic <file>",
	Short: "dump resolved declarations and exit",
	Args:  cobra.ExactArgs(1),
	RunE:  runSemantic,
}

func runSemantic(c *cobra.Command, args []string) error {
	path := args[0]
	src, err := readSource(path)
	if err != nil {
		return err
	}

	d := driver.New(dirOf(path))
	d.OnCategory = func(name string, value int) {
		// name=value printing, per original_source/ast.cpp's category dump.
		fmt.Printf("category %s=%d\n", name, value)
	}
	d.OnOperatorDef = func(def *declparser.OperatorDef, resolved *body.Body) {
		fmt.Printf("%s %d %s -- %s\n", def.Format, def.Priority, def.Name.Lexeme, resolved.String())
	}

	if errs := d.Load(baseName(path), src); len(errs) > 0 {
		for _, e := range errs {
			redColor.Fprintf(c.ErrOrStderr(), "%s\n", e.Error())
		}
		return fmt.Errorf("one or more declarations failed semantic resolution")
	}
	return nil
}
