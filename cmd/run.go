package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/opdeflang/opdef/driver"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "run the program (default)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRun,
}

func runRun(c *cobra.Command, args []string) error {
	path := args[0]
	src, err := readSource(path)
	if err != nil {
		return err
	}

	session := driver.NewSession(dirOf(path))
	result, errs := session.Run(baseName(path), src)
	if len(errs) > 0 {
		for _, e := range errs {
			redColor.Fprintf(c.ErrOrStderr(), "%s\n", e.Error())
		}
		return fmt.Errorf("run failed")
	}
	yellowColor.Fprintf(c.OutOrStdout(), "%s\n", result.String())
	return nil
}
