package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lastnpe/eeaconf/pkg/archive"
	"github.com/lastnpe/eeaconf/pkg/errors"
)

// readCommand creates the read command.
func (c *CLI) readCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "read <location> <entry>",
		Short: "Print a text entry of a directory or archive",
		Long: `Read prints the named entry the way the configurator sees it. The location
is either a directory or a zip/jar archive.`,
		Example: `  eeaconf read guava-eea.jar eea-for-gav
  eeaconf read target/classes META-INF/MANIFEST.MF`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, ok := archive.NewReader(c.Logger).Read(args[0], args[1])
			if !ok {
				return errors.New(errors.ErrCodeNotFound, "no entry %s in %s", args[1], args[0])
			}
			fmt.Print(content)
			return nil
		},
	}
}
