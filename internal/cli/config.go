package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	var env envFlags

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Config prints the configuration that commands run with: the configuration
file merged over the defaults, with the given flags applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			env.apply(cmd, cfg)

			out, err := cfg.Encode()
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}

	env.register(cmd)
	return cmd
}
