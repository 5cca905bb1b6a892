package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lastnpe/eeaconf/pkg/archive"
	"github.com/lastnpe/eeaconf/pkg/eea"
	"github.com/lastnpe/eeaconf/pkg/gav"
)

// mappingCommand creates the mapping command.
func (c *CLI) mappingCommand() *cobra.Command {
	var (
		env   envFlags
		match string
	)

	cmd := &cobra.Command{
		Use:   "mapping <location>...",
		Short: "Show the GAV mapping declared by EEA locations",
		Long: `Mapping reads the eea-for-gav file of each location (a directory, a jar, or a
workspace path such as /project/eea) and prints the coordinates it declares.
Later locations override earlier ones for equal coordinates.`,
		Example: `  eeaconf mapping ~/.m2/repository/org/lastnpe/eea/jdk-eea/2.4.0/jdk-eea-2.4.0.jar
  eeaconf mapping ./eea --match com.google.guava:guava:33.0.0-jre`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ws, err := c.openWorkspace(cmd, &env)
			if err != nil {
				return err
			}

			b := eea.NewBuilder(ws, archive.NewReader(c.Logger), c.Logger)
			m, err := b.Build(args)
			if err != nil {
				return err
			}

			if match != "" {
				return printMatch(m, match)
			}
			if m.Len() == 0 {
				printInfo("No EEA declarations found")
				return nil
			}

			rows := make([][]string, 0, m.Len())
			for _, k := range m.Keys() {
				loc, _ := m.Location(k)
				rows = append(rows, []string{k.String(), loc})
			}
			fmt.Println(renderTable([]string{"GAV", "Annotation path"}, rows))
			printDetail("%d coordinates", m.Len())
			return nil
		},
	}

	env.register(cmd)
	cmd.Flags().StringVar(&match, "match", "", "print the location selected for groupId:artifactId:version[:classifier]")

	return cmd
}

// printMatch prints the annotation location selected for an artifact.
func printMatch(m *eea.Mapping, coordinates string) error {
	c, err := gav.Parse(coordinates)
	if err != nil {
		return err
	}
	a := gav.Artifact{GroupID: c.GroupID, ArtifactID: c.ArtifactID, Version: c.Version, Classifier: c.Classifier}
	best, ok := m.Best(a)
	if !ok {
		printWarning("No annotation path for %s", a)
		return nil
	}
	printSuccess("%s %s %s", a, iconArrow, best.Location)
	printKeyValue("matched", best.Coordinate.String())
	return nil
}
