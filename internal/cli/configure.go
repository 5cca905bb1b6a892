package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lastnpe/eeaconf/pkg/project"
)

// configureCommand creates the configure command.
func (c *CLI) configureCommand() *cobra.Command {
	var (
		env         envFlags
		dryRun      bool
		materialize bool
		show        bool
		pick        bool
	)

	cmd := &cobra.Command{
		Use:   "configure [project-dir...]",
		Short: "Set External Annotation paths in .classpath files",
		Long: `Configure reads each project's pom.xml and .classpath, finds eea-for-gav
mappings in the project's dependencies and sets the annotationpath attribute of
every classpath entry with a matching annotation location.

JDT compiler options found in the maven-compiler-plugin configuration are
imported into .settings/org.eclipse.jdt.core.prefs.`,
		Example: `  eeaconf configure
  eeaconf configure --dry-run ./app
  eeaconf configure --workspace ~/eclipse-workspace --offline a b c
  eeaconf configure --workspace ~/eclipse-workspace --pick`,
		ValidArgsFunction: completeDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.newEnvironment(cmd, &env)
			if err != nil {
				return err
			}
			if pick {
				items := ProjectItems(e.workspace)
				if len(items) == 0 {
					printWarning("No open projects in workspace %q", e.workspace.Root())
					return nil
				}
				dir, err := pickProject(items)
				if err != nil || dir == "" {
					return err
				}
				args = []string{dir}
			}
			if len(args) == 0 {
				args = []string{"."}
			}

			ctx := withLogger(cmd.Context(), c.Logger)
			prog := newProgress(loggerFromContext(ctx))
			repos := e.cfg.MavenRepositories()

			var failed int
			for _, dir := range args {
				res, err := e.runner.Run(ctx, project.Options{
					Dir:          dir,
					DryRun:       dryRun,
					Materialize:  materialize,
					Repositories: repos,
				})
				if err != nil {
					failed++
					printError("%s: %v", dir, err)
					continue
				}
				printResult(res)
				if show || dryRun {
					data, err := res.Classpath.Bytes()
					if err != nil {
						return err
					}
					os.Stdout.Write(data)
				}
			}

			prog.done(fmt.Sprintf("Configured %d of %d projects", len(args)-failed, len(args)))
			if dryRun && failed < len(args) {
				printNewline()
				printNextStep("Apply the changes", "eeaconf configure")
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d projects failed", failed, len(args))
			}
			return nil
		},
	}

	env.register(cmd)
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "compute the changes without writing files")
	cmd.Flags().BoolVar(&materialize, "materialize", false, "write resolved dependencies into the .classpath")
	cmd.Flags().BoolVar(&show, "show", false, "print the resulting .classpath (implied by --dry-run)")
	cmd.Flags().BoolVar(&pick, "pick", false, "choose a workspace project interactively")

	return cmd
}

// printResult prints the summary of one pass.
func printResult(res *project.Result) {
	printSuccess("%s", res.Project.ID())
	for _, a := range res.Annotations {
		printDetail("%s %s %s", a.Entry.Path, iconArrow, a.Path)
	}
	if res.CompilerOptions != "" {
		printDetail("compiler options from %s", res.CompilerOptions)
	}
	for _, path := range res.Written {
		printFile(path)
	}
	printStats(len(res.Annotations), len(res.Dependencies), len(res.Written) > 0)
	if res.Materialized && len(res.Dependencies) > 0 {
		printDetail("dependencies merged into .classpath")
	}
	printDetail("pass %s in %s", res.PassID, round(res.Duration))
}
