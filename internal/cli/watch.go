package cli

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/lastnpe/eeaconf/pkg/eea"
	"github.com/lastnpe/eeaconf/pkg/maven"
	"github.com/lastnpe/eeaconf/pkg/project"
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		env         envFlags
		reconfigure bool
	)

	cmd := &cobra.Command{
		Use:   "watch [project-dir]",
		Short: "Watch a pom.xml for annotation path changes",
		Long: `Watch reports when the m2e.jdt.annotationpath property of a project changes.
With --reconfigure a configuration pass runs after each change.`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeDirs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			dir, err := filepath.Abs(dir)
			if err != nil {
				return err
			}

			w := &pomWatcher{dir: dir, logger: c.Logger}
			if w.current, err = project.Load(dir); err != nil {
				return err
			}
			if reconfigure {
				e, err := c.newEnvironment(cmd, &env)
				if err != nil {
					return err
				}
				repos := e.cfg.MavenRepositories()
				w.onChange = func(ctx context.Context) {
					res, err := e.runner.Run(ctx, project.Options{Dir: dir, Repositories: repos})
					if err != nil {
						printError("%s: %v", dir, err)
						return
					}
					printResult(res)
				}
			}

			printInfo("Watching %s", filepath.Join(dir, maven.POMFile))
			return w.run(cmd.Context())
		},
	}

	env.register(cmd)
	cmd.Flags().BoolVar(&reconfigure, "reconfigure", false, "run a configuration pass after each change")

	return cmd
}

// pomWatcher follows the pom.xml of one project directory.
type pomWatcher struct {
	dir      string
	logger   *log.Logger
	current  *maven.Project
	onChange func(ctx context.Context)
}

// run blocks until ctx is done. The directory is watched rather than the
// file so that editors replacing pom.xml are seen too.
func (w *pomWatcher) run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(ev) && w.onChange != nil {
				w.onChange(ctx)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watch error", "dir", w.dir, "err", err)
		}
	}
}

// handleEvent reloads the pom after a relevant event and reports whether
// its project-wide annotation path changed.
func (w *pomWatcher) handleEvent(ev fsnotify.Event) bool {
	if filepath.Base(ev.Name) != maven.POMFile {
		return false
	}
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
		return false
	}

	updated, err := project.Load(w.dir)
	if err != nil {
		w.logger.Warn("Cannot reload pom", "dir", w.dir, "err", err)
		return false
	}
	changed := eea.ProjectChanged(w.current, updated)
	w.current = updated
	if changed {
		path := eea.ProjectWideAnnotationPath(updated, eea.PropAnnotationPath)
		if path == "" {
			printWarning("%s no longer sets %s", updated.ID(), eea.PropAnnotationPath)
		} else {
			printWarning("%s sets %s to %s", updated.ID(), eea.PropAnnotationPath, path)
		}
	}
	return changed
}
