package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lastnpe/eeaconf/pkg/buildinfo"
	"github.com/lastnpe/eeaconf/pkg/cache"
	"github.com/lastnpe/eeaconf/pkg/config"
	mavenrepo "github.com/lastnpe/eeaconf/pkg/integrations/maven"
	"github.com/lastnpe/eeaconf/pkg/maven"
	"github.com/lastnpe/eeaconf/pkg/project"
	"github.com/lastnpe/eeaconf/pkg/workspace"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "eeaconf configures External null-Annotations for Maven projects in Eclipse",
		Long: `eeaconf sets the annotationpath attributes of an Eclipse .classpath so that
null analysis uses the External null-Annotations (EEA) declared by eea-for-gav
files in the project's Maven dependencies.`,
		Version:      buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "configuration file (default $XDG_CONFIG_HOME/eeaconf/config.toml)")

	// Register all subcommands
	root.AddCommand(c.configureCommand())
	root.AddCommand(c.mappingCommand())
	root.AddCommand(c.readCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// envFlags are the flags shared by commands that resolve artifacts.
type envFlags struct {
	workspace string
	localRepo string
	offline   bool
	noCache   bool
}

func (f *envFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.workspace, "workspace", "", "Eclipse workspace directory")
	cmd.Flags().StringVar(&f.localRepo, "local-repo", "", "local Maven repository (default ~/.m2/repository)")
	cmd.Flags().BoolVar(&f.offline, "offline", false, "do not download from remote repositories")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "do not remember remote misses")
}

// loadConfig reads the configuration file. An explicit --config must exist.
func (c *CLI) loadConfig() (*config.Config, error) {
	path, required := c.configPath, true
	if path == "" {
		required = false
		p, err := config.DefaultPath()
		if err != nil {
			return config.Default(), nil
		}
		path = p
	}
	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("Loaded configuration", "path", path)
	return cfg, nil
}

// apply overrides cfg with the flags that were set.
func (f *envFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if f.workspace != "" {
		cfg.Workspace = f.workspace
	}
	if f.localRepo != "" {
		cfg.LocalRepository = f.localRepo
	}
	if cmd.Flags().Changed("offline") {
		cfg.Offline = f.offline
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// environment bundles the collaborators of a configuration pass.
type environment struct {
	cfg       *config.Config
	workspace *workspace.Workspace
	resolver  *maven.Resolver
	runner    *project.Runner
}

// openWorkspace loads the configuration and opens the workspace it names.
func (c *CLI) openWorkspace(cmd *cobra.Command, flags *envFlags) (*config.Config, *workspace.Workspace, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	flags.apply(cmd, cfg)

	ws, err := workspace.Open(cfg.Workspace, workspace.Options{
		Variables: cfg.ClasspathVariables(),
		Closed:    cfg.ClosedProjects,
		Logger:    c.Logger,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, ws, nil
}

// newEnvironment opens the workspace and builds the resolver and runner.
func (c *CLI) newEnvironment(cmd *cobra.Command, flags *envFlags) (*environment, error) {
	cfg, ws, err := c.openWorkspace(cmd, flags)
	if err != nil {
		return nil, err
	}

	missCache, err := newCache(flags.noCache)
	if err != nil {
		return nil, err
	}
	var remote maven.Fetcher
	if !cfg.Offline {
		remote = mavenrepo.NewClient()
	}
	resolver := maven.NewResolver(maven.ResolverOptions{
		LocalRepo: cfg.LocalRepository,
		Remote:    remote,
		Cache:     missCache,
		MissTTL:   cfg.CacheTTL.Duration,
		Offline:   cfg.Offline,
		Logger:    c.Logger,
	})
	if n := resolver.IndexWorkspace(ws.Projects()); n > 0 {
		c.Logger.Debug("Indexed workspace projects", "count", n)
	}

	return &environment{
		cfg:       cfg,
		workspace: ws,
		resolver:  resolver,
		runner:    project.NewRunner(ws, resolver, c.Logger),
	}, nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/eeaconf/).
func cacheDir() (string, error) {
	return config.CacheDir()
}

// round formats durations in summaries.
func round(d time.Duration) time.Duration { return d.Round(time.Millisecond) }
