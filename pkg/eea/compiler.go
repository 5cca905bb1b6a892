package eea

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/lastnpe/eeaconf/pkg/jdt"
)

// CompilerPlugin is the key of the Maven compiler plugin.
const CompilerPlugin = "org.apache.maven.plugins:maven-compiler-plugin"

// tychoCompiler is a compiler plugin dependency that never carries prefs.
const tychoCompiler = "tycho-compiler-jdt"

// OptionsStore holds JDT compiler options. It is implemented by *jdt.Prefs.
type OptionsStore interface {
	Options() map[string]string
	Merge(options map[string]string) int
}

// Configure imports JDT compiler options into prefs.
//
// The first dependency of the maven-compiler-plugin that contains an
// org.eclipse.jdt.core.prefs entry supplies the options. Without one, the
// file named by the plugin's compilerArguments/properties configuration is
// used, unless it lies in a .settings directory (it would be the project's
// own prefs). It returns the source of the imported options, "" if none.
//
// Failures are logged and end the import without an error.
func (c *Configurator) Configure(ctx context.Context, f Facade, prefs OptionsStore) string {
	plugin := f.Plugin(CompilerPlugin)
	if plugin == nil {
		return ""
	}

	for _, d := range plugin.Dependencies {
		if d.ArtifactID == tychoCompiler {
			continue
		}
		if ctx.Err() != nil {
			return ""
		}
		file, ok := c.dependencyFile(ctx, f, d)
		if !ok {
			continue
		}
		text, ok := c.reader.Read(file, jdt.FileName)
		if !ok {
			continue
		}
		options, err := jdt.ParseOptions(text)
		if err != nil {
			c.logger.Error("Cannot parse compiler properties", "file", file, "err", err)
			continue
		}
		c.merge(prefs, options, d.Artifact().String())
		return d.Artifact().String()
	}

	path := plugin.Configuration.Child("compilerArguments").Child("properties").Value()
	if path == "" {
		return ""
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(f.Basedir(), path)
	}
	if strings.Contains(filepath.ToSlash(path), "/.settings/") {
		return ""
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Error("Cannot read compiler properties", "file", path, "err", err)
		}
		return ""
	}
	options, err := jdt.ParseOptions(string(data))
	if err != nil {
		c.logger.Error("Cannot parse compiler properties", "file", path, "err", err)
		return ""
	}
	c.merge(prefs, options, path)
	return path
}

func (c *Configurator) merge(prefs OptionsStore, options map[string]string, source string) {
	if len(options) == 0 {
		return
	}
	n := prefs.Merge(options)
	c.logger.Info("Imported compiler options", "from", source, "options", len(options), "changed", n)
}
