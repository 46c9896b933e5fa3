package app

import (
	"errors"

	"github.com/specialistvlad/grammargen/internal/antlr"
	"github.com/specialistvlad/grammargen/internal/config"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// SourcePath is the root of the grammar source tree to scan.
	SourcePath string
	// ConfigPath optionally names an HCL project file to merge in.
	ConfigPath string

	// OutputDir is the default output base directory.
	OutputDir string
	// OutputOverrides maps grammar names to explicit output directories.
	OutputOverrides map[string]string
	// Grammars restricts generation to the named roots when non-empty.
	Grammars []string

	// JavaPath and JarPath override generator autodetection; JarLibDir is
	// where jars are searched when JarPath is empty.
	JavaPath  string
	JarPath   string
	JarLibDir string

	// Generator carries the options forwarded to the external tool.
	Generator antlr.Options

	LogFormat   string
	LogLevel    string
	WorkerCount int

	// Explicit records which command-line flags the user set, so project
	// file values never override them.
	Explicit map[string]bool
}

// NewConfig validates a Config and returns it.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SourcePath == "" && cfg.ConfigPath == "" {
		return nil, errors.New("SourcePath is a required configuration field and cannot be empty")
	}
	if cfg.WorkerCount < 1 {
		return nil, errors.New("WorkerCount must be at least 1")
	}
	return &cfg, nil
}

// explicit reports whether the named flag was set on the command line.
func (c *Config) explicit(flag string) bool {
	return c.Explicit[flag]
}

// applyFile merges project file values into the config. Command-line flags
// win; file values only fill fields the user left at their defaults.
func (c *Config) applyFile(f *config.File) {
	if f.Source != nil && !c.explicit("source") && !c.explicit("s") {
		c.SourcePath = *f.Source
	}
	if f.OutputDir != nil && !c.explicit("output") && !c.explicit("o") {
		c.OutputDir = *f.OutputDir
	}
	for name, dir := range f.OutputOverrides {
		if _, ok := c.OutputOverrides[name]; !ok {
			if c.OutputOverrides == nil {
				c.OutputOverrides = make(map[string]string)
			}
			c.OutputOverrides[name] = dir
		}
	}
	for opt, value := range f.GrammarOptions {
		if _, ok := c.Generator.GrammarOptions[opt]; !ok {
			if c.Generator.GrammarOptions == nil {
				c.Generator.GrammarOptions = make(map[string]string)
			}
			c.Generator.GrammarOptions[opt] = value
		}
	}

	gen := f.Generator
	if gen.Listener != nil && !c.explicit("listener") {
		c.Generator.Listener = *gen.Listener
	}
	if gen.Visitor != nil && !c.explicit("visitor") {
		c.Generator.Visitor = *gen.Visitor
	}
	if gen.Encoding != nil && !c.explicit("encoding") {
		c.Generator.Encoding = *gen.Encoding
	}
	if gen.MessageFormat != nil && !c.explicit("message-format") {
		c.Generator.MessageFormat = *gen.MessageFormat
	}
	if gen.LongMessages != nil && !c.explicit("long-messages") {
		c.Generator.LongMessages = *gen.LongMessages
	}
	if gen.ATN != nil && !c.explicit("atn") {
		c.Generator.ATN = *gen.ATN
	}
	if gen.Depend != nil && !c.explicit("depend") {
		c.Generator.Depend = *gen.Depend
	}
	if gen.WarnAsError != nil && !c.explicit("w-error") {
		c.Generator.WarnAsError = *gen.WarnAsError
	}
	if gen.ExactOutputDir != nil && !c.explicit("x-exact-output-dir") {
		c.Generator.ExactOutputDir = *gen.ExactOutputDir
	}
	if gen.Log != nil && !c.explicit("x-log") {
		c.Generator.Log = *gen.Log
	}
}
