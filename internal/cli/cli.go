package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/grammargen/internal/antlr"
	"github.com/specialistvlad/grammargen/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("grammargen", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
grammargen - dependency-aware parser generation for ANTLR grammar trees.

Usage:
  grammargen [options] [SOURCE_PATH]

Arguments:
  SOURCE_PATH
    Root directory of the grammar source tree to scan for .g4 files.

Options:
`)
		flagSet.PrintDefaults()
	}

	sourceFlag := flagSet.String("source", "", "Root directory of the grammar source tree.")
	sFlag := flagSet.String("s", "", "Root directory of the grammar source tree (shorthand).")
	configFlag := flagSet.String("config", "", "Path to an HCL project file.")
	outputFlag := flagSet.String("output", ".", "Base directory where generated packages are written.")
	oFlag := flagSet.String("o", "", "Base directory where generated packages are written (shorthand).")
	grammarsFlag := flagSet.String("grammars", "", "Comma-separated list of root grammar names to generate; all roots when empty.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 1, "Number of concurrent generator invocations. 1 processes roots sequentially.")
	javaFlag := flagSet.String("java", "", "Path to the Java executable; autodetected when empty.")
	jarFlag := flagSet.String("jar", "", "Path to the generator jar; autodetected in -lib when empty.")
	libFlag := flagSet.String("lib", "lib", "Directory searched for generator jars.")

	listenerFlag := flagSet.Bool("listener", true, "Generate parse tree listeners.")
	visitorFlag := flagSet.Bool("visitor", false, "Generate parse tree visitors.")
	encodingFlag := flagSet.String("encoding", "", "Grammar file encoding, e.g. euc-jp.")
	messageFormatFlag := flagSet.String("message-format", "", "Generator message style: antlr, gnu or vs2005.")
	longMessagesFlag := flagSet.Bool("long-messages", false, "Show exception details for errors and warnings.")
	atnFlag := flagSet.Bool("atn", false, "Generate rule augmented transition network diagrams.")
	dependFlag := flagSet.Bool("depend", false, "Generate file dependencies instead of parsers.")
	wErrorFlag := flagSet.Bool("w-error", false, "Treat warnings as errors; validation warnings abort the run.")
	exactOutputFlag := flagSet.Bool("x-exact-output-dir", false, "Write output into the output directory without deriving package paths.")
	xLogFlag := flagSet.Bool("x-log", false, "Dump generator logging info next to the generated package.")

	grammarOptions := make(map[string]string)
	flagSet.Func("grammar-option", "Grammar-level option override as key=value; repeatable.", func(v string) error {
		key, value, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return fmt.Errorf("expected key=value, got %q", v)
		}
		grammarOptions[key] = value
		return nil
	})

	outputOverrides := make(map[string]string)
	flagSet.Func("out", "Per-grammar output directory as name=dir; repeatable.", func(v string) error {
		name, dir, ok := strings.Cut(v, "=")
		if !ok || name == "" || dir == "" {
			return fmt.Errorf("expected name=dir, got %q", v)
		}
		outputOverrides[name] = dir
		return nil
	})

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	explicit := make(map[string]bool)
	flagSet.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	path := ""
	if *sourceFlag != "" {
		path = *sourceFlag
	} else if *sFlag != "" {
		path = *sFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
		explicit["source"] = true
	}
	slog.Debug("Source path determined.", "path", path)

	if path == "" && *configFlag == "" {
		slog.Debug("No source path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	outputDir := *outputFlag
	if *oFlag != "" {
		outputDir = *oFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	switch *messageFormatFlag {
	case "", "antlr", "gnu", "vs2005":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid message-format: must be 'antlr', 'gnu' or 'vs2005'"}
	}
	slog.Debug("CLI parameter validation complete.")

	var grammars []string
	for _, name := range strings.Split(*grammarsFlag, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			grammars = append(grammars, trimmed)
		}
	}

	generator := antlr.DefaultOptions()
	generator.Listener = *listenerFlag
	generator.Visitor = *visitorFlag
	generator.Encoding = *encodingFlag
	generator.MessageFormat = *messageFormatFlag
	generator.LongMessages = *longMessagesFlag
	generator.ATN = *atnFlag
	generator.Depend = *dependFlag
	generator.WarnAsError = *wErrorFlag
	generator.ExactOutputDir = *exactOutputFlag
	generator.Log = *xLogFlag
	generator.GrammarOptions = grammarOptions

	config, err := app.NewConfig(app.Config{
		SourcePath:      path,
		ConfigPath:      *configFlag,
		OutputDir:       outputDir,
		OutputOverrides: outputOverrides,
		Grammars:        grammars,
		JavaPath:        *javaFlag,
		JarPath:         *jarFlag,
		JarLibDir:       *libFlag,
		Generator:       generator,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		WorkerCount:     *workersFlag,
		Explicit:        explicit,
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return config, false, nil
}
