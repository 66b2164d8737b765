package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/raymyers/littlec/pkg/cfg"
	"github.com/raymyers/littlec/pkg/config"
	"github.com/raymyers/littlec/pkg/ir"
	"github.com/raymyers/littlec/pkg/irgen"
	"github.com/raymyers/littlec/pkg/lcast"
	"github.com/raymyers/littlec/pkg/logger"
	"github.com/raymyers/littlec/pkg/symtab"
)

var version = "0.1.0"

// Debug flags for dumping intermediate representations
var (
	dAST bool
	dIR  bool
	dCFG bool
)

// Other options
var (
	renumber   bool
	configPath string
	logLevel   string
	logFormat  string
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := newRootCmd(os.Stdout, os.Stderr)
	// Single-dash dump flags are accepted for compatibility with older scripts
	rootCmd.SetArgs(normalizeFlags(os.Args[1:]))
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return 0
}

// debugFlagNames lists the flags that also accept single-dash style
var debugFlagNames = []string{"dast", "dir", "dcfg", "renumber"}

// normalizeFlags converts single-dash flags like -dir to --dir
func normalizeFlags(args []string) []string {
	result := make([]string, len(args))
	for i, arg := range args {
		for _, flagName := range debugFlagNames {
			if arg == "-"+flagName {
				result[i] = "--" + flagName
				break
			}
		}
		if result[i] == "" {
			result[i] = arg
		}
	}
	return result
}

// normalizeFlagName lets --log_level stand for --log-level.
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "littlec [file.yaml]",
		Short: "littlec lowers a typed syntax tree to three-address IR",
		Long: `littlec reads a typed syntax tree in YAML form, generates the
linear three-address intermediate representation and splits it into
basic blocks. Each dump flag writes its output next to the input file
and echoes it to stdout.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Help()
				return nil
			}
			filename := args[0]

			settings, err := loadSettings(cmd, errOut)
			if err != nil {
				return err
			}
			log, closeLog, err := newLogger(settings, errOut)
			if err != nil {
				return err
			}
			defer closeLog()

			if settings.Dump.AST {
				if err := doAST(filename, out, errOut); err != nil {
					return err
				}
			}
			if !settings.Dump.IR && !settings.Dump.CFG {
				if settings.Dump.AST {
					return nil
				}
				fmt.Fprintf(errOut, "littlec: compiling %s\n", filename)
				_, err := compileFile(filename, settings, log, errOut)
				return err
			}
			if settings.Dump.IR {
				if err := doIR(filename, settings, log, out, errOut); err != nil {
					return err
				}
			}
			if settings.Dump.CFG {
				if err := doCFG(filename, settings, log, out, errOut); err != nil {
					return err
				}
			}
			return nil
		},
	}
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.Flags().SetNormalizeFunc(normalizeFlagName)

	// Add debug flags
	rootCmd.Flags().BoolVarP(&dAST, "dast", "", false, "Dump the syntax tree")
	rootCmd.Flags().BoolVarP(&dIR, "dir", "", false, "Dump the generated IR")
	rootCmd.Flags().BoolVarP(&dCFG, "dcfg", "", false, "Dump the basic blocks")

	rootCmd.Flags().BoolVar(&renumber, "renumber", false, "Renumber L<n> labels densely")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "Read settings from a YAML file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")

	return rootCmd
}

// loadSettings reads the config file, if any, and applies the flags the user
// set on top of it.
func loadSettings(cmd *cobra.Command, errOut io.Writer) (*config.Config, error) {
	settings := config.Default()
	if configPath != "" {
		var err error
		settings, err = config.Load(configPath)
		if err != nil {
			fmt.Fprintf(errOut, "littlec: error reading config: %v\n", err)
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		settings.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		settings.Log.Format = logFormat
	}
	settings.Dump.AST = settings.Dump.AST || dAST
	settings.Dump.IR = settings.Dump.IR || dIR
	settings.Dump.CFG = settings.Dump.CFG || dCFG
	settings.Renumber = settings.Renumber || renumber

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(errOut, "littlec: %v\n", err)
		return nil, err
	}
	return settings, nil
}

func newLogger(settings *config.Config, errOut io.Writer) (*slog.Logger, func() error, error) {
	lc, err := settings.Logger(errOut)
	if err != nil {
		fmt.Fprintf(errOut, "littlec: %v\n", err)
		return nil, nil, err
	}
	log, closer, err := logger.New(lc)
	if err != nil {
		fmt.Fprintf(errOut, "littlec: error opening log: %v\n", err)
		return nil, nil, err
	}
	return log, closer, nil
}

// readTree decodes the YAML syntax tree in filename
func readTree(filename string, errOut io.Writer) (*lcast.Node, error) {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(errOut, "littlec: error reading %s: %v\n", filename, err)
		return nil, err
	}
	defer f.Close()

	root, err := lcast.Decode(f)
	if err != nil {
		fmt.Fprintf(errOut, "littlec: %s: %v\n", filename, err)
		return nil, err
	}
	return root, nil
}

// compileFile reads a tree and generates its program
func compileFile(filename string, settings *config.Config, log *slog.Logger, errOut io.Writer) (*ir.Program, error) {
	root, err := readTree(filename, errOut)
	if err != nil {
		return nil, err
	}

	prog, err := irgen.Generate(root, symtab.Build(root), irgen.Options{
		Builtins: settings.Builtins,
		Logger:   log.With("file", filepath.Base(filename)),
	})
	if err != nil {
		fmt.Fprintf(errOut, "littlec: %s: %v\n", filename, err)
		return nil, err
	}
	if settings.Renumber {
		prog = ir.RenumberLabels(prog)
	}
	log.Info("generated", "file", filename, "lines", prog.Len())
	return prog, nil
}

// writeOutput writes text to outputFilename and echoes it to out
func writeOutput(outputFilename, text string, out, errOut io.Writer) error {
	outFile, err := os.Create(outputFilename)
	if err != nil {
		fmt.Fprintf(errOut, "littlec: error creating %s: %v\n", outputFilename, err)
		return err
	}
	defer outFile.Close()

	if _, err := io.WriteString(outFile, text); err != nil {
		fmt.Fprintf(errOut, "littlec: error writing %s: %v\n", outputFilename, err)
		return err
	}

	// Also print to stdout for convenience
	fmt.Fprint(out, text)
	return nil
}

// doAST decodes the tree and writes it to a .ast file
func doAST(filename string, out, errOut io.Writer) error {
	root, err := readTree(filename, errOut)
	if err != nil {
		return err
	}
	var sb strings.Builder
	lcast.NewPrinter(&sb).PrintTree(root)
	return writeOutput(outputFilename(filename, ".ast"), sb.String(), out, errOut)
}

// doIR generates the program and writes it to a .ir file
func doIR(filename string, settings *config.Config, log *slog.Logger, out, errOut io.Writer) error {
	prog, err := compileFile(filename, settings, log, errOut)
	if err != nil {
		return err
	}
	var sb strings.Builder
	ir.NewPrinter(&sb).PrintProgram(prog)
	return writeOutput(outputFilename(filename, ".ir"), sb.String(), out, errOut)
}

// doCFG generates the program and writes its basic blocks to a .cfg file
func doCFG(filename string, settings *config.Config, log *slog.Logger, out, errOut io.Writer) error {
	prog, err := compileFile(filename, settings, log, errOut)
	if err != nil {
		return err
	}
	g := cfg.Build(prog)
	log.Info("built blocks", "file", filename, "blocks", g.Len())
	return writeOutput(outputFilename(filename, ".cfg"), g.Text(), out, errOut)
}

// outputFilename replaces a .yaml or .yml extension with ext:
// input.yaml -> input.ir
func outputFilename(filename, ext string) string {
	for _, in := range []string{".yaml", ".yml"} {
		if strings.HasSuffix(filename, in) {
			return filename[:len(filename)-len(in)] + ext
		}
	}
	return filename + ext
}
