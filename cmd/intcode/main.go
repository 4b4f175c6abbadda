// intcode runs IntCode programs: batch runs, amplifier chains, the
// hull-painting robot, noun/verb searches, disassembly and an interactive
// console.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/colorfulnotion/intcode/config"
	"github.com/colorfulnotion/intcode/host"
	"github.com/colorfulnotion/intcode/intcode"
	"github.com/colorfulnotion/intcode/intcode/program"
	log "github.com/colorfulnotion/intcode/log"
	"github.com/colorfulnotion/intcode/vmerrors"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

// loadConfig layers the config file and then any explicitly set flags over
// the defaults, and starts the logger.
func loadConfig(cmd *cobra.Command, path string, flags *config.Config) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	pf := cmd.Flags()
	if pf.Changed("min-memory") {
		cfg.MinMemory = flags.MinMemory
	}
	if pf.Changed("max-memory") {
		cfg.MaxMemory = flags.MaxMemory
	}
	if pf.Changed("trace") {
		cfg.Trace = flags.Trace
	}
	if pf.Changed("log-level") {
		cfg.LogLevel = flags.LogLevel
	}
	if pf.Changed("debug") {
		cfg.Debug = flags.Debug
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	// instruction dumps are written at trace level
	if cfg.Trace && lvl > log.LevelTrace {
		cfg.LogLevel = "trace"
	}
	log.InitLogger(cfg.LogLevel)
	if cfg.Debug != "" {
		log.EnableModules(cfg.Debug)
	}
	if cfg.Trace {
		log.EnableModule(log.IntcodeTrace)
	}
	log.Debug(log.CLIMonitoring, "config loaded", "file", path, "min_memory", cfg.MinMemory, "max_memory", cfg.MaxMemory)
	return cfg, nil
}

func parseInts(s string) ([]int64, error) {
	var out []int64
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad integer %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}

// errorLine prefixes coded errors with their code and name so faults are
// easy to grep for.
func errorLine(err error) string {
	if code := vmerrors.GetErrorCode(err); code != "" {
		return fmt.Sprintf("Error [%s %s]: %v", code, vmerrors.GetErrorName(err), err)
	}
	return fmt.Sprintf("Error: %v", err)
}

func main() {
	var rootCmd = &cobra.Command{
		Use:           "intcode",
		Short:         "IntCode virtual machine and hosts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	var (
		configPath string
		flags      = config.Default()
		cfg        *config.Config
	)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&flags.LogLevel, "log-level", flags.LogLevel, "Log level (trace, debug, info, warn, error, crit)")
	rootCmd.PersistentFlags().StringVar(&flags.Debug, "debug", "", "Debug modules to enable (intcode,intcode_trace,host,cli or all)")
	rootCmd.PersistentFlags().IntVar(&flags.MinMemory, "min-memory", flags.MinMemory, "Cells preallocated for each VM")
	rootCmd.PersistentFlags().Int64Var(&flags.MaxMemory, "max-memory", 0, "Memory limit in cells (0 for unlimited)")
	rootCmd.PersistentFlags().BoolVar(&flags.Trace, "trace", false, "Trace every executed instruction")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd, configPath, flags)
		return err
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("intcode %s (commit %s, built %s)\n", Version, Commit, BuildTime)
		},
	}

	var inputs []int64
	var runCmd = &cobra.Command{
		Use:   "run FILE",
		Short: "Run a program to completion and print every output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := program.Load(args[0])
			if err != nil {
				return err
			}
			outs, err := host.RunOutputs(img, cfg.VMConfig(), inputs...)
			for _, v := range outs {
				fmt.Println(v)
			}
			return err
		},
	}
	runCmd.Flags().Int64SliceVarP(&inputs, "input", "i", nil, "Input value (repeatable)")

	var (
		phases   string
		feedback bool
		verbose  bool
	)
	var ampCmd = &cobra.Command{
		Use:   "amp FILE",
		Short: "Find the highest signal over every ordering of the phase settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := program.Load(args[0])
			if err != nil {
				return err
			}
			phaseSet, err := parseInts(phases)
			if err != nil {
				return err
			}
			best, order, err := host.MaxSignal(img, cfg.VMConfig(), phaseSet, feedback, 0)
			if err != nil {
				return err
			}
			fmt.Printf("signal %d phases %v\n", best, order)
			if verbose {
				p, err := host.NewPipeline(img, cfg.VMConfig(), order, feedback)
				if err != nil {
					return err
				}
				if _, err := p.Run(0); err != nil {
					return err
				}
				fmt.Print(p.Tree().String())
			}
			return nil
		},
	}
	ampCmd.Flags().StringVar(&phases, "phases", "0,1,2,3,4", "Phase settings, one per stage")
	ampCmd.Flags().BoolVar(&feedback, "feedback", false, "Feed the last stage back into the first")
	ampCmd.Flags().BoolVar(&verbose, "verbose", false, "Print the winning pipeline")

	var start int64
	var paintCmd = &cobra.Command{
		Use:   "paint FILE",
		Short: "Run the hull-painting robot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if start != host.Black && start != host.White {
				return fmt.Errorf("start colour must be 0 or 1, got %d", start)
			}
			img, err := program.Load(args[0])
			if err != nil {
				return err
			}
			hull, err := host.Paint(img, cfg.VMConfig(), start)
			if err != nil {
				return err
			}
			fmt.Printf("painted %d panels\n", hull.PaintedCount())
			fmt.Print(hull.Render())
			return nil
		},
	}
	paintCmd.Flags().Int64Var(&start, "start", host.Black, "Colour of the starting panel (0 black, 1 white)")

	var target, noun, verb int64
	var nounVerbCmd = &cobra.Command{
		Use:   "nounverb FILE",
		Short: "Evaluate one noun/verb pair or search for the pair producing --target",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := program.Load(args[0])
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("noun") || cmd.Flags().Changed("verb") {
				v, err := host.RunNounVerb(img, cfg.VMConfig(), noun, verb)
				if err != nil {
					return err
				}
				fmt.Println(v)
				return nil
			}
			if !cmd.Flags().Changed("target") {
				return fmt.Errorf("either --target or --noun/--verb is required")
			}
			answer, err := host.FindNounVerb(img, cfg.VMConfig(), target)
			if err != nil {
				return err
			}
			fmt.Printf("noun %d verb %d answer %d\n", answer/100, answer%100, answer)
			return nil
		},
	}
	nounVerbCmd.Flags().Int64Var(&target, "target", 0, "Value cell 0 must hold after the run")
	nounVerbCmd.Flags().Int64Var(&noun, "noun", 12, "Value patched into cell 1")
	nounVerbCmd.Flags().Int64Var(&verb, "verb", 2, "Value patched into cell 2")

	var disasmCmd = &cobra.Command{
		Use:   "disasm FILE",
		Short: "Print a disassembly listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := program.Load(args[0])
			if err != nil {
				return err
			}
			for _, line := range intcode.Disassemble(img) {
				fmt.Println(line)
			}
			return nil
		},
	}

	var ascii bool
	var consoleCmd = &cobra.Command{
		Use:   "console FILE",
		Short: "Run a program interactively, reading input from the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := program.Load(args[0])
			if err != nil {
				return err
			}
			return runConsole(img, cfg.VMConfig(), ascii)
		},
	}
	consoleCmd.Flags().BoolVar(&ascii, "ascii", false, "Exchange text instead of integers")

	rootCmd.AddCommand(versionCmd, runCmd, ampCmd, paintCmd, nounVerbCmd, disasmCmd, consoleCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}
