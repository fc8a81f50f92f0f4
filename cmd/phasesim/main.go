// The phasesim command drives a switchable-processor simulation through its
// execution phases and reports how the run ended. Without a hardware model
// attached it controls a replay model that raises a scripted sequence of exit
// events.
package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/phasesim/control"
	"github.com/sarchlab/phasesim/sim"
	"github.com/sarchlab/phasesim/simulation"
)

var (
	isaFlag     string
	cores       int
	maxInsts    uint64
	events      []string
	monitorOn   bool
	monitorPort int
	noRecord    bool
	outputFile  string
	logLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "phasesim",
	Short: "Drives a switchable-processor simulation through its phases",
	Long: `Phasesim runs the phase controller over a hardware model: it ` +
		`resumes the model until an exit event fires, reacts to the event, ` +
		`and decides whether the run continues. The built-in replay model ` +
		`raises the events given with --events.`,
	RunE: run,

	SilenceUsage: true,
}

func init() {
	rootCmd.Flags().StringVar(&isaFlag, "isa", "x86",
		"instruction-set architecture (x86, arm, riscv)")
	rootCmd.Flags().IntVar(&cores, "cores", 4,
		"number of simulated cores")
	rootCmd.Flags().Uint64Var(&maxInsts, "max-insts",
		control.DefaultMaxInstsPerThread,
		"per-thread instruction ceiling for the detailed phase")
	rootCmd.Flags().StringSliceVar(&events, "events", nil,
		"exit events the replay model raises "+
			"(exit, workbegin, workend, maxinsts)")
	rootCmd.Flags().BoolVar(&monitorOn, "monitor", false,
		"serve run state over HTTP")
	rootCmd.Flags().IntVar(&monitorPort, "monitor-port", 0,
		"port for the monitoring server")
	rootCmd.Flags().BoolVar(&noRecord, "no-record", false,
		"disable the SQLite run recorder")
	rootCmd.Flags().StringVar(&outputFile, "output", "",
		"output file name for the run recorder")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info",
		"log verbosity (debug, info, warn, error)")
}

func run(_ *cobra.Command, _ []string) error {
	logger := logrus.New()

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)

	isa, err := sim.ParseISA(isaFlag)
	if err != nil {
		return err
	}

	script, err := parseEventScript(isa, events)
	if err != nil {
		return err
	}

	builder := simulation.MakeBuilder().
		WithISA(isa).
		WithCores(cores).
		WithMaxInsts(maxInsts).
		WithEventScript(script).
		WithLogger(logger)

	if noRecord {
		builder = builder.WithoutRecording()
	} else if outputFile != "" {
		builder = builder.WithOutputFileName(outputFile)
	}

	if monitorOn {
		builder = builder.WithMonitoring()
		if monitorPort > 0 {
			builder = builder.WithMonitorPort(monitorPort)
		}
	}

	s := builder.Build()

	reason, err := s.Run()
	if err != nil {
		logger.WithError(err).Error("run failed")
		s.Terminate()
		atexit.Exit(1)
	}

	logger.WithFields(logrus.Fields{
		"event":  reason.Kind.String(),
		"cursor": reason.Cursor,
		"fired":  reason.Fired,
	}).Info("run complete")

	s.Terminate()

	return nil
}

func parseEventScript(
	isa sim.ISA,
	tokens []string,
) ([]sim.ExitEventKind, error) {
	if len(tokens) == 0 {
		return simulation.DefaultEventScript(isa), nil
	}

	script := make([]sim.ExitEventKind, 0, len(tokens))
	for _, token := range tokens {
		switch strings.ToLower(strings.TrimSpace(token)) {
		case "exit":
			script = append(script, sim.ExitEventExit)
		case "workbegin":
			script = append(script, sim.ExitEventWorkBegin)
		case "workend":
			script = append(script, sim.ExitEventWorkEnd)
		case "maxinsts":
			script = append(script, sim.ExitEventMaxInsts)
		default:
			return nil, fmt.Errorf("unknown exit event %q", token)
		}
	}

	return script, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
}
