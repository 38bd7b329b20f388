// Package cli wires the command surface (§6) to the protocol state
// machines: flag parsing, image loading, option-override application,
// family selection (explicit or auto-detected), and exit-code mapping
// (§4.5, §7). Nothing below this package knows about flags, files, or
// stdout/stderr — it only consumes the SerialLink, Codec, and Sink
// interfaces the lower layers already expose.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/grigorig/stcgal/internal/bsl"
	"github.com/grigorig/stcgal/internal/ihex"
	"github.com/grigorig/stcgal/internal/image"
	"github.com/grigorig/stcgal/internal/link"
	"github.com/grigorig/stcgal/internal/progress"
)

// ExitCode is the §4.5/§6 2-level (well, 3-value) process exit status:
// 0 success, 1 protocol/IO error, 2 user interrupt.
type ExitCode int

const (
	ExitSuccess     ExitCode = 0
	ExitError       ExitCode = 1
	ExitInterrupted ExitCode = 2
)

// Config holds everything the orchestrator needs, already parsed out of
// flags by the cobra command in root.go.
type Config struct {
	CodeImagePath   string
	EEPROMImagePath string

	Port          string
	Baud          int
	HandshakeBaud int
	Protocol      string
	TrimKHz       float64
	Autoreset     bool
	ResetCommand  string
	Debug         bool

	OptionOverrides []string
	ListOptions     bool

	Open func(link.Config) (link.SerialLink, error)
	Out  *os.File
}

// Run loads images, opens the serial link, selects a family, drives the
// session, and returns the §4.5 exit code. It never calls os.Exit
// itself — that is cmd/stcisp's job.
func Run(ctx context.Context, cfg Config) ExitCode {
	log := newLogger(cfg.Debug).WithField("component", "cli")
	sink := progress.NewTerminal(cfg.Out, cfg.Debug)

	overrides, err := parseOptionOverrides(cfg.OptionOverrides)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return ExitError
	}

	family, auto, err := parseProtocol(cfg.Protocol)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return ExitError
	}

	var codeBytes, eepromBytes []byte
	if cfg.CodeImagePath != "" {
		codeBytes, err = ihex.LoadFile(cfg.CodeImagePath, 0xFF)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error: loading code image:", err)
			return ExitError
		}
	}
	if cfg.EEPROMImagePath != "" {
		eepromBytes, err = ihex.LoadFile(cfg.EEPROMImagePath, 0xFF)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error: loading eeprom image:", err)
			return ExitError
		}
	}

	open := cfg.Open
	if open == nil {
		open = link.Open
	}
	sl, err := open(link.Config{
		Port:        cfg.Port,
		Baud:        cfg.HandshakeBaud,
		Parity:      link.ParityNone,
		ReadTimeout: 10 * time.Second,
		CharTimeout: time.Second,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error: opening serial port:", err)
		return ExitError
	}
	defer sl.Close()

	if cfg.Autoreset {
		if err := sl.PulsePower(); err != nil {
			log.WithError(err).Warn("autoreset: pulsing DTR failed")
		}
	}
	if cfg.ResetCommand != "" {
		if err := exec.CommandContext(ctx, "/bin/sh", "-c", cfg.ResetCommand).Run(); err != nil {
			log.WithError(err).Warn("resetcmd: external reset command failed")
		}
	}

	if auto {
		detected, status, err := bsl.Detect(ctx, sl, sink)
		if err != nil {
			if ctx.Err() != nil {
				return ExitInterrupted
			}
			fmt.Fprintln(os.Stderr, "error: auto-detect:", err)
			return ExitError
		}
		family = detected
		log.WithField("family", family.String()).WithField("magic", fmt.Sprintf("0x%04x", status.Magic)).Info("auto-detected family")
	}

	machine, err := bsl.NewMachine(sl, family, sink)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return ExitError
	}
	machine.Debug = cfg.Debug
	log = log.WithField("family", family.String())

	status, err := machine.Connect(ctx, cfg.HandshakeBaud)
	if err != nil {
		return finish(machine, ctx, err)
	}
	if err := machine.Identify(status, cfg.HandshakeBaud); err != nil {
		return finish(machine, ctx, err)
	}

	if cfg.ListOptions {
		printOptionList(cfg.Out, machine)
		return ExitSuccess
	}

	for _, ov := range overrides {
		if err := machine.Session.Codec.Set(ov.Name, ov.Value); err != nil {
			return finish(machine, ctx, fmt.Errorf("option override %s=%s: %w", ov.Name, ov.Value, err))
		}
	}

	unit := image.PadUnit256
	if machine.Params.SupportsTrim {
		unit = image.PadUnit512
	}
	built, warnings := image.Build(codeBytes, eepromBytes, int(machine.Session.Model.Code), int(machine.Session.Model.EEPROM), unit)
	for _, w := range warnings {
		sink.Warn(w.Message)
	}

	userSpeedHz := cfg.TrimKHz * 1000
	if userSpeedHz == 0 {
		userSpeedHz = machine.Session.MCUClockHz
	}

	switch machine.Params.Handshake {
	case bsl.StrategySimple:
		sixT := false
		if v, gerr := machine.Session.Codec.Get("cpu_6t_enabled"); gerr == nil && v == "true" {
			sixT = true
		}
		if err := machine.HandshakeSimple(cfg.Baud, sixT); err != nil {
			return finish(machine, ctx, err)
		}
	case bsl.StrategyTrim:
		if err := machine.HandshakeTrim(cfg.Baud, userSpeedHz); err != nil {
			return finish(machine, ctx, err)
		}
	}

	if err := machine.Erase(len(built)); err != nil {
		return finish(machine, ctx, err)
	}
	if err := machine.ProgramFlash(built); err != nil {
		return finish(machine, ctx, err)
	}
	measuredFreq := machine.Session.MCUClockHz
	if machine.Params.SupportsTrim {
		measuredFreq = machine.Session.TrimFrequency
	}
	if err := machine.ProgramOptions(measuredFreq); err != nil {
		return finish(machine, ctx, err)
	}
	if machine.Session.HaveUID {
		sink.Status(fmt.Sprintf("UID: % X", machine.Session.UID))
	}

	return finish(machine, ctx, nil)
}

// finish performs the §7 best-effort disconnect and maps the run's
// error (if any) to an exit code.
func finish(m *bsl.Machine, ctx context.Context, runErr error) ExitCode {
	if derr := m.Disconnect(); derr != nil && runErr == nil {
		runErr = derr
	}
	if runErr == nil {
		return ExitSuccess
	}
	if ctx.Err() != nil {
		return ExitInterrupted
	}
	fmt.Fprintln(os.Stderr, "error:", runErr)
	return ExitError
}

func printOptionList(out *os.File, m *bsl.Machine) {
	fmt.Fprintf(out, "%s: %s (code %d, eeprom %d)\n", m.Session.Model.Name, m.Params.Name, m.Session.Model.Code, m.Session.Model.EEPROM)
	for _, nv := range m.Session.Codec.List() {
		fmt.Fprintf(out, "  %s = %s\n", nv.Name, nv.Value)
	}
}

func newLogger(debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.InfoLevel)
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}
