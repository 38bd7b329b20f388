package bsl

import (
	"context"
	"fmt"
)

// OptionOverride is one parsed "--option name=value" pair (§4.5), applied
// to the session's Option Codec after connect/identify and before
// handshake.
type OptionOverride struct {
	Name  string
	Value string
}

// RunConfig bundles everything a Run call needs beyond the Machine
// itself: the negotiated baud rates, the already-assembled image, and
// any user option overrides.
type RunConfig struct {
	HandshakeBaud   int
	TargetBaud      int
	UserSpeedHz     float64
	Image           []byte
	OptionOverrides []OptionOverride
}

// Run drives one Machine through the full §4.4 skeleton: connect,
// identify, apply option overrides, handshake, erase, program_flash,
// program_options, disconnect. Disconnect is attempted best-effort even
// on failure (§7: "the session attempts a best-effort disconnect"); its
// own error is only surfaced if the run was otherwise successful.
func (m *Machine) Run(ctx context.Context, cfg RunConfig) (err error) {
	connected := false
	defer func() {
		if !connected {
			return
		}
		if derr := m.Disconnect(); derr != nil && err == nil {
			err = derr
		}
	}()

	status, err := m.Connect(ctx, cfg.HandshakeBaud)
	if err != nil {
		return err
	}
	connected = true

	if err := m.Identify(status, cfg.HandshakeBaud); err != nil {
		return err
	}

	for _, ov := range cfg.OptionOverrides {
		if err := m.Session.Codec.Set(ov.Name, ov.Value); err != nil {
			return fmt.Errorf("bsl: option override %s=%s: %w", ov.Name, ov.Value, err)
		}
	}

	switch m.Params.Handshake {
	case StrategySimple:
		sixT := false
		if v, gerr := m.Session.Codec.Get("cpu_6t_enabled"); gerr == nil && v == "true" {
			sixT = true
		}
		if err := m.HandshakeSimple(cfg.TargetBaud, sixT); err != nil {
			return err
		}
	case StrategyTrim:
		if err := m.HandshakeTrim(cfg.TargetBaud, cfg.UserSpeedHz); err != nil {
			return err
		}
	default:
		return fmt.Errorf("bsl: unknown handshake strategy for family %s", m.Params.Name)
	}

	if err := m.Erase(len(cfg.Image)); err != nil {
		return err
	}
	if err := m.ProgramFlash(cfg.Image); err != nil {
		return err
	}
	measuredFreq := m.Session.MCUClockHz
	if m.Params.SupportsTrim {
		measuredFreq = m.Session.TrimFrequency
	}
	if err := m.ProgramOptions(measuredFreq); err != nil {
		return err
	}
	if m.Session.HaveUID {
		m.Sink.Status(fmt.Sprintf("UID: % X", m.Session.UID))
	}
	return nil
}
