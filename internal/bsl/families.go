package bsl

import (
	"github.com/grigorig/stcgal/internal/framing"
	"github.com/grigorig/stcgal/internal/options"
	"github.com/grigorig/stcgal/internal/registry"
)

// paramsByFamily is the static table SPEC_FULL.md's "Protocol State
// Machines" module names: one Params value per family, selected by the
// Model Registry's classification or by explicit user choice.
var paramsByFamily = map[registry.Family]Params{
	registry.Family89: {
		Name: "89", Dialect: framing.DialectA,
		Handshake: StrategySimple, BaudDivisorK: 16, SixTModeK: 32,
		ProgramBlockSize: 128, FirstBlockCmd: 0x02, NextBlockCmd: 0x02,
		EraseCountdownFrom: 0x80, EraseCountdownTo: 0x0d + 1,
		FreqCounterSamples: 8, MSRSize: options.Family89Size,
	},
	registry.Family12A: {
		Name: "12A", Dialect: framing.DialectB,
		Handshake: StrategySimple, BaudDivisorK: 16,
		ProgramBlockSize: 128, FirstBlockCmd: 0x02, NextBlockCmd: 0x02,
		EraseCountdownFrom: 0x80, EraseCountdownTo: 0x5e + 1,
		FreqCounterSamples: 8, MSRSize: options.Family12ASize,
	},
	registry.Family12: {
		Name: "12", Dialect: framing.DialectB,
		Handshake: StrategySimple, BaudDivisorK: 16,
		ProgramBlockSize: 128, FirstBlockCmd: 0x02, NextBlockCmd: 0x02,
		EraseCountdownFrom: 0x80, EraseCountdownTo: 0x0d + 1,
		FreqCounterSamples: 8, MSRSize: options.Family12Size,
		FinalizeAfterProgram: true,
	},
	registry.Family15A: {
		Name: "15A", Dialect: framing.DialectB,
		Handshake: StrategyTrim, SupportsTrim: true,
		ProgramBlockSize: 64, FirstBlockCmd: 0x22, NextBlockCmd: 0x02,
		AuthKeyRequired: true, EraseUsesAuthKey: true,
		FreqCounterSamples: 4, MSRSize: options.Family15ASize,
	},
	registry.Family15: {
		Name: "15", Dialect: framing.DialectB,
		Handshake: StrategyTrim, SupportsTrim: true, NoHardwareUART: true,
		ProgramBlockSize: 64, FirstBlockCmd: 0x22, NextBlockCmd: 0x02,
		AuthKeyRequired: true, EraseUsesAuthKey: true,
		FreqCounterSamples: 4, MSRSize: options.Family15Size,
	},
	registry.Family8: {
		Name: "8", Dialect: framing.DialectB,
		Handshake: StrategyTrim, SupportsTrim: true,
		ProgramBlockSize: 64, FirstBlockCmd: 0x22, NextBlockCmd: 0x02,
		AuthKeyRequired: true, EraseUsesAuthKey: true,
		FreqCounterSamples: 4, MSRSize: options.Family8Size,
	},
	registry.FamilyUSB15: {
		Name: "usb15", Dialect: framing.DialectB,
		Handshake: StrategyTrim, SupportsTrim: true, NoHardwareUART: true,
		ProgramBlockSize: 64, FirstBlockCmd: 0x22, NextBlockCmd: 0x02,
		AuthKeyRequired: true, EraseUsesAuthKey: true,
		FreqCounterSamples: 4, MSRSize: options.USB15Size,
	},
}

// ParamsFor returns the Params value for a family, and whether one is
// registered.
func ParamsFor(f registry.Family) (Params, bool) {
	p, ok := paramsByFamily[f]
	return p, ok
}

// DescriptorsFor returns the option descriptor table for a family, as
// used to construct that family's Codec.
func DescriptorsFor(f registry.Family) []options.Descriptor {
	switch f {
	case registry.Family89:
		return options.Family89Descriptors()
	case registry.Family12A:
		return options.Family12ADescriptors()
	case registry.Family12:
		return options.Family12Descriptors()
	case registry.Family15A:
		return options.Family15ADescriptors()
	case registry.Family15:
		return options.Family15Descriptors()
	case registry.Family8:
		return options.Family8Descriptors()
	case registry.FamilyUSB15:
		return options.USB15Descriptors()
	default:
		return nil
	}
}
