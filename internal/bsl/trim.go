package bsl

import (
	"fmt"
	"math"
)

// TrimSample is one (trim_adj, trim_range) calibration challenge paired
// with the MCU's measured counter response (§4.4.3 steps 2-4). trim_adj
// is the RC trim register value tried; trim_range selects which of the
// MCU's calibration bands that value falls in.
type TrimSample struct {
	TrimAdj, TrimRange byte
	Counter            float64
}

// TrimBracket is the result of choosing which adjacent coarse pair
// brackets a target counter: an interpolated trim_adj value to center
// the fine round on, and the trim_range byte shared by that bracket.
type TrimBracket struct {
	TrimAdj   int
	TrimRange byte
}

// ChooseRange finds the adjacent pair of coarse samples (by array
// position, sent and returned in a fixed order, not sorted by Counter)
// whose measured counters bracket target, and linearly interpolates the
// trim_adj value that would hit target exactly. It reports an error if
// no adjacent pair brackets target: the MCU's RC oscillator cannot be
// trimmed to the requested frequency. Ported from choose_range's None
// path (original source), which raises "frequency trimming
// unsuccessful" when this happens.
func ChooseRange(samples []TrimSample, target float64) (TrimBracket, error) {
	for i := 0; i < len(samples)-1; i++ {
		a, b := samples[i], samples[i+1]
		bracketed := (a.Counter <= target && b.Counter >= target) ||
			(b.Counter <= target && a.Counter >= target)
		if !bracketed {
			continue
		}
		if b.Counter == a.Counter {
			return TrimBracket{TrimAdj: int(a.TrimAdj), TrimRange: b.TrimRange}, nil
		}
		m := (float64(b.TrimAdj) - float64(a.TrimAdj)) / (b.Counter - a.Counter)
		n := float64(a.TrimAdj) - m*a.Counter
		trim := int(math.Round(m*target + n))
		return TrimBracket{TrimAdj: trim, TrimRange: b.TrimRange}, nil
	}
	return TrimBracket{}, fmt.Errorf("bsl: trim: frequency trimming unsuccessful")
}

// ClosestFineTrim selects, from a fine-trim round, the sample whose
// measured counter is closest to target (§4.4.3 step 5).
func ClosestFineTrim(samples []TrimSample, target float64) TrimSample {
	best := samples[0]
	bestDelta := math.Abs(best.Counter - target)
	for _, s := range samples[1:] {
		if d := math.Abs(s.Counter - target); d < bestDelta {
			best, bestDelta = s, d
		}
	}
	return best
}

// TargetCounters computes the user and programming-frequency target
// counters from the measured ratio (§4.4.3 step 1). programFreqHz is
// the fixed 22.1184 MHz programming frequency.
func TargetCounters(userSpeedHz float64, measuredRatio float64, programFreqHz float64) (targetUser, targetProg float64) {
	return math.Round(userSpeedHz * measuredRatio), math.Round(programFreqHz * measuredRatio)
}

// MeasuredRatio is freq_counter / mcu_clock_hz, the conversion factor
// between a raw counter sample and a frequency in Hz.
func MeasuredRatio(freqCounter, mcuClockHz float64) float64 {
	if mcuClockHz == 0 {
		return 0
	}
	return freqCounter / mcuClockHz
}

// ProgrammingFrequencyHz is the fixed frequency used for flash writes
// (§4.4.3): chosen because it yields low-error baud divisors.
const ProgrammingFrequencyHz = 22118400

// ExternalClockDivisor computes the direct baud divisor used when the
// target is already in external-clock mode (15-series only, §4.4.3):
// 65535 - clk/baud/4.
func ExternalClockDivisor(clkHz float64, baud int) int {
	return 65535 - int(math.Round(clkHz/float64(baud)/4))
}

// TransferDivisor computes program_speed / target_baud for 15-series
// magics with no hardware UART, or program_speed / (target_baud * 4)
// otherwise (§4.4.3).
func TransferDivisor(programSpeedHz float64, targetBaud int, noHardwareUART bool) float64 {
	if noHardwareUART {
		return programSpeedHz / float64(targetBaud)
	}
	return programSpeedHz / (float64(targetBaud) * 4)
}
