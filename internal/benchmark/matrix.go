package benchmark

import (
	"context"

	"github.com/moonbit-community/Wasmnizer-ts/internal/config"
	"github.com/moonbit-community/Wasmnizer-ts/internal/metrics"
	"github.com/moonbit-community/Wasmnizer-ts/internal/toolchain"
	"github.com/moonbit-community/Wasmnizer-ts/internal/ui"
)

// Matrix runs one benchmark under every enabled runtime.
type Matrix struct {
	Sampler   *Sampler
	Toolchain *toolchain.Toolchain
	Printer   *ui.Printer
	Metrics   *metrics.Metrics
	Dir       string
	Filter    config.Set
}

// Run samples each runtime in declared order. Filtered runtimes print a
// skip notice and produce no Measurement.
func (m *Matrix) Run(ctx context.Context, u Unit) []Measurement {
	var out []Measurement
	for _, rt := range Runtimes {
		if !m.Filter.Allows(string(rt.ID)) {
			m.Printer.Skip("Skip %s due to argument filter.", rt.Display)
			continue
		}
		if ctx.Err() != nil {
			break
		}

		m.Printer.Printf("%s ... \t", rt.Display)
		meas := m.Sampler.Sample(ctx, rt.ID, rt.Command(m.Toolchain, u, m.Dir))
		if meas.Available() {
			m.Printer.Println(formatMillis(meas.Millis()))
		} else {
			m.Printer.Failure("unavailable")
		}
		if m.Metrics != nil {
			m.Metrics.ObserveMeasurement(u.Name, string(rt.ID), meas.Millis(), meas.Available())
		}
		out = append(out, meas)
	}
	return out
}
