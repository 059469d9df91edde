package univariate

import (
	"strconv"

	"gonum.org/v1/plot"
)

// plainTicks places ticks like plot.DefaultTicks but labels them in plain
// decimal notation, never scientific and never relative to an offset.
type plainTicks struct{}

var _ plot.Ticker = plainTicks{}

func (plainTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label == "" {
			continue
		}
		ticks[i].Label = plainLabel(ticks[i].Label, ticks[i].Value)
	}
	return ticks
}

// plainLabel rewrites a rounded tick label such as "1.5e+06" as "1500000".
// The label is reparsed so the rounding of the default ticker is kept.
func plainLabel(label string, value float64) string {
	v, err := strconv.ParseFloat(label, 64)
	if err != nil {
		v = value
	}
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
