package univariate

import (
	"encoding/json"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	apperrors "edacli/internal/errors"
)

// ColumnStats are the descriptive statistics of one numeric column.
// Statistics of a column without values are NaN.
type ColumnStats struct {
	Column string
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// MarshalJSON encodes NaN statistics as null.
func (c ColumnStats) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"column": c.Column,
		"count":  c.Count,
		"mean":   jsonFloat(c.Mean),
		"std":    jsonFloat(c.Std),
		"min":    jsonFloat(c.Min),
		"25%":    jsonFloat(c.Q25),
		"50%":    jsonFloat(c.Median),
		"75%":    jsonFloat(c.Q75),
		"max":    jsonFloat(c.Max),
	})
}

func jsonFloat(v float64) interface{} {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return v
}

// Description holds ColumnStats in the requested column order.
type Description []ColumnStats

// DescribeHeaders are the column names of Description.DataFrame.
var DescribeHeaders = []string{"column", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}

// DataFrame returns the description as a frame, one row per column.
func (d Description) DataFrame() dataframe.DataFrame {
	names := make([]string, len(d))
	counts := make([]int, len(d))
	stats := make([][]float64, 7)
	for i := range stats {
		stats[i] = make([]float64, len(d))
	}
	for i, c := range d {
		names[i] = c.Column
		counts[i] = c.Count
		for j, v := range c.values() {
			stats[j][i] = v
		}
	}

	cols := []series.Series{
		series.New(names, series.String, DescribeHeaders[0]),
		series.New(counts, series.Int, DescribeHeaders[1]),
	}
	for j, s := range stats {
		cols = append(cols, series.New(s, series.Float, DescribeHeaders[j+2]))
	}
	return dataframe.New(cols...)
}

func (c ColumnStats) values() []float64 {
	return []float64{c.Mean, c.Std, c.Min, c.Q25, c.Median, c.Q75, c.Max}
}

// Describe computes count, mean, sample standard deviation, min, quartiles
// and max of each column, ignoring missing values. An empty column list
// describes every numeric column of df.
func Describe(df dataframe.DataFrame, columns []string) (Description, error) {
	if df.Err != nil {
		return nil, apperrors.NewParsingError("dataset is unusable", df.Err)
	}

	if len(columns) == 0 {
		columns = NumericColumns(df)
	}

	desc := make(Description, 0, len(columns))
	for _, column := range columns {
		values, err := NumericValues(df, column)
		if err != nil {
			return nil, err
		}
		desc = append(desc, describeValues(column, values))
	}
	return desc, nil
}

// NumericColumns returns the names of the int and float columns of df.
func NumericColumns(df dataframe.DataFrame) []string {
	var names []string
	types := df.Types()
	for i, name := range df.Names() {
		if types[i] == series.Int || types[i] == series.Float {
			names = append(names, name)
		}
	}
	return names
}

func describeValues(column string, values []float64) ColumnStats {
	nan := math.NaN()
	cs := ColumnStats{Column: column, Count: len(values)}
	cs.Mean, cs.Std, cs.Min, cs.Q25, cs.Median, cs.Q75, cs.Max = nan, nan, nan, nan, nan, nan, nan
	if len(values) == 0 {
		return cs
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	cs.Mean = stat.Mean(sorted, nil)
	if len(sorted) > 1 {
		cs.Std = stat.StdDev(sorted, nil)
	}
	cs.Min = floats.Min(sorted)
	cs.Max = floats.Max(sorted)
	cs.Q25 = linearQuantile(0.25, sorted)
	cs.Median = linearQuantile(0.5, sorted)
	cs.Q75 = linearQuantile(0.75, sorted)
	return cs
}

// linearQuantile interpolates between the closest ranks of sorted values,
// position (n-1)*p.
func linearQuantile(p float64, sorted []float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := math.Floor(h)
	hi := math.Ceil(h)
	vlo := sorted[int(lo)]
	return vlo + (h-lo)*(sorted[int(hi)]-vlo)
}
