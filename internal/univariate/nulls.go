package univariate

import (
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	apperrors "edacli/internal/errors"
)

// Column names of the tabular summaries.
const (
	ColColumn         = "column"
	ColRowsMissing    = "rows_missing"
	ColColumnsMissing = "columns_missing"
	ColPercentMissing = "percent_missing"
	ColCount          = "count"
)

// ColumnNulls is the missing value tally of one column.
type ColumnNulls struct {
	Column         string  `json:"column"`
	RowsMissing    int     `json:"rows_missing"`
	PercentMissing float64 `json:"percent_missing"`
}

// ColumnNullSummary holds one entry per dataset column, in column order.
type ColumnNullSummary []ColumnNulls

// Lookup returns the entry for column.
func (s ColumnNullSummary) Lookup(column string) (ColumnNulls, bool) {
	for _, c := range s {
		if c.Column == column {
			return c, true
		}
	}
	return ColumnNulls{}, false
}

// DataFrame returns the summary as a frame with columns column,
// rows_missing and percent_missing.
func (s ColumnNullSummary) DataFrame() dataframe.DataFrame {
	names := make([]string, len(s))
	counts := make([]int, len(s))
	percents := make([]float64, len(s))
	for i, c := range s {
		names[i] = c.Column
		counts[i] = c.RowsMissing
		percents[i] = c.PercentMissing
	}
	return dataframe.New(
		series.New(names, series.String, ColColumn),
		series.New(counts, series.Int, ColRowsMissing),
		series.New(percents, series.Float, ColPercentMissing),
	)
}

// SummarizeColumnNulls counts the missing values of every column.
// The percentage is a fraction in [0,1] and is 0 for a dataset without rows.
func SummarizeColumnNulls(df dataframe.DataFrame) (ColumnNullSummary, error) {
	if df.Err != nil {
		return nil, apperrors.NewParsingError("dataset is unusable", df.Err)
	}

	nrow := df.Nrow()
	summary := make(ColumnNullSummary, 0, df.Ncol())
	for _, name := range df.Names() {
		missing := 0
		for _, na := range df.Col(name).IsNaN() {
			if na {
				missing++
			}
		}
		summary = append(summary, ColumnNulls{
			Column:         name,
			RowsMissing:    missing,
			PercentMissing: fraction(missing, nrow),
		})
	}
	return summary, nil
}

// RowNulls is the missing value tally of one row.
type RowNulls struct {
	Row            int     `json:"row"`
	ColumnsMissing int     `json:"columns_missing"`
	PercentMissing float64 `json:"percent_missing"`
}

// RowNullGroup counts the rows sharing one (columns_missing,
// percent_missing) pair.
type RowNullGroup struct {
	ColumnsMissing int     `json:"columns_missing"`
	PercentMissing float64 `json:"percent_missing"`
	Count          int     `json:"count"`
}

// RowNullSummary is ordered ascending by ColumnsMissing then PercentMissing.
type RowNullSummary []RowNullGroup

// DataFrame returns the summary as a frame with columns columns_missing,
// percent_missing and count.
func (s RowNullSummary) DataFrame() dataframe.DataFrame {
	missing := make([]int, len(s))
	percents := make([]float64, len(s))
	counts := make([]int, len(s))
	for i, g := range s {
		missing[i] = g.ColumnsMissing
		percents[i] = g.PercentMissing
		counts[i] = g.Count
	}
	return dataframe.New(
		series.New(missing, series.Int, ColColumnsMissing),
		series.New(percents, series.Float, ColPercentMissing),
		series.New(counts, series.Int, ColCount),
	)
}

// Total returns the number of rows across all groups.
func (s RowNullSummary) Total() int {
	total := 0
	for _, g := range s {
		total += g.Count
	}
	return total
}

// RowNullFrame returns per-row tallies as a frame with columns
// columns_missing and percent_missing.
func RowNullFrame(rows []RowNulls) dataframe.DataFrame {
	missing := make([]int, len(rows))
	percents := make([]float64, len(rows))
	for i, r := range rows {
		missing[i] = r.ColumnsMissing
		percents[i] = r.PercentMissing
	}
	return dataframe.New(
		series.New(missing, series.Int, ColColumnsMissing),
		series.New(percents, series.Float, ColPercentMissing),
	)
}

// CountRowNulls tallies the missing values of every row, in row order.
func CountRowNulls(df dataframe.DataFrame) ([]RowNulls, error) {
	if df.Err != nil {
		return nil, apperrors.NewParsingError("dataset is unusable", df.Err)
	}

	nrow, ncol := df.Nrow(), df.Ncol()
	missing := make([]int, nrow)
	for _, name := range df.Names() {
		for i, na := range df.Col(name).IsNaN() {
			if na {
				missing[i]++
			}
		}
	}

	rows := make([]RowNulls, nrow)
	for i, m := range missing {
		rows[i] = RowNulls{
			Row:            i,
			ColumnsMissing: m,
			PercentMissing: fraction(m, ncol),
		}
	}
	return rows, nil
}

// SummarizeRowNulls groups rows by their (columns_missing, percent_missing)
// pair and counts each group.
func SummarizeRowNulls(df dataframe.DataFrame) (RowNullSummary, error) {
	rows, err := CountRowNulls(df)
	if err != nil {
		return nil, err
	}
	return GroupRowNulls(rows), nil
}

// GroupRowNulls collapses per-row tallies into sorted groups.
func GroupRowNulls(rows []RowNulls) RowNullSummary {
	type key struct {
		missing int
		percent float64
	}

	counts := make(map[key]int)
	for _, r := range rows {
		counts[key{r.ColumnsMissing, r.PercentMissing}]++
	}

	summary := make(RowNullSummary, 0, len(counts))
	for k, n := range counts {
		summary = append(summary, RowNullGroup{
			ColumnsMissing: k.missing,
			PercentMissing: k.percent,
			Count:          n,
		})
	}

	sort.Slice(summary, func(i, j int) bool {
		if summary[i].ColumnsMissing != summary[j].ColumnsMissing {
			return summary[i].ColumnsMissing < summary[j].ColumnsMissing
		}
		return summary[i].PercentMissing < summary[j].PercentMissing
	})
	return summary
}

func fraction(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
