package exporter

import (
	"edacli/internal/univariate"
)

// Table is a named block of rows ready for export.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// Records returns the rows formatted as CSV strings.
func (t Table) Records() [][]string {
	records := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		record := make([]string, len(row))
		for j, v := range row {
			record[j] = formatCell(v)
		}
		records[i] = record
	}
	return records
}

// ColumnNullsTable converts a column-wise null summary.
func ColumnNullsTable(s univariate.ColumnNullSummary) Table {
	t := Table{
		Name:    "column_nulls",
		Headers: []string{univariate.ColColumn, univariate.ColRowsMissing, univariate.ColPercentMissing},
		Rows:    make([][]interface{}, 0, len(s)),
	}
	for _, c := range s {
		t.Rows = append(t.Rows, []interface{}{c.Column, c.RowsMissing, c.PercentMissing})
	}
	return t
}

// RowNullsTable converts a row-wise null summary.
func RowNullsTable(s univariate.RowNullSummary) Table {
	t := Table{
		Name:    "row_nulls",
		Headers: []string{univariate.ColColumnsMissing, univariate.ColPercentMissing, univariate.ColCount},
		Rows:    make([][]interface{}, 0, len(s)),
	}
	for _, g := range s {
		t.Rows = append(t.Rows, []interface{}{g.ColumnsMissing, g.PercentMissing, g.Count})
	}
	return t
}

// DescribeTable converts descriptive statistics.
func DescribeTable(d univariate.Description) Table {
	t := Table{
		Name:    "describe",
		Headers: univariate.DescribeHeaders,
		Rows:    make([][]interface{}, 0, len(d)),
	}
	for _, c := range d {
		t.Rows = append(t.Rows, []interface{}{
			c.Column, c.Count, c.Mean, c.Std, c.Min, c.Q25, c.Median, c.Q75, c.Max,
		})
	}
	return t
}
