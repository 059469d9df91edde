package univariate

import (
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "edacli/internal/errors"
	"edacli/internal/shared/testutil"
)

const abcCSV = `
A,B,C
1,x,10
,y,20
3,z,30
,w,40
5,v,50
`

func TestSummarizeColumnNulls(t *testing.T) {
	df := testutil.FrameFromCSV(t, abcCSV)

	summary, err := SummarizeColumnNulls(df)
	require.NoError(t, err)
	require.Len(t, summary, 3)

	a, ok := summary.Lookup("A")
	require.True(t, ok)
	assert.Equal(t, 2, a.RowsMissing)
	assert.InDelta(t, 0.4, a.PercentMissing, 1e-12)

	for _, name := range []string{"B", "C"} {
		c, ok := summary.Lookup(name)
		require.True(t, ok)
		assert.Zero(t, c.RowsMissing)
		assert.Zero(t, c.PercentMissing)
	}

	_, ok = summary.Lookup("missing")
	assert.False(t, ok)
}

func TestSummarizeColumnNulls_PreservesColumnOrder(t *testing.T) {
	df := testutil.FrameFromCSV(t, testutil.HousingCSV)

	summary, err := SummarizeColumnNulls(df)
	require.NoError(t, err)

	got := make([]string, len(summary))
	for i, c := range summary {
		got[i] = c.Column
	}
	assert.Equal(t, df.Names(), got)

	want := map[string]int{"bedrooms": 0, "bathrooms": 1, "area": 1, "tax_value": 1, "year_built": 1}
	for _, c := range summary {
		assert.Equal(t, want[c.Column], c.RowsMissing, c.Column)
		assert.InDelta(t, float64(want[c.Column])/5, c.PercentMissing, 1e-12, c.Column)
	}
}

func TestSummarizeColumnNulls_NoRows(t *testing.T) {
	df := dataframe.New(
		series.New([]float64{}, series.Float, "a"),
		series.New([]string{}, series.String, "b"),
	)
	require.NoError(t, df.Err)

	summary, err := SummarizeColumnNulls(df)
	require.NoError(t, err)
	require.Len(t, summary, 2)
	for _, c := range summary {
		assert.Zero(t, c.RowsMissing)
		assert.Equal(t, 0.0, c.PercentMissing)
	}
}

func TestSummarizeColumnNulls_BrokenFrame(t *testing.T) {
	df := dataframe.New()

	_, err := SummarizeColumnNulls(df)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestColumnNullSummary_DataFrame(t *testing.T) {
	df := testutil.FrameFromCSV(t, abcCSV)
	summary, err := SummarizeColumnNulls(df)
	require.NoError(t, err)

	frame := summary.DataFrame()
	require.NoError(t, frame.Err)
	assert.Equal(t, []string{"column", "rows_missing", "percent_missing"}, frame.Names())
	assert.Equal(t, []string{"A", "B", "C"}, frame.Col("column").Records())

	counts, err := frame.Col("rows_missing").Int()
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0, 0}, counts)
	assert.InDeltaSlice(t, []float64{0.4, 0, 0}, frame.Col("percent_missing").Float(), 1e-12)
}

const fourRowCSV = `
a,b,c
,2,3
4,,6
7,8,9
1,2,3
`

func TestSummarizeRowNulls(t *testing.T) {
	df := testutil.FrameFromCSV(t, fourRowCSV)

	summary, err := SummarizeRowNulls(df)
	require.NoError(t, err)
	require.Len(t, summary, 2)

	assert.Equal(t, RowNullGroup{ColumnsMissing: 0, PercentMissing: 0, Count: 2}, summary[0])
	assert.Equal(t, 1, summary[1].ColumnsMissing)
	assert.InDelta(t, 1.0/3, summary[1].PercentMissing, 1e-12)
	assert.Equal(t, 2, summary[1].Count)
	assert.Equal(t, 4, summary.Total())
}

func TestCountRowNulls(t *testing.T) {
	df := testutil.FrameFromCSV(t, testutil.HousingCSV)

	rows, err := CountRowNulls(df)
	require.NoError(t, err)
	require.Len(t, rows, 5)

	want := []int{0, 1, 2, 1, 0}
	for i, r := range rows {
		assert.Equal(t, i, r.Row)
		assert.Equal(t, want[i], r.ColumnsMissing, "row %d", i)
		assert.InDelta(t, float64(want[i])/5, r.PercentMissing, 1e-12)
	}

	frame := RowNullFrame(rows)
	require.NoError(t, frame.Err)
	assert.Equal(t, []string{"columns_missing", "percent_missing"}, frame.Names())
	assert.Equal(t, 5, frame.Nrow())
}

func TestSummarizeRowNulls_SortedAscending(t *testing.T) {
	df := testutil.FrameFromCSV(t, testutil.HousingCSV)

	summary, err := SummarizeRowNulls(df)
	require.NoError(t, err)

	assert.Equal(t, RowNullSummary{
		{ColumnsMissing: 0, PercentMissing: 0, Count: 2},
		{ColumnsMissing: 1, PercentMissing: 0.2, Count: 2},
		{ColumnsMissing: 2, PercentMissing: 0.4, Count: 1},
	}, summary)

	frame := summary.DataFrame()
	require.NoError(t, frame.Err)
	assert.Equal(t, []string{"columns_missing", "percent_missing", "count"}, frame.Names())
}

func TestGroupRowNulls_OrdersByCountThenPercent(t *testing.T) {
	rows := []RowNulls{
		{Row: 0, ColumnsMissing: 2, PercentMissing: 0.5},
		{Row: 1, ColumnsMissing: 1, PercentMissing: 0.5},
		{Row: 2, ColumnsMissing: 1, PercentMissing: 0.25},
		{Row: 3, ColumnsMissing: 2, PercentMissing: 0.5},
	}

	assert.Equal(t, RowNullSummary{
		{ColumnsMissing: 1, PercentMissing: 0.25, Count: 1},
		{ColumnsMissing: 1, PercentMissing: 0.5, Count: 1},
		{ColumnsMissing: 2, PercentMissing: 0.5, Count: 2},
	}, GroupRowNulls(rows))
}

func TestSummarizers_NoMissingValues(t *testing.T) {
	df := testutil.FrameFromCSV(t, `
x,y
1,2
3,4
`)

	cols, err := SummarizeColumnNulls(df)
	require.NoError(t, err)
	for _, c := range cols {
		assert.Equal(t, 0.0, c.PercentMissing)
	}

	rows, err := SummarizeRowNulls(df)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, RowNullGroup{ColumnsMissing: 0, PercentMissing: 0, Count: 2}, rows[0])
}

func TestSummarizers_Idempotent(t *testing.T) {
	df := testutil.FrameFromCSV(t, testutil.HousingCSV)
	before := df.Records()

	c1, err := SummarizeColumnNulls(df)
	require.NoError(t, err)
	c2, err := SummarizeColumnNulls(df)
	require.NoError(t, err)
	assert.Equal(t, c1, c2)

	r1, err := SummarizeRowNulls(df)
	require.NoError(t, err)
	r2, err := SummarizeRowNulls(df)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)

	assert.Equal(t, before, df.Records())
}

func TestSummarizeRowNulls_EmptyFrame(t *testing.T) {
	summary, err := SummarizeRowNulls(dataframe.DataFrame{})
	require.NoError(t, err)
	assert.Empty(t, summary)

	frame := summary.DataFrame()
	require.NoError(t, frame.Err)
	assert.Equal(t, 0, frame.Nrow())
}
