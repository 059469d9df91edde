package univariate

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "edacli/internal/errors"
	"edacli/internal/shared/testutil"
)

func TestDescribe(t *testing.T) {
	df := testutil.FrameFromCSV(t, `
v,w
1,
2,
3,
4,
`)

	desc, err := Describe(df, []string{"v"})
	require.NoError(t, err)
	require.Len(t, desc, 1)

	s := desc[0]
	assert.Equal(t, "v", s.Column)
	assert.Equal(t, 4, s.Count)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, 1.2909944487358056, s.Std, 1e-12)
	assert.InDelta(t, 1.0, s.Min, 1e-12)
	assert.InDelta(t, 1.75, s.Q25, 1e-12)
	assert.InDelta(t, 2.5, s.Median, 1e-12)
	assert.InDelta(t, 3.25, s.Q75, 1e-12)
	assert.InDelta(t, 4.0, s.Max, 1e-12)
}

func TestDescribe_DefaultsToNumericColumns(t *testing.T) {
	df := testutil.FrameFromCSV(t, `
label,x,y
a,1,2.5
b,2,
`)

	desc, err := Describe(df, nil)
	require.NoError(t, err)
	require.Len(t, desc, 2)
	assert.Equal(t, "x", desc[0].Column)
	assert.Equal(t, "y", desc[1].Column)
	assert.Equal(t, 1, desc[1].Count)
	assert.True(t, math.IsNaN(desc[1].Std))
}

func TestDescribe_Errors(t *testing.T) {
	df := testutil.FrameFromCSV(t, testutil.HousingCSV)

	_, err := Describe(df, []string{"area", "pool"})
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
}

func TestDescribe_AllMissingColumn(t *testing.T) {
	df := testutil.FrameFromCSV(t, `
x,y
1,
2,
`)

	desc, err := Describe(df, []string{"y"})
	require.NoError(t, err)
	require.Len(t, desc, 1)
	assert.Zero(t, desc[0].Count)
	assert.True(t, math.IsNaN(desc[0].Mean))

	data, err := json.Marshal(desc)
	require.NoError(t, err)

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Nil(t, decoded[0]["mean"])
	assert.Equal(t, "y", decoded[0]["column"])
}

func TestDescription_DataFrame(t *testing.T) {
	df := testutil.FrameFromCSV(t, testutil.HousingCSV)

	desc, err := Describe(df, []string{"bedrooms", "area"})
	require.NoError(t, err)

	frame := desc.DataFrame()
	require.NoError(t, frame.Err)
	assert.Equal(t, DescribeHeaders, frame.Names())
	assert.Equal(t, 2, frame.Nrow())
	assert.Equal(t, []string{"bedrooms", "area"}, frame.Col("column").Records())
}

func TestLinearQuantile(t *testing.T) {
	sorted := []float64{10}
	assert.Equal(t, 10.0, linearQuantile(0.25, sorted))

	sorted = []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 2.0, linearQuantile(0.25, sorted))
	assert.Equal(t, 3.0, linearQuantile(0.5, sorted))
	assert.Equal(t, 4.0, linearQuantile(0.75, sorted))
}
