package testutil

import (
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
)

// MissingTokens are the cell values fixtures treat as missing.
var MissingTokens = []string{"", "NA", "NaN", "null", "<nil>"}

// FrameFromCSV builds a dataframe from inline CSV text with type detection.
// Empty cells and the usual NA spellings become missing elements.
func FrameFromCSV(t *testing.T, csvText string) dataframe.DataFrame {
	t.Helper()

	df := dataframe.ReadCSV(strings.NewReader(strings.TrimSpace(csvText)),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(MissingTokens),
	)
	if df.Err != nil {
		t.Fatalf("fixture frame: %v", df.Err)
	}
	return df
}

// HousingCSV is a small numeric fixture with scattered missing values.
const HousingCSV = `
bedrooms,bathrooms,area,tax_value,year_built
3,2,1500,250000,1990
4,,2100,410000,2005
2,1,,180000,
3,2.5,1750,,1978
5,3,3200,720000,2015
`
