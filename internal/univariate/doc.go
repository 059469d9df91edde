// Package univariate implements the univariate exploratory analysis helpers:
// subplot grids, histogram and boxplot renderers, a single variable dual
// view, descriptive statistics and missing value summaries.
//
// Datasets are gota dataframes and are never mutated. Figures are drawn with
// gonum.org/v1/plot onto a per-call canvas and handed to a Backend, so there
// is no shared "current figure" and renderers may be used concurrently.
//
// Grid sizing keeps the historical arithmetic: n columns are laid out on
// n/3+1 rows of three cells, which leaves a trailing empty row whenever n is
// a multiple of three.
package univariate
