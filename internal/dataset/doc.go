// Package dataset loads tabular datasets into gota dataframes and serves
// them from a data directory.
//
// CSV, XLSX and JSON files are supported. Empty cells and the tokens in
// MissingTokens load as missing values. Column types are detected from the
// data; a column with no values at all loads as a string column.
package dataset
