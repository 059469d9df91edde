// Package exporter writes analysis summaries to CSV and XLSX files.
//
// Summaries are first converted to a Table, a named header plus typed rows,
// which both writers consume:
//
// CSVWriter: one table per CSV file, with an optional UTF-8 BOM for Excel
// compatibility.
//
// ExcelWriter: several tables as sheets of one workbook, built with excelize.
//
// Example usage:
//
//	tables := []exporter.Table{
//		exporter.ColumnNullsTable(columnSummary),
//		exporter.RowNullsTable(rowSummary),
//	}
//	path, err := exporter.NewCSVWriter(paths, logger).WriteTable("column_nulls.csv", tables[0], true)
//	path, err = exporter.NewExcelWriter(paths, logger).WriteWorkbook("summary.xlsx", tables...)
//
// Relative file paths resolve inside the configured output directory.
// Figures are never exported here.
package exporter
