// Package files discovers dataset files under a base directory.
//
// Discovery recognises CSV, XLSX and JSON files by extension and resolves
// dataset names to paths without ever leaving the base directory.
//
// Example usage:
//
//	discovery := files.NewDiscovery("data")
//	datasets, err := discovery.FindDatasets()
//	info, err := discovery.Resolve("housing.csv")
package files
