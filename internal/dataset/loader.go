package dataset

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gota/gota/dataframe"
	"github.com/xuri/excelize/v2"

	apperrors "edacli/internal/errors"
	"edacli/internal/files"
)

// MissingTokens are the cell values loaded as missing.
var MissingTokens = []string{"", "NA", "NaN", "null", "<nil>"}

// LoadOptions tunes Load.
type LoadOptions struct {
	// Sheet selects the XLSX sheet; the first sheet when empty.
	Sheet string
}

func loadOptions() []dataframe.LoadOption {
	return []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(MissingTokens),
	}
}

// Load reads the dataset at path, choosing the reader by file extension.
func Load(path string, opts LoadOptions) (dataframe.DataFrame, error) {
	format, ok := files.FormatOf(path)
	if !ok {
		return dataframe.DataFrame{}, apperrors.NewAppValidationError(
			fmt.Sprintf("unsupported dataset format: %s", path))
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return dataframe.DataFrame{}, apperrors.NewNotFoundError(fmt.Sprintf("dataset %q", path), err)
		}
		return dataframe.DataFrame{}, apperrors.NewStorageError("open dataset", err).WithContext("path", path)
	}
	defer f.Close()

	df, err := Read(f, format, opts)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			appErr.WithContext("path", path)
		}
		return dataframe.DataFrame{}, err
	}
	return df, nil
}

// Read parses a dataset of the given format from r.
func Read(r io.Reader, format files.Format, opts LoadOptions) (dataframe.DataFrame, error) {
	var df dataframe.DataFrame
	switch format {
	case files.FormatCSV:
		df = dataframe.ReadCSV(r, loadOptions()...)
	case files.FormatJSON:
		df = dataframe.ReadJSON(r, loadOptions()...)
	case files.FormatXLSX:
		records, err := readSheet(r, opts.Sheet)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		df = dataframe.LoadRecords(records, loadOptions()...)
	default:
		return dataframe.DataFrame{}, apperrors.NewAppValidationError(
			fmt.Sprintf("unsupported dataset format: %s", format))
	}

	if df.Err != nil {
		return dataframe.DataFrame{}, apperrors.NewParsingError(
			fmt.Sprintf("failed to parse %s dataset", format), df.Err)
	}
	return df, nil
}

// readSheet returns the rows of one worksheet padded to the header width.
func readSheet(r io.Reader, sheet string) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.NewParsingError("workbook has no sheets", nil)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.NewParsingError(fmt.Sprintf("failed to read sheet %q", sheet), err).
			WithContext("sheet", sheet)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewParsingError(fmt.Sprintf("sheet %q is empty", sheet), nil).
			WithContext("sheet", sheet)
	}

	width := len(rows[0])
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		record := make([]string, width)
		copy(record, row)
		records = append(records, record)
	}
	return records, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
