package services

import "errors"

// Analysis service errors
var (
	ErrNoFigure       = errors.New("analysis produced no figure")
	ErrUnknownFormat  = errors.New("unknown export format")
	ErrNoDatasetStore = errors.New("dataset store not configured")
)
