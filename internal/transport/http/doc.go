// Package http implements the HTTP handlers of the analysis server.
// Handlers stay thin: they parse and validate the request, call the
// analysis service and format the response.
//
// # Routes
//
//	GET  /api/health, /api/health/ready, /api/health/live, /api/version
//	GET  /api/datasets
//	GET  /api/datasets/{name}/nulls/columns
//	GET  /api/datasets/{name}/nulls/rows
//	GET  /api/datasets/{name}/describe?columns=a,b
//	GET  /api/datasets/{name}/plots/hist?columns=a,b
//	GET  /api/datasets/{name}/plots/box?columns=a,b
//	GET  /api/datasets/{name}/plots/single?feature=x&title=t&bins=50
//	GET  /api/datasets/{name}/plots/nulls
//	POST /api/datasets/{name}/export?format=xlsx
//	GET  /metrics
//
// Plot routes answer with image/png. Everything else is JSON.
//
// # Error Handling
//
// All errors follow RFC 7807 Problem Details and are written by
// errors.ErrorHandler:
//
//	{
//	    "type": "/errors/column/not-found",
//	    "title": "Resource Not Found",
//	    "status": 404,
//	    "detail": "column \"garage\" not found",
//	    "instance": "/api/datasets/housing.csv/plots/hist"
//	}
//
// # Testing
//
// Handlers are tested with httptest against a mocked AnalysisServiceInterface.
package http
