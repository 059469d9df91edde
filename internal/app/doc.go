// Package app wires the analysis server together: configuration, logging,
// telemetry, the dataset store, services, the chi router and the HTTP server.
//
// # Initialization Flow
//
//  1. Resolve and create the data, output and log directories
//  2. Initialize OpenTelemetry and the analysis metrics
//  3. Create the dataset store and the analysis and health services
//  4. Set up middleware and routes
//  5. Create the HTTP server
//
// # Usage
//
//	cfg, err := config.Load()
//	application, err := app.NewApplication(cfg, nil)
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	if err := application.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Graceful Shutdown
//
// Run returns once ctx is cancelled or serving fails. Active requests are
// completed and telemetry providers are flushed before it returns.
//
// # Error Handling
//
// All initialization errors are returned to the caller. The package never
// calls os.Exit.
package app
