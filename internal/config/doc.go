// Package config loads edacli configuration.
//
// Values are layered, lowest precedence first:
//
//  1. Default()
//  2. a YAML file (EDA_CONFIG_FILE, ./eda.yaml or ./configs/eda.yaml)
//  3. EDA_* environment variables, e.g. EDA_SERVER_PORT=9000,
//     EDA_LOGGING_LEVEL=debug, EDA_PATHS_DATA_DIR=/srv/datasets,
//     EDA_SECURITY_RATE_LIMIT_RPS=5
//
// Relative directories are resolved against the working directory by
// Config.ResolvePaths.
package config
