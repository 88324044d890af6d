// Package config provides configuration management for the catalog manager.
//
// Values come from struct tag defaults, an optional .env file and the
// environment, in increasing priority. Nested keys map to upper case
// environment variables joined by underscores (data.backend -> DATA_BACKEND).
//
// # Configuration Structure
//
//   - Server: HTTP port, API key and body limit
//   - Log: level and format
//   - Database: collection database driver and connection
//   - Storage: S3/MinIO credentials for the s3 data backend
//   - Data: data file backend, directories, overrides file and cache TTL
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Data.Dir)
package config
