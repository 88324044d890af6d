package datastore

// Config holds configuration for the catalog data files.
type Config struct {
	// Backend selects where data files live: "fs" or "s3".
	Backend string `mapstructure:"backend" default:"fs"`
	// Dir is the root directory for the fs backend.
	Dir string `mapstructure:"dir" default:"data"`
	// Prefix is the object key prefix for the s3 backend.
	Prefix string `mapstructure:"prefix" default:""`
	// ExportDir is where exports are written, relative to the store root.
	ExportDir string `mapstructure:"export_dir" default:"export"`
	// OverridesPath points to a YAML overrides file. Empty uses the built-in set.
	OverridesPath string `mapstructure:"overrides_path" default:""`
	// CacheTTLSeconds controls how long a loaded snapshot is reused.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

const (
	BackendFS = "fs"
	BackendS3 = "s3"
)
