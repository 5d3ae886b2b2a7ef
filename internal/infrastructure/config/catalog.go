package config

// CatalogConfig selects the stat and price tables
type CatalogConfig struct {
	// YAML file overriding the embedded tables; empty uses the embedded ones
	Path string `mapstructure:"path"`
}
