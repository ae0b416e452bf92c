package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 60
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "/usr/local/var/meshi/data/recipes.csv"
	}
	if cfg.Catalog.Table == "" {
		cfg.Catalog.Table = "recipes"
	}
	if cfg.Recommend.DefaultCount == 0 {
		cfg.Recommend.DefaultCount = 5
	}
	if cfg.Recommend.MaxCount == 0 {
		cfg.Recommend.MaxCount = 100
	}
}
