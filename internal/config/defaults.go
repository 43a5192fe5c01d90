package config

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Theme:      ThemeDark,
		VulnAPIURL: "http://127.0.0.1:8420/api/vulnerabilities",
		AutoEmbed: AutoEmbedConfig{
			MinWidth:  1024,
			CellWidth: 8,
		},
		Server: ServerConfig{
			Port: 8420,
		},
		NVD: NVDConfig{
			BaseURL:        "https://services.nvd.nist.gov/rest/json/cves/2.0/",
			Days:           7,
			ResultsPerPage: 50,
		},
	}
}
