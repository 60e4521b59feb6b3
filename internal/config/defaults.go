package config

// Defaults returns the built-in configuration values. Only the database
// URL has no default and must come from the file or the environment.
func Defaults() map[string]any {
	return map[string]any{
		"server.port":               3000,
		"server.maxHeaderBytes":     1 << 20,
		"server.timeout.read":       "5s",
		"server.timeout.write":      "10s",
		"server.timeout.idle":       "60s",
		"server.timeout.readHeader": "2s",
		"database.timeout":          "5s",
		"log.level":                 "info",
		"pprof.enabled":             false,
		"pprof.addr":                "localhost:6060",
		"shutdown.timeout":          "10s",
	}
}
