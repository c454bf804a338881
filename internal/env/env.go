package env

const AppName = "tagkit"

// Set at build time via -ldflags.
var (
	Version    = "0.1.0"
	CommitHash = "unknown"
	BuildTime  = "unknown"
)
