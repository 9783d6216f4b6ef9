// File: internal/flags/flags.go
package flags

// Centralized definitions for CLI flags used across the application

const (
	// Provider flags select the storage backend an object operation targets
	Provider      = "provider"
	ProviderShort = "p"

	// Dest flags give a key prefix under which uploaded files keep their base names
	Dest = "dest"

	// Key flags give the exact object key for a single-file upload
	Key      = "key"
	KeyShort = "k"

	// Concurrency flags bound the number of uploads in flight
	Concurrency      = "concurrency"
	ConcurrencyShort = "c"

	// Force flags are used to bypass interactive confirmation prompts for destructive operations
	Force      = "force"
	ForceShort = "f"

	// Output flags choose the rendering of listings (text or yaml)
	Output      = "output"
	OutputShort = "o"

	// Debug flags are used to enable verbose logging
	Debug      = "debug"
	DebugShort = "d"

	// Config flags point at an alternate configuration file
	Config = "config"

	// MetricsFile flags write Prometheus metrics in text format when the command exits
	MetricsFile = "metrics-file"
)
