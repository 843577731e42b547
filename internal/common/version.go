package common

// Version is injected at build time via ldflags and reported in the
// User-Agent of outbound API requests.
var Version = "dev"

// GetVersion returns the semantic version string
func GetVersion() string {
	return Version
}
