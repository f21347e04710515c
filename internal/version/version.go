// internal/version/version.go
package version

// Version is overridden at release time via -ldflags "-X polycore/internal/version.Version=...".
var Version = "0.3.0-dev"
