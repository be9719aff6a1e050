// Package version exposes build metadata injected through -ldflags.
package version

//nolint:gochecknoglobals // These values are overridden at build time via -ldflags "-X".
var (
	// Version is the semantic version of the build.
	Version = "0.1.0"
	// Commit is the git commit the binary was built from.
	Commit = "none"
	// BuildTime is the time the binary was built.
	BuildTime = "unknown"
)

// Short returns the bare version string.
func Short() string {
	return Version
}

// Full returns the version together with the commit and build time.
func Full() string {
	return "version: " + Version + ", commit: " + Commit + ", built at: " + BuildTime
}

// UserAgent returns the default User-Agent sent by the CLI.
func UserAgent() string {
	return "http-pprint/" + Version
}
