package version

import "fmt"

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// String formats the build identity for logs and session metadata.
func String() string {
	return fmt.Sprintf("%s (%s, %s)", Version, GitSHA, BuildTime)
}
