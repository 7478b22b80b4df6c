// Package buildinfo provides build-time version information.
//
// Variables are set via ldflags during build:
//
//	go build -ldflags "-X github.com/matzehuels/plotgrid/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/plotgrid/pkg/buildinfo.Commit=$(git rev-parse HEAD)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}

// CacheScope returns the key prefix for cached fragments. Rendering output
// can change between releases, so every build reads and writes its own
// entries. Development builds share one scope per commit.
func CacheScope() string {
	if Version == "dev" {
		return fmt.Sprintf("dev-%s:", shortCommit())
	}
	return Version + ":"
}

func shortCommit() string {
	if len(Commit) > 12 {
		return Commit[:12]
	}
	return Commit
}
