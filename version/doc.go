// Package version reports build information for fnkit binaries.
//
// Version, commit, branch, and build time are set at link time and fall
// back to the module build info the Go toolchain embeds:
//
//	go build -ldflags "-X github.com/kbukum/fnkit/version.Version=1.0.0" ./cmd/fnstat
package version
