// Package version reports the build version of rddkit binaries.
//
// Values are injected at link time and fall back to the module build info:
//
//	go build -ldflags "-X github.com/kbukum/rddkit/version.Version=1.0.0" ./cmd/rddtutorial
package version
