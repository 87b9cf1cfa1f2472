// Package version holds the application version, overridden at build time with
// -ldflags "-X github.com/ndewijer/Trade-Journal-Backend/internal/version.Version=...".
package version

// Version is the running application version.
var Version = "dev"
