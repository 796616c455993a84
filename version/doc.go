// Package version reports build information for the authserver binary.
//
// Values are set at link time and fall back to the module's embedded VCS
// stamp:
//
//	go build -ldflags "-X github.com/kbukum/sessionauth/version.Version=1.2.0"
package version
