package version

// AppVersion is overridden at build time with
// -ldflags "-X golocate/internal/version.AppVersion=v1.2.3".
var AppVersion = "dev"
