package version

// Value is overridden at build time with -ldflags "-X termfolio/internal/version.Value=...".
var Value = "dev"
