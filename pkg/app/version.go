package app

// Version is the release of modsheet. It is overridden at build time with
// -ldflags "-X github.com/small-frappuccino/modsheet/pkg/app.Version=...".
var Version = "0.1.0"
