package optlist

// Version is the library version, overridable at build time via
// -ldflags "-X github.com/dwilhelm/optlist.Version=...".
var Version = "0.3.0"
