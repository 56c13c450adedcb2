package common

// SableVersion is the current Sable version as a string.
const SableVersion string = "0.1.0"

// SableModFileName is the name for Sable module manifest files.
const SableModFileName string = "sable-mod.toml"

// SableFileExt is the file extension for a Sable source file.
const SableFileExt string = ".sbl"

// DefaultLayoutIterLimit is the default bound on the number of passes the
// layout checker will make while resolving layout inheritance declarations.
const DefaultLayoutIterLimit = 16
