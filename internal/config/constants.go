package config

// Version is the current lox toolchain version, set at build time via
// -ldflags the same way the teacher's own release script stamps Version.
var Version = "0.1.0"

// SourceFileExt is the canonical Lox source extension (spec.md §6's
// `lox script.lox` invocation).
const SourceFileExt = ".lox"

// HasSourceExt reports whether path ends in the recognized Lox extension.
func HasSourceExt(path string) bool {
	return len(path) >= len(SourceFileExt) && path[len(path)-len(SourceFileExt):] == SourceFileExt
}
