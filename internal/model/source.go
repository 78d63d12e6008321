package model

// Path represents a file system path.
type Path string

// ScanOptions configures which files are visited and which call pattern
// gets flagged. It is built once from config and passed to the enumerator
// and scanner at construction.
type ScanOptions struct {
	// Root is the directory the enumerator starts from.
	Root Path

	// Extension filters candidate files by name suffix (e.g. ".rs").
	Extension string

	// ExcludeDir names a directory whose subtree is skipped entirely,
	// matched as an exact path segment (e.g. "target").
	ExcludeDir string

	// DisabledMarker skips files whose name contains this substring.
	DisabledMarker string

	// TestMarkers are the tokens that open a test block when they appear
	// on a trimmed line (e.g. "#[cfg(test)]" and "#[test]").
	TestMarkers []string

	// Pattern is the risky call substring to flag.
	Pattern string

	// SafePattern is a superstring of Pattern that must NOT be flagged
	// (the safe variant of the call).
	SafePattern string
}

// DefaultScanOptions returns the stock Rust audit configuration: .unwrap()
// calls in crate sources, skipping build output and disabled files.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		Root:           "crates",
		Extension:      ".rs",
		ExcludeDir:     "target",
		DisabledMarker: ".disabled",
		TestMarkers:    []string{"#[cfg(test)]", "#[test]"},
		Pattern:        ".unwrap()",
		SafePattern:    ".unwrap_or",
	}
}
