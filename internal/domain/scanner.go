// Package domain implements the audit pipeline: file enumeration, the line
// scanner, and report aggregation.
package domain

import (
	"strings"

	m "unwrapaudit.dev/pkg/unwrapaudit/internal/model"
)

// commentPrefix suppresses lines that are entirely a single-line comment.
// A trailing comment on a code line is not detected.
const commentPrefix = "//"

// ScanState is the per-file state of the line scanner. A fresh value is
// created for every file; nothing is shared across files.
type ScanState struct {
	// InTestBlock is true while the scanner is inside a test block.
	InTestBlock bool

	// BlockDepth is the running count of unmatched opening braces.
	BlockDepth int

	// TestBlockStartDepth records the block depth at the moment a test
	// marker was seen. Meaningful only while InTestBlock is true.
	TestBlockStartDepth int
}

// LineScanner flags risky call patterns in source lines, excluding matches
// inside comments or test blocks. It is a purely lexical pass: braces inside
// string literals and multi-line comments are counted like any others, and
// the result is a best-effort approximation rather than a sound analysis.
type LineScanner struct {
	opts m.ScanOptions
}

// NewLineScanner creates a LineScanner for the given options.
func NewLineScanner(opts m.ScanOptions) *LineScanner {
	return &LineScanner{opts: opts}
}

// ScanLines runs the scanner over every line of one file, in order, and
// returns the findings. State is created fresh per call, so the scanner is
// restartable across files.
func (s *LineScanner) ScanLines(file m.Path, lines []string) []m.Finding {
	var findings []m.Finding

	state := ScanState{}

	for i, line := range lines {
		if finding, ok := s.scanLine(file, i+1, line, &state); ok {
			findings = append(findings, finding)
		}
	}

	return findings
}

// scanLine applies the scan steps to one line, updating state as a side
// effect. The steps are ordered: marker detection runs before the depth
// update and the skip checks, so a line that both opens a test block and
// contains the pattern is itself suppressed. This mirrors the historical
// audit behavior and keeps reported counts compatible.
func (s *LineScanner) scanLine(file m.Path, number int, raw string, state *ScanState) (m.Finding, bool) {
	trimmed := strings.TrimSpace(raw)

	entered := false
	if !state.InTestBlock && s.hasTestMarker(trimmed) {
		state.InTestBlock = true
		state.TestBlockStartDepth = state.BlockDepth
		entered = true
	}

	// The depth update is unconditional: marker lines and comment lines
	// count too.
	state.BlockDepth += strings.Count(raw, "{") - strings.Count(raw, "}")

	// Exit test mode once nesting unwinds to or below the entry depth.
	// The marker line itself cannot unwind the block it just opened, and
	// pathological inputs may drop the depth below the recorded start,
	// hence <= rather than ==.
	if state.InTestBlock && !entered && state.BlockDepth <= state.TestBlockStartDepth {
		state.InTestBlock = false
	}

	if state.InTestBlock {
		return m.Finding{}, false
	}

	if strings.HasPrefix(trimmed, commentPrefix) {
		return m.Finding{}, false
	}

	if strings.Contains(raw, s.opts.Pattern) && !strings.Contains(raw, s.opts.SafePattern) {
		return m.Finding{File: file, Line: number, Code: trimmed}, true
	}

	return m.Finding{}, false
}

func (s *LineScanner) hasTestMarker(trimmed string) bool {
	for _, marker := range s.opts.TestMarkers {
		if strings.Contains(trimmed, marker) {
			return true
		}
	}

	return false
}
