package domain

import (
	"sort"

	m "unwrapaudit.dev/pkg/unwrapaudit/internal/model"
)

// SortFindings orders findings by file path (lexicographic), then line
// number. This is the output ordering contract: it makes reports
// diff-stable regardless of traversal or scan completion order.
func SortFindings(findings []m.Finding) {
	sort.Slice(findings, func(i, j int) bool {
		if findings[i].File != findings[j].File {
			return findings[i].File < findings[j].File
		}

		return findings[i].Line < findings[j].Line
	})
}

// BuildReport assembles the final report from the concatenated findings of
// all scanned files, applying the global ordering.
func BuildReport(opts m.ScanOptions, findings []m.Finding) m.Report {
	SortFindings(findings)

	return m.Report{
		Root:     opts.Root,
		Pattern:  opts.Pattern,
		Findings: findings,
	}
}
