package model

// Finding is one occurrence of the risky call pattern outside test code.
type Finding struct {
	File Path   `yaml:"file"`
	Line int    `yaml:"line"` // 1-indexed
	Code string `yaml:"code"` // trimmed source line
}

// Report holds the findings of one audit run, ordered for output.
type Report struct {
	Root     Path      `yaml:"root"`
	Pattern  string    `yaml:"pattern"`
	Findings []Finding `yaml:"findings"`
}

// Total returns the number of findings in the report.
func (r Report) Total() int {
	return len(r.Findings)
}

// FileCount holds the number of findings for a single file.
type FileCount struct {
	File  Path
	Count int
}

// FileCounts groups the report's findings per file, preserving the
// report's path ordering.
func (r Report) FileCounts() []FileCount {
	var counts []FileCount

	for _, finding := range r.Findings {
		if n := len(counts); n > 0 && counts[n-1].File == finding.File {
			counts[n-1].Count++
			continue
		}

		counts = append(counts, FileCount{File: finding.File, Count: 1})
	}

	return counts
}
