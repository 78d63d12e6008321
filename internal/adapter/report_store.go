package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	m "unwrapaudit.dev/pkg/unwrapaudit/internal/model"
)

// reportFileName is the file written inside the reports directory.
const reportFileName = "findings.yaml"

// ReportStore persists audit reports so they can be re-rendered later by
// the view command.
type ReportStore interface {
	SaveReport(dir m.Path, report m.Report) error
	LoadReport(dir m.Path) (m.Report, error)
}

// YAMLReportStore stores reports as a YAML document in a directory.
type YAMLReportStore struct{}

// NewReportStore creates a YAML-backed ReportStore.
func NewReportStore() *YAMLReportStore {
	return &YAMLReportStore{}
}

// SaveReport writes the report to <dir>/findings.yaml, creating the
// directory when needed.
func (s *YAMLReportStore) SaveReport(dir m.Path, report m.Report) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports directory %s: %w", dir, err)
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	path := filepath.Join(string(dir), reportFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}

	return nil
}

// LoadReport reads a previously saved report from <dir>/findings.yaml.
func (s *YAMLReportStore) LoadReport(dir m.Path) (m.Report, error) {
	path := filepath.Join(string(dir), reportFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return m.Report{}, fmt.Errorf("read report %s: %w", path, err)
	}

	var report m.Report
	if err := yaml.Unmarshal(data, &report); err != nil {
		return m.Report{}, fmt.Errorf("decode report %s: %w", path, err)
	}

	return report, nil
}
