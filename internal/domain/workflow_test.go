package domain

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"unwrapaudit.dev/pkg/unwrapaudit/internal/adapter"
	"unwrapaudit.dev/pkg/unwrapaudit/internal/controller"
	m "unwrapaudit.dev/pkg/unwrapaudit/internal/model"
)

// captureUI records the reports handed to it instead of rendering them.
type captureUI struct {
	displayed []m.Report
	counted   []m.Report
	browsed   []m.Report
}

func (c *captureUI) DisplayReport(_ context.Context, report m.Report) error {
	c.displayed = append(c.displayed, report)
	return nil
}

func (c *captureUI) DisplayFileCounts(_ context.Context, report m.Report) error {
	c.counted = append(c.counted, report)
	return nil
}

func (c *captureUI) BrowseReport(_ context.Context, report m.Report) error {
	c.browsed = append(c.browsed, report)
	return nil
}

func newTestWorkflow(ui controller.UI) Workflow {
	return NewWorkflow(adapter.NewLocalSourceFSAdapter(), adapter.NewReportStore(), ui)
}

const unwrapTreeFileB = `fn setup() {
    let a = init();
    let b = config();
    let c = open();
    let x = c.unwrap();
}
`

const unwrapTreeFileA = `fn main() {
    let x = foo.unwrap();
}
`

func auditTree(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"b.rs": unwrapTreeFileB,
		"a.rs": unwrapTreeFileA,
		"test_only.rs": `#[cfg(test)]
mod tests {
    fn t() {
        foo.unwrap();
    }
}
`,
	})

	return root
}

func TestWorkflowAudit_OrdersFindingsByPathThenLine(t *testing.T) {
	root := auditTree(t)
	ui := &captureUI{}

	err := newTestWorkflow(ui).Audit(context.Background(), AuditArgs{Options: optionsForRoot(root)})
	require.NoError(t, err)

	require.Len(t, ui.displayed, 1)
	report := ui.displayed[0]

	require.Equal(t, 2, report.Total())
	assert.Equal(t, m.Path(filepath.Join(root, "a.rs")), report.Findings[0].File)
	assert.Equal(t, 2, report.Findings[0].Line)
	assert.Equal(t, m.Path(filepath.Join(root, "b.rs")), report.Findings[1].File)
	assert.Equal(t, 5, report.Findings[1].Line)
}

func TestWorkflowAudit_ParallelScanKeepsOrdering(t *testing.T) {
	root := auditTree(t)

	sequential := &captureUI{}
	err := newTestWorkflow(sequential).Audit(context.Background(), AuditArgs{Options: optionsForRoot(root), Threads: 1})
	require.NoError(t, err)

	parallel := &captureUI{}
	err = newTestWorkflow(parallel).Audit(context.Background(), AuditArgs{Options: optionsForRoot(root), Threads: 8})
	require.NoError(t, err)

	assert.Equal(t, sequential.displayed, parallel.displayed)
}

func TestWorkflowAudit_PersistsReportWhenConfigured(t *testing.T) {
	root := auditTree(t)
	reportsDir := m.Path(filepath.Join(t.TempDir(), "reports"))
	ui := &captureUI{}

	err := newTestWorkflow(ui).Audit(context.Background(), AuditArgs{
		Options: optionsForRoot(root),
		Reports: reportsDir,
	})
	require.NoError(t, err)

	loaded, err := adapter.NewReportStore().LoadReport(reportsDir)
	require.NoError(t, err)
	require.Len(t, ui.displayed, 1)
	assert.Equal(t, ui.displayed[0], loaded)
}

func TestWorkflowAudit_EmptyTree(t *testing.T) {
	ui := &captureUI{}

	err := newTestWorkflow(ui).Audit(context.Background(), AuditArgs{Options: optionsForRoot(t.TempDir())})
	require.NoError(t, err)

	require.Len(t, ui.displayed, 1)
	assert.Zero(t, ui.displayed[0].Total())
}

func TestWorkflowAudit_MissingRootFails(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	ui := &captureUI{}

	err := newTestWorkflow(ui).Audit(context.Background(), AuditArgs{Options: optionsForRoot(missing)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
	assert.Empty(t, ui.displayed)
}

func TestWorkflowCount(t *testing.T) {
	root := auditTree(t)
	ui := &captureUI{}

	err := newTestWorkflow(ui).Count(context.Background(), AuditArgs{Options: optionsForRoot(root)})
	require.NoError(t, err)

	require.Len(t, ui.counted, 1)
	assert.Empty(t, ui.displayed)
	assert.Equal(t, 2, ui.counted[0].Total())
}

func TestWorkflowView_RoundTrip(t *testing.T) {
	reportsDir := m.Path(t.TempDir())
	saved := m.Report{
		Root:    "crates",
		Pattern: ".unwrap()",
		Findings: []m.Finding{
			{File: "crates/a.rs", Line: 3, Code: "foo.unwrap();"},
		},
	}
	require.NoError(t, adapter.NewReportStore().SaveReport(reportsDir, saved))

	ui := &captureUI{}

	err := newTestWorkflow(ui).View(context.Background(), ViewArgs{Reports: reportsDir})
	require.NoError(t, err)

	require.Len(t, ui.browsed, 1)
	assert.Equal(t, saved, ui.browsed[0])
}

func TestWorkflowView_MissingReport(t *testing.T) {
	ui := &captureUI{}

	err := newTestWorkflow(ui).View(context.Background(), ViewArgs{Reports: m.Path(t.TempDir())})
	require.Error(t, err)
	assert.Empty(t, ui.browsed)
}

func TestWorkflowAudit_OutputFormat(t *testing.T) {
	root := auditTree(t)
	var output bytes.Buffer

	err := newTestWorkflow(controller.NewSimpleUI(&output)).Audit(context.Background(), AuditArgs{Options: optionsForRoot(root)})
	require.NoError(t, err)

	want := fmt.Sprintf("%s:2: let x = foo.unwrap();\n", filepath.Join(root, "a.rs")) +
		fmt.Sprintf("%s:5: let x = c.unwrap();\n", filepath.Join(root, "b.rs")) +
		"\nTotal non-test .unwrap() calls: 2\n"

	assert.Equal(t, want, output.String())
}

func TestWorkflowAudit_RunTwiceIsByteIdentical(t *testing.T) {
	root := auditTree(t)

	var first, second bytes.Buffer

	err := newTestWorkflow(controller.NewSimpleUI(&first)).Audit(context.Background(), AuditArgs{Options: optionsForRoot(root)})
	require.NoError(t, err)
	err = newTestWorkflow(controller.NewSimpleUI(&second)).Audit(context.Background(), AuditArgs{Options: optionsForRoot(root)})
	require.NoError(t, err)

	assert.Equal(t, first.Bytes(), second.Bytes())
}
