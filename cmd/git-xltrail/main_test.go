package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/xltrail/xltrail-go/internal/testutil"
	"github.com/xltrail/xltrail-go/pkg/xltrail/config"
	"github.com/xltrail/xltrail-go/pkg/xltrail/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvConfig, filepath.Join(t.TempDir(), "none.yaml"))
	t.Setenv(config.EnvColor, "")
	t.Setenv(config.EnvLog, "")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	if args == nil {
		args = []string{}
	}
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func fixtureProject() []byte {
	return testutil.VBAProject([]testutil.VBAModule{
		{Name: "ThisWorkbook", Code: "Private Sub Workbook_Open()\nEnd Sub"},
		{Name: "Module1", Code: "Sub X()\nEnd Sub", Procedural: true},
	})
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "git-xltrail/dev\n", out)
}

func TestDiff(t *testing.T) {
	dir := t.TempDir()
	newPath := testutil.WriteWorkbook(t, dir, "book", []testutil.Sheet{{Name: "Sheet1", Rows: [][]any{{1}}}}, fixtureProject())

	out, err := execute(t, "diff", "/dev/null", newPath, "--no-color")
	require.NoError(t, err)

	want := "diff --xltrail a/book.xlsm b/book.xlsm\n" +
		"--- /dev/null\n" +
		"+++ b/book.xlsm/VBA/ThisWorkbook\n" +
		"@@ -0,0 +1,2 @@\n" +
		"+Private Sub Workbook_Open()\n" +
		"+End Sub\n" +
		"\n" +
		"--- /dev/null\n" +
		"+++ b/book.xlsm/VBA/Module1\n" +
		"@@ -0,0 +1,2 @@\n" +
		"+Sub X()\n" +
		"+End Sub\n" +
		"\n" +
		"--- /dev/null\n" +
		"+++ b/book.xlsm/Sheet1\n" +
		"@@ -0,0 +1 @@\n" +
		"+1\n" +
		"\n"
	assert.Equal(t, want, out)
}

func TestDiffName(t *testing.T) {
	out, err := execute(t, "diff", "/dev/null", "/dev/null", "--no-color", "--name", "Report.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "diff --xltrail a/Report.xlsx b/Report.xlsx\n", out)
}

func TestDiffArgs(t *testing.T) {
	_, err := execute(t, "diff", "only-one.xlsx")
	assert.Error(t, err)
}

func TestDiffConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("color: false\nseparator: \"|\"\n"), 0o600))
	newPath := testutil.WriteWorkbook(t, dir, "book", []testutil.Sheet{{Name: "Sheet1", Rows: [][]any{{"a", "b"}}}}, nil)

	out, err := execute(t, "--config", cfgPath, "diff", "/dev/null", newPath)
	require.NoError(t, err)
	assert.Contains(t, out, "\n+a|b\n")
	assert.NotContains(t, out, "\x1b[")
}

func TestLsFiles(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteWorkbook(t, dir, "macro", []testutil.Sheet{{Name: "Sheet1"}}, fixtureProject())
	testutil.WriteWorkbook(t, dir, "plain", []testutil.Sheet{{Name: "Sheet1"}}, nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "~$macro.xlsm"), []byte("lock"), 0o644))

	out, err := execute(t, "ls-files", "--dir", dir, "--no-color")
	require.NoError(t, err)

	want := "./macro.xlsm\n" +
		"    VBA/Document/ThisWorkbook\n" +
		"    VBA/Module/Module1\n" +
		"\n" +
		"./plain.xlsx\n" +
		"\n"
	assert.Equal(t, want, out)
}

func TestLsFilesVerbose(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteWorkbook(t, dir, "macro", []testutil.Sheet{{Name: "Sheet1"}}, fixtureProject())

	out, err := execute(t, "ls-files", "--dir", dir, "--no-color", "-x", "*.xlsm", "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "    VBA/Module/Module1\n        Sub X()\n        End Sub\n")
	assert.NotContains(t, out, "    [")
}

func TestLsFilesDigestAndStream(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteWorkbook(t, dir, "macro", []testutil.Sheet{{Name: "Sheet1"}}, fixtureProject())

	out, err := execute(t, "ls-files", "--dir", dir, "--no-color", "-x", "*.xlsm", "-vv")
	require.NoError(t, err)

	digest := models.Module{Content: "Sub X()\nEnd Sub"}.Digest()[:7]
	assert.Contains(t, out, "    VBA/Module/Module1\n    ["+digest+"] stream Module1\n        Sub X()\n")
	assert.Contains(t, out, "] stream ThisWorkbook\n")
}

func TestLsFilesSkipsBrokenWorkbook(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.xlsx"), []byte("not a zip"), 0o644))

	out, err := execute(t, "ls-files", "--dir", dir, "--no-color")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestFindWorkbooks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	for _, name := range []string{".git/cached.xlsx", "sub/b.xlsm", "a.xls", "c.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	files, err := findWorkbooks(dir, "*.xls*")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.xls"), filepath.Join(dir, "sub", "b.xlsm")}, files)

	_, err = findWorkbooks(dir, "[")
	assert.Error(t, err)
}

func TestLabelName(t *testing.T) {
	assert.Equal(t, "new.xlsx", labelName("/tmp/old.xlsx", "/tmp/new.xlsx"))
	assert.Equal(t, "old.xlsx", labelName("/tmp/old.xlsx", "/dev/null"))
}
