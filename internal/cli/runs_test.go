package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// exportedDB scans goldProject into a fresh database and returns its path.
func exportedDB(t *testing.T) string {
	t.Helper()
	dir := goldProject().Write(t)
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	_, _, err := runCLI(t, "scan", "--variable", "3", "--data", dir, "--db", dbPath, "--out", filepath.Join(t.TempDir(), "r.txt"))
	require.NoError(t, err)
	return dbPath
}

func TestRunsCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	runsCmd, _, err := cmd.Find([]string{"runs"})
	require.NoError(t, err)

	dbFlag := runsCmd.Flags().Lookup("db")
	require.NotNil(t, dbFlag)
	assert.Empty(t, dbFlag.DefValue)
}

func TestRuns_List(t *testing.T) {
	dbPath := exportedDB(t)

	out, _, err := runCLI(t, "runs", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, fixedRunID)
	assert.Contains(t, out, "VARIABLES")
	assert.Contains(t, out, `"Gold"`)
	assert.Contains(t, out, "2 finding(s)")
}

func TestRuns_ListJSON(t *testing.T) {
	dbPath := exportedDB(t)

	out, _, err := runCLI(t, "runs", "--db", dbPath, "--format", "json")
	require.NoError(t, err)

	resp := gjson.Parse(out)
	assert.Equal(t, "ok", resp.Get("status").String())
	runs := resp.Get("data.runs").Array()
	require.Len(t, runs, 1)
	assert.Equal(t, fixedRunID, runs[0].Get("run_id").String())
	assert.EqualValues(t, 3, runs[0].Get("id").Int())
	assert.EqualValues(t, 2, runs[0].Get("total").Int())
}

func TestRuns_Detail(t *testing.T) {
	dbPath := exportedDB(t)

	out, _, err := runCLI(t, "runs", "--db", dbPath, fixedRunID)
	require.NoError(t, err)

	assert.Contains(t, out, "Run "+fixedRunID+`: variables #003 ("Gold"), 2 finding(s)`)
	assert.Contains(t, out, `MAP #001  Event #002 ("Chest") page 01 line 002  ON WRITE  {Gold} = 7`)
	assert.Contains(t, out, `COMMON_EVENT #004  Event #004 ("Payday") line 001  ON WRITE  $gameVariables.setValue(3, 0)`)
}

func TestRuns_DetailJSON(t *testing.T) {
	dbPath := exportedDB(t)

	out, _, err := runCLI(t, "runs", "--db", dbPath, fixedRunID, "--format", "json")
	require.NoError(t, err)

	resp := gjson.Parse(out)
	assert.Equal(t, fixedRunID, resp.Get("run_id").String())
	findings := resp.Get("data.findings").Array()
	require.Len(t, findings, 2)
	assert.Equal(t, "MAP", findings[0].Get("container").String())
	assert.EqualValues(t, 1, findings[0].Get("page").Int())
	assert.False(t, findings[1].Get("page").Exists())
}

func TestRuns_Errors(t *testing.T) {
	dbPath := exportedDB(t)

	tests := []struct {
		name     string
		args     []string
		wantCode string
	}{
		{"missing db flag", []string{"runs"}, ErrCodeUsage},
		{"db does not exist", []string{"runs", "--db", filepath.Join(t.TempDir(), "none.db")}, ErrCodeUsage},
		{"unknown run", []string{"runs", "--db", dbPath, "nope"}, ErrCodeRunNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
			assert.Contains(t, out, "Error ["+tt.wantCode+"]")
		})
	}
}

func TestRuns_EmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")
	_, _, err := runCLI(t, "scan", "--switch", "11", "--data", goldProject().Write(t), "--db", dbPath, "--out", filepath.Join(t.TempDir(), "x.txt"))
	require.NoError(t, err)

	out, _, err := runCLI(t, "runs", "--db", dbPath)
	require.NoError(t, err)
	assert.Contains(t, out, "0 finding(s)")
}
