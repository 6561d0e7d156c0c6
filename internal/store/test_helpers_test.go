package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/rpgscan/internal/engine"
	"github.com/roach88/rpgscan/internal/report"
)

// createTestStore creates a new store in a temp directory for testing.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestResults creates results for variable #003 with findings in a map
// and a common event.
func createTestResults() *report.Results {
	r := report.NewResults(engine.Query{Mode: engine.ModeVariables, ID: 3}, "Gold")
	r.Add(engine.Finding{
		Access: engine.AccessRead, Active: false,
		Container: engine.Container{Kind: engine.ContainerMap, ID: 1},
		Owner:     engine.Owner{ID: 1, Name: "Shop", X: 3, Y: 4},
		Page:      1, Description: "IF {Gold} >= 100:",
	})
	r.Add(engine.Finding{
		Access: engine.AccessReadWrite, Active: true,
		Container: engine.Container{Kind: engine.ContainerMap, ID: 1},
		Owner:     engine.Owner{ID: 2, Name: "Bank", X: 5, Y: 6},
		Page:      2, Line: 3, Description: "{Gold} += {Gold}",
	})
	r.Add(engine.Finding{
		Access: engine.AccessWrite, Active: true,
		Container: engine.Container{Kind: engine.ContainerCommonEvent, ID: 4},
		Owner:     engine.Owner{ID: 4, Name: "Payday"},
		Line:      1, Description: "$gameVariables.setValue(3, 0)",
	})
	return r
}
