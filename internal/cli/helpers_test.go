package cli

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/rpgscan/internal/testutil"
)

const fixedRunID = "run-0001"

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

// goldProject is variable #003 'Gold', written once on a map and once by a
// common event script.
func goldProject() *testutil.Project {
	return testutil.NewProject().
		Variable(3, "Gold").
		Switch(11, "Night").
		Map(1, "Town", testutil.SinglePage(2, "Chest", 1, 1,
			testutil.Cmd(101, "", 0, 0, 2),
			testutil.Cmd(122, 3, 3, 0, 0, 7),
		)).
		CommonEvent(testutil.CommonEvent{ID: 4, Name: "Payday", List: []testutil.Command{
			testutil.Cmd(355, "$gameVariables.setValue(3, 0)"),
		}})
}

// runCLI executes the root command with a fixed run id and returns stdout,
// stderr and the returned error.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	cmd := newRootCommand(&RootOptions{RunIDGenerator: testutil.NewFixedRunIDGenerator(fixedRunID)})
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
