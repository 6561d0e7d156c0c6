package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/rpgscan/internal/report"
)

// RunWithGolden executes a scenario, fails the test on any finding mismatch
// and compares the plain text report against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if the scenario could not be executed.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	for _, msg := range result.Errors {
		t.Errorf("%s: %s", scenario.Name, msg)
	}

	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares the plain text report of result against the golden
// file testdata/golden/{name}.golden.
//
// A result without findings, because its query was rejected, has no
// report and is an error.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	if result.Results == nil {
		return fmt.Errorf("%s: no report to compare, the query was rejected", name)
	}

	var buf bytes.Buffer
	if err := report.RenderText(&buf, result.Results, result.Tables, report.PlainStyles()); err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, buf.Bytes())

	return nil
}
