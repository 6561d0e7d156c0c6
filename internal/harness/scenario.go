package harness

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/rpgscan/internal/engine"
	"github.com/roach88/rpgscan/internal/testutil"
)

// Scenario is one scan test case: a project, a query and the findings the
// scan must produce.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Query is the identifier to scan for.
	Query ScenarioQuery `yaml:"query"`

	// Maps restricts the scan to these map ids. Empty scans every map.
	Maps []int64 `yaml:"maps,omitempty"`

	// Project is materialized into a data directory before the scan.
	Project testutil.Project `yaml:"project"`

	// Expect lists the findings in discovery order. The scan must produce
	// exactly these.
	Expect []ExpectedFinding `yaml:"expect"`

	// ExpectError is the query error code the scan must fail with, e.g.
	// "IDENTIFIER_NOT_FOUND". Mutually exclusive with Expect.
	ExpectError string `yaml:"expect_error,omitempty"`

	// RunID is stamped on rendered reports. Defaults to "test-run-default".
	RunID string `yaml:"run_id,omitempty"`
}

// ScenarioQuery is the YAML form of engine.Query.
type ScenarioQuery struct {
	Mode string `yaml:"mode"`
	ID   int64  `yaml:"id"`
}

// ExpectedFinding is the subset of a finding a scenario checks.
type ExpectedFinding struct {
	Access      string `yaml:"access"`
	Active      bool   `yaml:"active"`
	Page        int    `yaml:"page,omitempty"`
	Line        int    `yaml:"line,omitempty"`
	Description string `yaml:"description"`
}

// EngineQuery converts q to an engine.Query.
func (q ScenarioQuery) EngineQuery() (engine.Query, error) {
	mode, err := engine.ParseMode(q.Mode)
	if err != nil {
		return engine.Query{}, err
	}
	return engine.Query{Mode: mode, ID: q.ID}, nil
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if _, err := s.Query.EngineQuery(); err != nil {
		return fmt.Errorf("query: %w", err)
	}

	if s.ExpectError != "" && len(s.Expect) > 0 {
		return fmt.Errorf("expect and expect_error are mutually exclusive")
	}

	for i, f := range s.Expect {
		switch strings.ToUpper(f.Access) {
		case "READ", "WRITE", "READWRITE":
		default:
			return fmt.Errorf("expect[%d]: unknown access %q", i, f.Access)
		}
		if f.Description == "" {
			return fmt.Errorf("expect[%d]: description is required", i)
		}
	}

	return nil
}
