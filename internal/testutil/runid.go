package testutil

// FixedRunIDGenerator returns one run id forever, so JSON reports and store
// exports are byte-identical across test runs. It satisfies
// report.RunIDGenerator.
type FixedRunIDGenerator struct {
	id string
}

// NewFixedRunIDGenerator returns a generator for id, or for
// "test-run-default" when id is empty (scenarios without a run_id key).
func NewFixedRunIDGenerator(id string) *FixedRunIDGenerator {
	if id == "" {
		id = "test-run-default"
	}
	return &FixedRunIDGenerator{id: id}
}

// Generate returns the fixed run id.
func (g *FixedRunIDGenerator) Generate() string {
	return g.id
}
