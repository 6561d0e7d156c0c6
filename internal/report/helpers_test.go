package report

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/rpgscan/internal/engine"
	"github.com/roach88/rpgscan/internal/names"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func sampleTables() *names.Tables {
	tables := names.New()
	tables.SetVariable(3, "Gold")
	tables.SetMap(1, "Town")
	tables.SetMap(2, "Cave")
	tables.SetCommonEvent(4, "Payday")
	return tables
}

var (
	town   = engine.Container{Kind: engine.ContainerMap, ID: 1}
	cave   = engine.Container{Kind: engine.ContainerMap, ID: 2}
	payday = engine.Container{Kind: engine.ContainerCommonEvent, ID: 4}

	shop = engine.Owner{ID: 1, Name: "Shop", X: 3, Y: 4}
	bank = engine.Owner{ID: 2, Name: "Bank", X: 5, Y: 6}
	bat  = engine.Owner{ID: 1, Name: "Bat"}
)

// sampleResults is a scan of variable #003 across two maps and a common
// event, added in an order that differs from the rendered order.
func sampleResults() *Results {
	r := NewResults(engine.Query{Mode: engine.ModeVariables, ID: 3}, "Gold")
	r.Add(engine.Finding{Access: engine.AccessWrite, Active: true, Container: cave, Owner: bat, Page: 1, Line: 2, Description: "{Gold} -= 1"})
	r.Add(engine.Finding{Access: engine.AccessRead, Active: false, Container: town, Owner: shop, Page: 1, Description: "IF {Gold} >= 100:"})
	r.Add(engine.Finding{Access: engine.AccessRead, Active: true, Container: town, Owner: shop, Page: 2, Line: 1, Description: "IF {Gold} >= 50:"})
	r.Add(engine.Finding{Access: engine.AccessReadWrite, Active: true, Container: town, Owner: bank, Page: 1, Line: 3, Description: "{Gold} += {Gold}"})
	r.Add(engine.Finding{
		Access: engine.AccessWrite, Active: true, Container: payday,
		Owner: engine.Owner{ID: 4, Name: "Payday"}, Line: 1,
		Description: "$gameVariables.setValue(3, 0)",
	})
	return r
}
