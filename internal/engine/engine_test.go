package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/rpgscan/internal/names"
	"github.com/roach88/rpgscan/internal/project"
	"github.com/roach88/rpgscan/internal/rpg"
	"github.com/roach88/rpgscan/internal/testutil"
)

func loadProject(t *testing.T, p *testutil.Project) *project.Project {
	t.Helper()
	loaded, err := project.NewLoader(nil).Load(p.Write(t))
	require.NoError(t, err)
	return loaded
}

func scan(t *testing.T, p *project.Project, q Query, opts Options) []Finding {
	t.Helper()
	s, err := New(p.Names, q, opts)
	require.NoError(t, err)
	return s.Scan(p)
}

func TestScan_PageConditionThreshold(t *testing.T) {
	cond := testutil.DefaultConditions()
	cond.VariableID = 5
	cond.VariableValid = true
	cond.VariableValue = 10

	p := loadProject(t, testutil.NewProject().
		Variable(5, "Steps").
		Map(1, "Town", testutil.Event{
			ID: 1, Name: "Guard", X: 4, Y: 7,
			Pages: []testutil.Page{{Conditions: cond, List: []testutil.Command{}}},
		}))

	findings := scan(t, p, Query{Mode: ModeVariables, ID: 5}, Options{})

	require.Len(t, findings, 1)
	assert.Equal(t, Finding{
		Access:      AccessRead,
		Active:      true,
		Container:   Container{Kind: ContainerMap, ID: 1},
		Owner:       Owner{ID: 1, Name: "Guard", X: 4, Y: 7},
		Page:        1,
		Line:        0,
		Description: "IF {Steps} >= 10:",
	}, findings[0])
	assert.False(t, findings[0].HasLine())
}

func TestScan_ControlVariableConstant(t *testing.T) {
	p := loadProject(t, testutil.NewProject().
		Variable(3, "Gold").
		Map(1, "Town", testutil.SinglePage(2, "Chest", 1, 1,
			testutil.Cmd(101, "", 0, 0, 2),
			testutil.Cmd(122, 3, 3, 0, 0, 7),
		)))

	findings := scan(t, p, Query{Mode: ModeVariables, ID: 3}, Options{})

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, AccessWrite, f.Access)
	assert.True(t, f.Active)
	assert.Equal(t, 2, f.Line)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, "{Gold} = 7", f.Description)
}

func TestScan_ControlSwitchRange(t *testing.T) {
	p := loadProject(t, testutil.NewProject().
		Variable(1, "").
		Switch(10, "Door A").Switch(11, "Door B").Switch(12, "Door C").
		CommonEvent(testutil.CommonEvent{
			ID: 3, Name: "Lock All",
			List: []testutil.Command{testutil.Cmd(121, 10, 12, 1)},
		}))

	findings := scan(t, p, Query{Mode: ModeSwitches, ID: 11}, Options{})

	require.Len(t, findings, 1)
	f := findings[0]
	assert.Equal(t, AccessWrite, f.Access)
	assert.Equal(t, Container{Kind: ContainerCommonEvent, ID: 3}, f.Container)
	assert.Equal(t, Owner{ID: 3, Name: "Lock All"}, f.Owner)
	assert.Equal(t, 0, f.Page)
	assert.Equal(t, 1, f.Line)
	assert.Equal(t, "{Door A} .. {Door C} = OFF", f.Description)
}

func TestNew_UnknownVariable(t *testing.T) {
	tables := names.New()
	tables.SetVariable(1, "Only")

	s, err := New(tables, Query{Mode: ModeVariables, ID: 9}, Options{})
	require.Error(t, err)
	assert.Nil(t, s)
	assert.True(t, IsQueryError(err))

	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, ErrCodeIdentifierNotFound, qe.Code)
	assert.ErrorIs(t, err, names.ErrNotFound)
}

func TestNew_QueryValidation(t *testing.T) {
	tables := testTables()

	_, err := New(tables, Query{Mode: ModeVariables, ID: 0}, Options{})
	var qe *QueryError
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, ErrCodeIdentifierNotFound, qe.Code)

	_, err = New(tables, Query{Mode: ModeSwitches, ID: -1}, Options{})
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, ErrCodeNegativeID, qe.Code)

	_, err = New(tables, Query{Mode: Mode(7), ID: 1}, Options{})
	require.ErrorAs(t, err, &qe)
	assert.Equal(t, ErrCodeInvalidMode, qe.Code)

	s, err := New(tables, Query{Mode: ModeSwitches, ID: 99}, Options{})
	require.NoError(t, err, "unknown switches get a placeholder name")
	assert.Equal(t, "#99 ?", s.TargetName())
}

func TestScan_GateBeforeCommandsInPageOrder(t *testing.T) {
	gated := testutil.DefaultConditions()
	gated.Switch1ID = 11
	gated.Switch1Valid = true

	p := loadProject(t, testutil.NewProject().
		Variable(1, "").
		Switch(11, "Door B").
		Map(1, "Town", testutil.Event{
			ID: 1, Name: "Door", X: 2, Y: 3,
			Pages: []testutil.Page{
				{Conditions: testutil.DefaultConditions(), List: []testutil.Command{
					testutil.Cmd(121, 11, 11, 0),
				}},
				{Conditions: gated, List: []testutil.Command{
					testutil.Cmd(101, "", 0, 0, 2),
					testutil.Cmd(111, 0, 11, 1),
					testutil.Cmd(0),
					testutil.Cmd(121, 11, 11, 1),
				}},
			},
		}))

	findings := scan(t, p, Query{Mode: ModeSwitches, ID: 11}, Options{})

	require.Len(t, findings, 4)
	got := make([][2]int, len(findings))
	for i, f := range findings {
		got[i] = [2]int{f.Page, f.Line}
	}
	assert.Equal(t, [][2]int{{1, 1}, {2, 0}, {2, 2}, {2, 4}}, got)
	assert.Equal(t, "IF {Door B}:", findings[1].Description)
	assert.Equal(t, "IF {Door B} is OFF:", findings[2].Description)
}

func TestScan_MapsThenCommonEvents(t *testing.T) {
	p := loadProject(t, testutil.NewProject().
		Variable(3, "Gold").
		Map(2, "Cave", testutil.SinglePage(1, "Bat", 0, 0, testutil.Cmd(122, 3, 3, 1, 0, 1))).
		Map(1, "Town", testutil.SinglePage(1, "Shop", 0, 0, testutil.Cmd(122, 3, 3, 2, 0, 1))).
		CommonEvent(testutil.CommonEvent{ID: 1, Name: "Tax", List: []testutil.Command{
			testutil.Cmd(355, "$gameVariables.setValue(3, 0)"),
		}}))

	findings := scan(t, p, Query{Mode: ModeVariables, ID: 3}, Options{})

	require.Len(t, findings, 3)
	assert.Equal(t, Container{Kind: ContainerMap, ID: 1}, findings[0].Container)
	assert.Equal(t, Container{Kind: ContainerMap, ID: 2}, findings[1].Container)
	assert.Equal(t, Container{Kind: ContainerCommonEvent, ID: 1}, findings[2].Container)
	assert.Equal(t, AccessWrite, findings[2].Access)
}

func TestScan_MapFilter(t *testing.T) {
	p := loadProject(t, testutil.NewProject().
		Variable(3, "Gold").
		Map(1, "Town", testutil.SinglePage(1, "Shop", 0, 0, testutil.Cmd(122, 3, 3, 0, 0, 1))).
		Map(2, "Cave", testutil.SinglePage(1, "Bat", 0, 0, testutil.Cmd(122, 3, 3, 0, 0, 2))).
		CommonEvent(testutil.CommonEvent{ID: 1, Name: "Tax", List: []testutil.Command{
			testutil.Cmd(122, 3, 3, 0, 0, 3),
		}}))

	findings := scan(t, p, Query{Mode: ModeVariables, ID: 3}, Options{MapIDs: []int64{2}})

	require.Len(t, findings, 2)
	assert.Equal(t, Container{Kind: ContainerMap, ID: 2}, findings[0].Container)
	assert.Equal(t, Container{Kind: ContainerCommonEvent, ID: 1}, findings[1].Container, "common events ignore the map filter")
}

func TestScan_CommonEventTrigger(t *testing.T) {
	p := loadProject(t, testutil.NewProject().
		Variable(1, "").
		Switch(4, "Night").
		CommonEvent(testutil.CommonEvent{ID: 2, Name: "Darken", SwitchID: 4, Trigger: 2, List: []testutil.Command{
			testutil.Cmd(111, 0, 4, 0),
		}}).
		CommonEvent(testutil.CommonEvent{ID: 3, Name: "Manual", SwitchID: 4, Trigger: 0}))

	findings := scan(t, p, Query{Mode: ModeSwitches, ID: 4}, Options{})

	require.Len(t, findings, 2)
	assert.Equal(t, "HAS TRIGGER: PARALLEL", findings[0].Description)
	assert.Equal(t, 0, findings[0].Line)
	assert.Equal(t, "IF {Night} is ON:", findings[1].Description)
	assert.Equal(t, 1, findings[1].Line)
}

func TestScan_Deterministic(t *testing.T) {
	p := loadProject(t, testutil.NewProject().
		Variable(3, "Gold").Variable(4, "Silver").
		Map(1, "Town",
			testutil.SinglePage(1, "A", 0, 0, testutil.Cmd(122, 4, 4, 0, 1, 3), testutil.Cmd(111, 1, 3, 0, 5, 1)),
			testutil.SinglePage(2, "B", 1, 0, testutil.Cmd(122, 1, 9, 1, 2, 1, 3)),
		))

	s, err := New(p.Names, Query{Mode: ModeVariables, ID: 3}, Options{})
	require.NoError(t, err)

	first := s.Scan(p)
	require.Len(t, first, 3)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, s.Scan(p))
	}
}

func TestScan_InvalidPageKeepsNumbering(t *testing.T) {
	p := &project.Project{
		Names: testTables(),
		Maps: []project.Map{{
			ID: 1, Name: "Town",
			Events: []rpg.Event{{
				ID: 5, Name: "Sign",
				Pages: []rpg.EventPage{
					{Number: 2, List: []rpg.Command{cmd(rpg.CodeControlVariable, 3, 3, 0, 0, 1)}},
				},
			}},
		}},
	}

	findings := scan(t, p, Query{Mode: ModeVariables, ID: 3}, Options{})

	require.Len(t, findings, 1)
	assert.Equal(t, 2, findings[0].Page)
}

func TestScan_ArityMismatchProducesNothing(t *testing.T) {
	p := loadProject(t, testutil.NewProject().
		Variable(3, "Gold").
		Map(1, "Town", testutil.SinglePage(1, "Odd", 0, 0,
			testutil.Cmd(122, 3, 3, 0, 0),
			testutil.Cmd(122, 3, 3, 0, 0, 7, 8),
			testutil.Cmd(111, 1, 3, 0, 5),
			testutil.Cmd(355, "$gameVariables.value(3)", 1),
		)))

	assert.Empty(t, scan(t, p, Query{Mode: ModeVariables, ID: 3}, Options{}))
}
