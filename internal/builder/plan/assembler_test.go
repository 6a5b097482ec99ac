package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plan2model/internal/builder/models"
)

func floorPage(text string) models.Page {
	return models.Page{
		Text:       text,
		Lines:      rectangleLines(),
		Words:      []models.Word{{Text: "Kitchen", X0: 45, Y0: 35, X1: 55, Y1: 45}},
		PageWidth:  612,
		PageHeight: 792,
	}
}

func TestAssembleSingleFloor(t *testing.T) {
	assembler := NewAssembler(DefaultOptions())
	building := assembler.Assemble([]models.Page{floorPage("First Floor Plan")})

	require.Len(t, building.Floors, 1)
	assert.Empty(t, building.Elevations)

	floor := building.Floors[0]
	assert.Equal(t, 0, floor.Level)
	assert.Equal(t, "First Floor", floor.Name)
	assert.Equal(t, 0.0, floor.Elevation)

	require.Len(t, floor.Rooms, 1)
	assert.Equal(t, "Kitchen", floor.Rooms[0].Name)
	assert.InDelta(t, 8000.0, floor.Rooms[0].Area, 1e-6)

	// All four edges of the lone room lie on the footprint.
	assert.Len(t, floor.ExteriorWalls, 4)
	assert.Empty(t, floor.InteriorWalls)
}

func TestAssembleElevationPage(t *testing.T) {
	page := models.Page{
		Text:       "Front Elevation",
		Lines:      []models.Line{{X0: 0, Y0: 500, X1: 300, Y1: 700}},
		PageWidth:  612,
		PageHeight: 792,
	}

	assembler := NewAssembler(DefaultOptions())
	building := assembler.Assemble([]models.Page{page})

	// An elevation page never contributes a floor.
	assert.Empty(t, building.Floors)
	require.Len(t, building.Elevations, 1)
	assert.Equal(t, "front", building.Elevations[0].View)
	assert.NotNil(t, building.Elevations[0].RoofProfile)
}

func TestAssembleFloorsSorted(t *testing.T) {
	pages := []models.Page{
		floorPage("Second Floor Plan"),
		floorPage("First Floor Plan"),
	}

	assembler := NewAssembler(DefaultOptions())
	building := assembler.Assemble(pages)

	require.Len(t, building.Floors, 2)
	assert.Equal(t, 0, building.Floors[0].Level)
	assert.Equal(t, 1, building.Floors[1].Level)
	assert.Equal(t, 8.0, building.Floors[1].Elevation)
}

func TestAssembleMergesDuplicateLevels(t *testing.T) {
	pages := []models.Page{
		floorPage("First Floor Plan"),
		floorPage("Main Floor Plan"),
	}

	assembler := NewAssembler(DefaultOptions())
	building := assembler.Assemble(pages)

	require.Len(t, building.Floors, 1)
	assert.Len(t, building.Floors[0].Rooms, 2)
}

func TestAssembleFloorLevelDefaults(t *testing.T) {
	pages := []models.Page{
		floorPage("Sheet A-2"),
		floorPage("Sheet A-3"),
	}

	assembler := NewAssembler(DefaultOptions())
	building := assembler.Assemble(pages)

	require.Len(t, building.Floors, 2)
	assert.Equal(t, "Floor 1", building.Floors[0].Name)
	assert.Equal(t, "Floor 2", building.Floors[1].Name)
}

func TestAssembleBasement(t *testing.T) {
	assembler := NewAssembler(DefaultOptions())
	building := assembler.Assemble([]models.Page{floorPage("Basement Plan")})

	require.Len(t, building.Floors, 1)
	assert.Equal(t, -1, building.Floors[0].Level)
	assert.Equal(t, -8.0, building.Floors[0].Elevation)
}

func TestAssembleScaleAnnotation(t *testing.T) {
	pages := []models.Page{
		floorPage(`First Floor Plan  Scale: 1/4" = 1'-0"`),
	}

	assembler := NewAssembler(DefaultOptions())
	building := assembler.Assemble(pages)

	assert.InDelta(t, 1.0/18.0, building.ScaleFactor, 1e-9)
}

func TestAssembleScaleLastMatchWins(t *testing.T) {
	pages := []models.Page{
		floorPage(`First Floor Plan  Scale: 1/4" = 1'-0"`),
		floorPage(`Second Floor Plan  Scale: 1/8" = 1'-0"`),
	}

	assembler := NewAssembler(DefaultOptions())
	building := assembler.Assemble(pages)

	assert.InDelta(t, 1.0/9.0, building.ScaleFactor, 1e-9)
}

func TestAssembleDefaultScale(t *testing.T) {
	assembler := NewAssembler(DefaultOptions())
	building := assembler.Assemble([]models.Page{floorPage("First Floor Plan")})
	assert.Equal(t, 1.0, building.ScaleFactor)
}

func TestAssembleDoorAttachment(t *testing.T) {
	page := floorPage("First Floor Plan")
	// A door arc inside the room, closest to the bottom wall.
	page.Lines = append(page.Lines, models.Line{X0: 40, Y0: 30, X1: 70, Y1: 30})

	assembler := NewAssembler(DefaultOptions())
	building := assembler.Assemble([]models.Page{page})

	require.Len(t, building.Floors, 1)
	require.Len(t, building.Floors[0].Rooms, 1)

	doors := building.Floors[0].Rooms[0].Doors
	require.Len(t, doors, 1)
	assert.Equal(t, models.Point{X: 55, Y: 30}, doors[0].Position)
	require.NotNil(t, doors[0].WallIndex)
	assert.Equal(t, 0, *doors[0].WallIndex)
}

func TestAssembleDoorOutsideRoomsDropped(t *testing.T) {
	page := floorPage("First Floor Plan")
	page.Lines = append(page.Lines, models.Line{X0: 300, Y0: 300, X1: 330, Y1: 300})

	assembler := NewAssembler(DefaultOptions())
	building := assembler.Assemble([]models.Page{page})

	assert.Empty(t, building.Floors[0].Rooms[0].Doors)
}

func TestAssembleEmptyPages(t *testing.T) {
	assembler := NewAssembler(DefaultOptions())

	building := assembler.Assemble(nil)
	assert.Empty(t, building.Floors)
	assert.Empty(t, building.Elevations)

	building = assembler.Assemble([]models.Page{{}})
	require.Len(t, building.Floors, 1)
	assert.Empty(t, building.Floors[0].Rooms)
}

func TestParseScaleAnnotation(t *testing.T) {
	tests := []struct {
		text string
		want float64
		ok   bool
	}{
		{`1/4" = 1'-0"`, 1.0 / 18.0, true},
		{`1/8" = 1'-0"`, 1.0 / 9.0, true},
		{`1/2" = 1'-6"`, 1.5 / 36.0, true},
		{`3/16" = 1'`, 1.0 / 13.5, true},
		{`no scale here`, 0, false},
	}

	for _, tc := range tests {
		got, ok := parseScaleAnnotation(tc.text)
		assert.Equal(t, tc.ok, ok, tc.text)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, tc.text)
		}
	}
}
