package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plan2model/internal/builder/models"
)

func squareRoom(size float64) models.Room {
	return models.NewRoom("Room", 0, []models.Point{
		{X: 0, Y: 0}, {X: size, Y: 0}, {X: size, Y: size}, {X: 0, Y: size},
	})
}

func TestPlaceholderGeometry(t *testing.T) {
	s := NewSynthesizer(1.0)
	m := s.Placeholder()

	// Two boxes of 8 vertices and 12 faces each.
	assert.Len(t, m.Vertices, 16)
	assert.Len(t, m.Faces, 24)

	min, max := m.Bounds()
	assert.Equal(t, Vector3{}, min)
	assert.Equal(t, Vector3{X: 18, Y: 12, Z: 8}, max)
}

func TestPlaceholderScale(t *testing.T) {
	full := NewSynthesizer(1.0).Placeholder()
	half := NewSynthesizer(0.5).Placeholder()

	require.Len(t, half.Vertices, len(full.Vertices))
	assert.Equal(t, full.Faces, half.Faces)

	for i, v := range full.Vertices {
		assert.InDelta(t, v.X*0.5, half.Vertices[i].X, 1e-9)
		assert.InDelta(t, v.Y*0.5, half.Vertices[i].Y, 1e-9)
		assert.InDelta(t, v.Z*0.5, half.Vertices[i].Z, 1e-9)
	}
}

func TestFromBuildingScale(t *testing.T) {
	profile := models.NewRoofProfile([]models.Point{
		{X: 0, Z: 0}, {X: 50, Z: 6}, {X: 100, Z: 0},
	})

	building := models.NewBuilding()
	building.Floors = []models.Floor{{
		Level:  0,
		Rooms:  []models.Room{squareRoom(10)},
		Height: 8,
	}}
	building.Elevations = []models.Elevation{{View: "front", RoofProfile: &profile}}

	full := NewSynthesizer(1.0).FromBuilding(building)
	half := NewSynthesizer(0.5).FromBuilding(building)

	// Walls, slabs and the roof all shrink together; topology is untouched.
	require.Len(t, half.Vertices, len(full.Vertices))
	assert.Equal(t, full.Faces, half.Faces)

	for i, v := range full.Vertices {
		assert.InDelta(t, v.X*0.5, half.Vertices[i].X, 1e-9)
		assert.InDelta(t, v.Y*0.5, half.Vertices[i].Y, 1e-9)
		assert.InDelta(t, v.Z*0.5, half.Vertices[i].Z, 1e-9)
	}
}

func TestPlaceholderDeterministic(t *testing.T) {
	s := NewSynthesizer(DefaultScale)
	assert.Equal(t, s.Placeholder(), s.Placeholder())
}

func TestSynthesizePriority(t *testing.T) {
	s := NewSynthesizer(1.0)

	building := models.NewBuilding()
	building.Floors = []models.Floor{{
		Level:  0,
		Rooms:  []models.Room{squareRoom(10)},
		Height: 8,
	}}
	lines := []models.Line{{X0: 0, Y0: 0, X1: 100, Y1: 0}}

	// An explicit placeholder request wins over everything.
	forced := s.Synthesize(building, lines, true)
	assert.Equal(t, s.Placeholder(), forced)

	// A populated building wins over raw lines.
	fromBuilding := s.Synthesize(building, lines, false)
	assert.Equal(t, s.FromBuilding(building), fromBuilding)

	// Raw lines are the fallback for an empty building.
	fromLines := s.Synthesize(models.NewBuilding(), lines, false)
	assert.Equal(t, s.FromLines(lines), fromLines)

	// Nothing at all still produces an exportable mesh.
	empty := s.Synthesize(nil, nil, false)
	assert.Equal(t, s.Placeholder(), empty)
}

func TestFromBuildingRoomCounts(t *testing.T) {
	building := models.NewBuilding()
	building.Floors = []models.Floor{{
		Level:  0,
		Rooms:  []models.Room{squareRoom(10)},
		Height: 8,
	}}

	m := NewSynthesizer(1.0).FromBuilding(building)

	// Four wall prisms plus floor and ceiling slabs.
	assert.Len(t, m.Vertices, 4*8+2*8)
	assert.Len(t, m.Faces, 4*12+2*12)

	min, max := m.Bounds()
	// Floor slab hangs below the room by its thickness.
	assert.InDelta(t, -0.5, min.Z, 1e-9)
	// Ceiling slab tops out above wall height.
	assert.InDelta(t, 8.25, max.Z, 1e-9)
}

func TestFromBuildingDegenerateRoomFallsBack(t *testing.T) {
	building := models.NewBuilding()
	building.Floors = []models.Floor{{
		Level: 0,
		Rooms: []models.Room{models.NewRoom("Sliver", 0, []models.Point{
			{X: 0, Y: 0}, {X: 10, Y: 0},
		})},
		Height: 8,
	}}

	s := NewSynthesizer(1.0)
	assert.Equal(t, s.Placeholder(), s.FromBuilding(building))
}

func TestFromBuildingGableRoof(t *testing.T) {
	profile := models.NewRoofProfile([]models.Point{
		{X: 0, Z: 0}, {X: 50, Z: 6}, {X: 100, Z: 0},
	})

	building := models.NewBuilding()
	building.Floors = []models.Floor{{
		Level:  0,
		Rooms:  []models.Room{squareRoom(10)},
		Height: 8,
	}}
	building.Elevations = []models.Elevation{{View: "front", RoofProfile: &profile}}

	bare := NewSynthesizer(1.0).FromBuilding(&models.Building{
		Floors:      building.Floors,
		ScaleFactor: 1.0,
	})
	roofed := NewSynthesizer(1.0).FromBuilding(building)

	assert.Len(t, roofed.Vertices, len(bare.Vertices)+6)
	assert.Len(t, roofed.Faces, len(bare.Faces)+4)

	// The ridge rises by the profile height above the top plate.
	_, max := roofed.Bounds()
	assert.InDelta(t, 8.0+6.0, max.Z, 1e-9)
}

func TestFromLines(t *testing.T) {
	s := NewSynthesizer(1.0)

	m := s.FromLines([]models.Line{
		{X0: 0, Y0: 0, X1: 100, Y1: 0},
		{X0: 0, Y0: 0, X1: 5, Y1: 0}, // below the wall threshold
	})

	// One line survives the threshold and becomes a single prism.
	assert.Len(t, m.Vertices, 8)
	assert.Len(t, m.Faces, 12)

	// Nothing above the threshold falls back to a single box.
	short := s.FromLines([]models.Line{{X0: 0, Y0: 0, X1: 5, Y1: 0}})
	assert.Len(t, short.Vertices, 8)
	min, max := short.Bounds()
	assert.Equal(t, Vector3{}, min)
	assert.Equal(t, Vector3{X: 10, Y: 12, Z: 8}, max)
}

func TestWallPrismZeroLength(t *testing.T) {
	s := NewSynthesizer(1.0)
	m := s.wallPrism(models.Point{X: 5, Y: 5}, models.Point{X: 5, Y: 5}, 0.5, 8, 0)
	assert.True(t, m.IsEmpty())
	assert.Empty(t, m.Vertices)
}

func TestMeshMerge(t *testing.T) {
	a := &Mesh{
		Vertices: []Vector3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Faces:    []Triangle{{0, 1, 2}},
	}
	b := &Mesh{
		Vertices: []Vector3{{2, 0, 0}, {3, 0, 0}, {2, 1, 0}},
		Faces:    []Triangle{{0, 1, 2}},
	}

	a.Merge(b)
	require.Len(t, a.Vertices, 6)
	require.Len(t, a.Faces, 2)
	assert.Equal(t, Triangle{3, 4, 5}, a.Faces[1])

	a.Merge(nil)
	a.Merge(&Mesh{})
	assert.Len(t, a.Vertices, 6)
}
