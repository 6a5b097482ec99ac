package models

import (
	"math"
	"strings"
)

// ============================================================
// Building Model
// ============================================================

// Point — точка чертежа (2D) или модели (3D).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Wall — сегмент стены между двумя точками.
type Wall struct {
	Start      Point   `json:"start"`
	End        Point   `json:"end"`
	Thickness  float64 `json:"thickness"`
	Height     float64 `json:"height"`
	IsExterior bool    `json:"is_exterior"`
}

// Length возвращает длину стены.
func (w Wall) Length() float64 {
	dx := w.End.X - w.Start.X
	dy := w.End.Y - w.Start.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Angle возвращает угол стены в радианах.
func (w Wall) Angle() float64 {
	return math.Atan2(w.End.Y-w.Start.Y, w.End.X-w.Start.X)
}

// Door — дверь; WallIndex ссылается на стену этажа только по индексу.
type Door struct {
	Position  Point   `json:"position"`
	Width     float64 `json:"width"`
	Height    float64 `json:"height"`
	WallIndex *int    `json:"wall_index,omitempty"`
}

const DefaultDoorHeight = 7.0

// NewDoor создает дверь с высотой по умолчанию.
func NewDoor(position Point, width float64) Door {
	return Door{Position: position, Width: width, Height: DefaultDoorHeight}
}

// Window — окно; та же дисциплина слабой ссылки, что и у Door.
type Window struct {
	Position   Point   `json:"position"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	SillHeight float64 `json:"sill_height"`
	WallIndex  *int    `json:"wall_index,omitempty"`
}

const (
	DefaultWindowHeight = 4.0
	DefaultSillHeight   = 3.0
)

// NewWindow создает окно с размерами по умолчанию.
func NewWindow(position Point, width float64) Window {
	return Window{
		Position:   position,
		Width:      width,
		Height:     DefaultWindowHeight,
		SillHeight: DefaultSillHeight,
	}
}

// Room — комната. Area считается один раз при построении; при изменении
// границы комната пересоздается, а не мутируется.
type Room struct {
	Name           string   `json:"name"`
	FloorLevel     int      `json:"floor_level"`
	BoundaryPoints []Point  `json:"boundary_points"`
	Doors          []Door   `json:"doors"`
	Windows        []Window `json:"windows"`
	Area           float64  `json:"area"`
	Height         float64  `json:"height"`
}

const DefaultRoomHeight = 8.0

// NewRoom создает комнату и вычисляет площадь по формуле шнурования.
func NewRoom(name string, level int, boundary []Point) Room {
	return Room{
		Name:           name,
		FloorLevel:     level,
		BoundaryPoints: boundary,
		Doors:          []Door{},
		Windows:        []Window{},
		Area:           ShoelaceArea(boundary),
		Height:         DefaultRoomHeight,
	}
}

// ShoelaceArea возвращает площадь замкнутого многоугольника.
// Меньше трех вершин — площадь ноль.
func ShoelaceArea(points []Point) float64 {
	n := len(points)
	if n < 3 {
		return 0.0
	}

	area := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += points[i].X * points[j].Y
		area -= points[j].X * points[i].Y
	}
	return math.Abs(area) / 2.0
}

// Floor — этаж здания. Elevation задается отдельно и не обязан равняться
// Level*Height.
type Floor struct {
	Level         int     `json:"level"`
	Name          string  `json:"name"`
	Rooms         []Room  `json:"rooms"`
	Height        float64 `json:"height"`
	Elevation     float64 `json:"elevation"`
	ExteriorWalls []Wall  `json:"exterior_walls"`
	InteriorWalls []Wall  `json:"interior_walls"`
}

// TotalArea возвращает суммарную площадь комнат этажа.
func (f Floor) TotalArea() float64 {
	total := 0.0
	for _, room := range f.Rooms {
		total += room.Area
	}
	return total
}

// Walls возвращает стены этажа одним списком: сначала наружные, затем
// внутренние. Door.WallIndex и Window.WallIndex индексируют именно этот
// порядок.
func (f Floor) Walls() []Wall {
	walls := make([]Wall, 0, len(f.ExteriorWalls)+len(f.InteriorWalls))
	walls = append(walls, f.ExteriorWalls...)
	walls = append(walls, f.InteriorWalls...)
	return walls
}

// RoofProfile — силуэт крыши с вида фасада.
type RoofProfile struct {
	Points []Point `json:"points"`
	Pitch  float64 `json:"pitch"`
}

// NewRoofProfile создает профиль и вычисляет уклон как максимальный угол
// подъема между соседними точками.
func NewRoofProfile(points []Point) RoofProfile {
	return RoofProfile{Points: points, Pitch: profilePitch(points)}
}

func profilePitch(points []Point) float64 {
	if len(points) < 2 {
		return 0.0
	}

	maxPitch := 0.0
	for i := 0; i < len(points)-1; i++ {
		dx := math.Abs(points[i+1].X - points[i].X)
		dz := math.Abs(points[i+1].Z - points[i].Z)
		if dx > 0 {
			pitch := math.Atan(dz/dx) * 180.0 / math.Pi
			if pitch > maxPitch {
				maxPitch = pitch
			}
		}
	}
	return maxPitch
}

// Elevation — вид фасада: front, rear, left или right.
type Elevation struct {
	View             string       `json:"view"`
	RoofProfile      *RoofProfile `json:"roof_profile,omitempty"`
	Windows          []Window     `json:"windows"`
	Doors            []Door       `json:"doors"`
	Width            float64      `json:"width"`
	Height           float64      `json:"height"`
	FoundationHeight float64      `json:"foundation_height"`
}

// Roof — конструкция крыши. Пайплайн реконструкции это поле не заполняет:
// геометрия крыши идет через Elevation.RoofProfile.
type Roof struct {
	RoofType string        `json:"roof_type"`
	Pitch    float64       `json:"pitch"`
	Overhang float64       `json:"overhang"`
	Profiles []RoofProfile `json:"profiles"`
}

// Building — итоговый граф здания. Владеет всеми этажами и фасадами.
type Building struct {
	Floors      []Floor     `json:"floors"`
	Elevations  []Elevation `json:"elevations"`
	Roof        *Roof       `json:"roof,omitempty"`
	ScaleFactor float64     `json:"scale_factor"`
	Origin      Point       `json:"origin"`
}

// NewBuilding создает пустое здание с масштабом 1.0.
func NewBuilding() *Building {
	return &Building{
		Floors:      []Floor{},
		Elevations:  []Elevation{},
		ScaleFactor: 1.0,
	}
}

// TotalHeight возвращает полную высоту здания с учетом крыши.
func (b *Building) TotalHeight() float64 {
	if len(b.Floors) == 0 {
		return 0.0
	}

	maxElevation := 0.0
	for i, floor := range b.Floors {
		top := floor.Elevation + floor.Height
		if i == 0 || top > maxElevation {
			maxElevation = top
		}
	}

	if b.Roof != nil {
		maxRoof := 0.0
		for _, profile := range b.Roof.Profiles {
			for _, p := range profile.Points {
				if p.Z > maxRoof {
					maxRoof = p.Z
				}
			}
		}
		maxElevation += maxRoof
	}

	return maxElevation
}

// FloorByLevel возвращает этаж по уровню или nil.
func (b *Building) FloorByLevel(level int) *Floor {
	for i := range b.Floors {
		if b.Floors[i].Level == level {
			return &b.Floors[i]
		}
	}
	return nil
}

// ElevationByView возвращает фасад по имени вида или nil.
func (b *Building) ElevationByView(view string) *Elevation {
	for i := range b.Elevations {
		if strings.EqualFold(b.Elevations[i].View, view) {
			return &b.Elevations[i]
		}
	}
	return nil
}
