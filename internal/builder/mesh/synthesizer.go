package mesh

import (
	"math"

	"plan2model/internal/builder/models"
)

// ============================================================
// Mesh Synthesizer
// ============================================================

const (
	// Перевод футов в метры — масштаб по умолчанию.
	DefaultScale = 0.3048

	floorSlabThickness   = 0.5
	ceilingSlabThickness = 0.25
	defaultWallThickness = 0.5
	defaultWallHeight    = 8.0

	// Минимальная длина сырого отрезка, чтобы считать его стеной.
	rawWallThreshold = 20.0
)

// Synthesizer превращает граф здания в треугольный меш. Масштаб
// применяется к каждой координате в момент эмиссии; в графе здания
// координаты остаются в единицах чертежа.
type Synthesizer struct {
	scale float64
}

// NewSynthesizer создает синтезатор с заданным глобальным масштабом.
func NewSynthesizer(scale float64) *Synthesizer {
	if scale <= 0 {
		scale = 1.0
	}
	return &Synthesizer{scale: scale}
}

// Synthesize выбирает путь синтеза по строгой цепочке приоритетов:
// явный плейсхолдер → граф здания → сырые отрезки → плейсхолдер.
// Каждая ветка терминальна.
func (s *Synthesizer) Synthesize(building *models.Building, rawLines []models.Line, usePlaceholder bool) *Mesh {
	switch {
	case usePlaceholder:
		return s.Placeholder()
	case building != nil && (len(building.Floors) > 0 || len(building.Elevations) > 0):
		return s.FromBuilding(building)
	case len(rawLines) > 0:
		return s.FromLines(rawLines)
	default:
		return s.Placeholder()
	}
}

// FromBuilding обходит здание и эмитирует стены, плиты пола и потолка для
// каждой комнаты плюс упрощенную двускатную крышу. Если ничего пригодного
// не получилось, возвращает плейсхолдер.
func (s *Synthesizer) FromBuilding(building *models.Building) *Mesh {
	result := &Mesh{}

	for _, floor := range building.Floors {
		for _, room := range floor.Rooms {
			s.emitRoom(result, room, floor.Elevation)
		}
	}

	if profile, base, ok := roofSource(building); ok {
		result.Merge(s.gableRoof(building, profile, base))
	}

	if result.IsEmpty() {
		return s.Placeholder()
	}
	return result
}

func (s *Synthesizer) emitRoom(result *Mesh, room models.Room, elevation float64) {
	n := len(room.BoundaryPoints)
	if n < 3 {
		// Вырожденная граница: ни стен, ни плит.
		return
	}

	for i := 0; i < n; i++ {
		start := room.BoundaryPoints[i]
		end := room.BoundaryPoints[(i+1)%n]
		result.Merge(s.wallPrism(start, end, defaultWallThickness, room.Height, elevation))
	}

	result.Merge(s.slab(room.BoundaryPoints, elevation-floorSlabThickness, floorSlabThickness))
	result.Merge(s.slab(room.BoundaryPoints, elevation+room.Height, ceilingSlabThickness))
}

// wallPrism строит прямоугольную призму стены между двумя точками.
// Нулевая длина — пустой меш.
func (s *Synthesizer) wallPrism(start, end models.Point, thickness, height, baseZ float64) *Mesh {
	x0, y0 := start.X*s.scale, start.Y*s.scale
	x1, y1 := end.X*s.scale, end.Y*s.scale

	dx := x1 - x0
	dy := y1 - y0
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return &Mesh{}
	}

	// Half-thickness offset perpendicular to the wall direction.
	px := -dy / length * thickness * s.scale / 2
	py := dx / length * thickness * s.scale / 2

	zb := baseZ * s.scale
	zt := zb + height*s.scale

	return &Mesh{
		Vertices: []Vector3{
			{x0 - px, y0 - py, zb},
			{x0 + px, y0 + py, zb},
			{x1 + px, y1 + py, zb},
			{x1 - px, y1 - py, zb},
			{x0 - px, y0 - py, zt},
			{x0 + px, y0 + py, zt},
			{x1 + px, y1 + py, zt},
			{x1 - px, y1 - py, zt},
		},
		Faces: []Triangle{
			{0, 2, 1}, {0, 3, 2},
			{4, 5, 6}, {4, 6, 7},
			{0, 1, 5}, {0, 5, 4},
			{1, 2, 6}, {1, 6, 5},
			{2, 3, 7}, {2, 7, 6},
			{3, 0, 4}, {3, 4, 7},
		},
	}
}

// slab выдавливает многоугольник в плиту толщиной thickness от baseZ вверх.
// Крышки триангулируются отсечением ушей, поэтому невыпуклые комнаты тоже
// закрываются корректно.
func (s *Synthesizer) slab(points []models.Point, baseZ, thickness float64) *Mesh {
	n := len(points)
	if n < 3 {
		return &Mesh{}
	}

	caps := EarClip(points)
	if len(caps) == 0 {
		return &Mesh{}
	}

	z0 := baseZ * s.scale
	z1 := (baseZ + thickness) * s.scale

	result := &Mesh{Vertices: make([]Vector3, 0, n*2)}
	for _, p := range points {
		result.Vertices = append(result.Vertices, Vector3{p.X * s.scale, p.Y * s.scale, z0})
	}
	for _, p := range points {
		result.Vertices = append(result.Vertices, Vector3{p.X * s.scale, p.Y * s.scale, z1})
	}

	// Bottom cap faces down, top cap faces up.
	for _, tri := range caps {
		result.Faces = append(result.Faces, Triangle{tri[0], tri[2], tri[1]})
	}
	for _, tri := range caps {
		result.Faces = append(result.Faces, Triangle{tri[0] + n, tri[1] + n, tri[2] + n})
	}

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		result.Faces = append(result.Faces,
			Triangle{i, j, j + n},
			Triangle{i, j + n, i + n},
		)
	}

	return result
}

// ============================================================
// Roof
// ============================================================

// roofSource ищет первый фасад с профилем крыши и базовую высоту конька:
// отметка верхнего этажа плюс его высота.
func roofSource(building *models.Building) (*models.RoofProfile, float64, bool) {
	if len(building.Floors) == 0 {
		return nil, 0, false
	}

	for i := range building.Elevations {
		if building.Elevations[i].RoofProfile == nil {
			continue
		}
		top := building.Floors[len(building.Floors)-1]
		return building.Elevations[i].RoofProfile, top.Elevation + top.Height, true
	}
	return nil, 0, false
}

// gableRoof строит две наклонные плоскости от контура верхнего этажа к
// линии конька. Высшая точка профиля задает подъем конька. Фронтоны
// остаются открытыми.
func (s *Synthesizer) gableRoof(building *models.Building, profile *models.RoofProfile, baseZ float64) *Mesh {
	top := building.Floors[len(building.Floors)-1]

	first := true
	var minX, minY, maxX, maxY float64
	for _, room := range top.Rooms {
		for _, p := range room.BoundaryPoints {
			if first {
				minX, maxX, minY, maxY = p.X, p.X, p.Y, p.Y
				first = false
				continue
			}
			minX = math.Min(minX, p.X)
			maxX = math.Max(maxX, p.X)
			minY = math.Min(minY, p.Y)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if first || maxX-minX == 0 || maxY-minY == 0 {
		return &Mesh{}
	}

	minZ, maxZ := profile.Points[0].Z, profile.Points[0].Z
	for _, p := range profile.Points[1:] {
		minZ = math.Min(minZ, p.Z)
		maxZ = math.Max(maxZ, p.Z)
	}
	rise := maxZ - minZ

	sc := s.scale
	base := baseZ * sc
	ridge := (baseZ + rise) * sc

	result := &Mesh{}
	if maxX-minX >= maxY-minY {
		// Ridge runs along X at mid-Y.
		midY := (minY + maxY) / 2
		result.Vertices = []Vector3{
			{minX * sc, minY * sc, base},
			{maxX * sc, minY * sc, base},
			{maxX * sc, midY * sc, ridge},
			{minX * sc, midY * sc, ridge},
			{maxX * sc, maxY * sc, base},
			{minX * sc, maxY * sc, base},
		}
	} else {
		// Ridge runs along Y at mid-X.
		midX := (minX + maxX) / 2
		result.Vertices = []Vector3{
			{minX * sc, minY * sc, base},
			{minX * sc, maxY * sc, base},
			{midX * sc, maxY * sc, ridge},
			{midX * sc, minY * sc, ridge},
			{maxX * sc, maxY * sc, base},
			{maxX * sc, minY * sc, base},
		}
	}
	// Two planar quads sharing the ridge edge.
	result.Faces = []Triangle{
		{0, 1, 2}, {0, 2, 3},
		{4, 5, 3}, {4, 3, 2},
	}

	return result
}

// ============================================================
// Fallbacks
// ============================================================

// FromLines строит наивный меш только из стен по сырым отрезкам длиннее
// порога. Если ни один отрезок не прошел, возвращает одиночную
// комнату-плейсхолдер.
func (s *Synthesizer) FromLines(lines []models.Line) *Mesh {
	result := &Mesh{}

	for _, line := range lines {
		if line.Length() <= rawWallThreshold {
			continue
		}
		result.Merge(s.wallPrism(
			models.Point{X: line.X0, Y: line.Y0},
			models.Point{X: line.X1, Y: line.Y1},
			defaultWallThickness,
			defaultWallHeight,
			0,
		))
	}

	if result.IsEmpty() {
		return s.placeholderRoom(10, 12, 8)
	}
	return result
}

// Placeholder — детерминированная двухкомнатная заглушка, чтобы даунстрим
// всегда получал непустой экспортируемый меш.
func (s *Synthesizer) Placeholder() *Mesh {
	result := s.placeholderRoom(10, 12, 8)

	second := s.placeholderRoom(8, 10, 8)
	second.Translate(10*s.scale, 0, 0)
	result.Merge(second)

	return result
}

// placeholderRoom — простая коробка width×length×height от начала координат.
func (s *Synthesizer) placeholderRoom(width, length, height float64) *Mesh {
	w := width * s.scale
	l := length * s.scale
	h := height * s.scale

	return &Mesh{
		Vertices: []Vector3{
			{0, 0, 0},
			{w, 0, 0},
			{w, l, 0},
			{0, l, 0},
			{0, 0, h},
			{w, 0, h},
			{w, l, h},
			{0, l, h},
		},
		Faces: []Triangle{
			{0, 1, 2}, {0, 2, 3},
			{4, 6, 5}, {4, 7, 6},
			{0, 4, 5}, {0, 5, 1},
			{1, 5, 6}, {1, 6, 2},
			{2, 6, 7}, {2, 7, 3},
			{3, 7, 4}, {3, 4, 0},
		},
	}
}
