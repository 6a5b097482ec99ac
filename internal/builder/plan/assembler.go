package plan

import (
	"fmt"
	"math"
	"regexp"
	"sort"

	"plan2model/internal/builder/models"
)

// ============================================================
// Building Assembler
// ============================================================

const (
	// Допуск для шумового фильтра, совпадения углов и привязки к контуру.
	DefaultTolerance = 5.0

	defaultFloorHeight   = 8.0
	defaultWallThickness = 0.5
)

// Options — настройки пайплайна реконструкции.
type Options struct {
	Tolerance float64
}

// DefaultOptions возвращает настройки по умолчанию.
func DefaultOptions() Options {
	return Options{Tolerance: DefaultTolerance}
}

// Assembler собирает граф здания из страниц чертежа, страница за страницей.
type Assembler struct {
	opts Options
}

// NewAssembler создает ассемблер с заданными настройками.
func NewAssembler(opts Options) *Assembler {
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultTolerance
	}
	return &Assembler{opts: opts}
}

// Assemble обходит страницы по порядку документа. Каждая страница
// классифицируется ровно один раз: либо фасад, либо этаж. Аннотация
// масштаба на любой странице перезаписывает глобальный масштаб (побеждает
// последняя). В конце этажи сортируются по уровню.
func (a *Assembler) Assemble(pages []models.Page) *models.Building {
	building := models.NewBuilding()

	for pageIndex, page := range pages {
		if factor, ok := parseScaleAnnotation(page.Text); ok {
			building.ScaleFactor = factor
		}

		if view, ok := DetectElevationView(page.Text); ok {
			building.Elevations = append(building.Elevations, BuildElevation(page, view))
			continue
		}

		floor := a.buildFloor(page, pageIndex)
		a.appendFloor(building, floor)
	}

	sort.SliceStable(building.Floors, func(i, j int) bool {
		return building.Floors[i].Level < building.Floors[j].Level
	})

	return building
}

// buildFloor прогоняет страницу через классификатор, поиск прямоугольников
// и ассоциацию подписей, затем раскладывает двери по комнатам.
func (a *Assembler) buildFloor(page models.Page, pageIndex int) models.Floor {
	horizontal, vertical := ClassifySegments(page.Lines, a.opts.Tolerance)
	polygons := InferRectangles(horizontal, vertical, a.opts.Tolerance)
	names := LabelRooms(polygons, page.Words)

	level, name := floorLabel(page.Text, pageIndex)

	floor := models.Floor{
		Level:         level,
		Name:          name,
		Rooms:         make([]models.Room, 0, len(polygons)),
		Height:        defaultFloorHeight,
		Elevation:     float64(level) * defaultFloorHeight,
		ExteriorWalls: []models.Wall{},
		InteriorWalls: []models.Wall{},
	}

	for i, poly := range polygons {
		floor.Rooms = append(floor.Rooms, models.NewRoom(names[i], level, poly))
	}

	a.deriveWalls(&floor)
	a.attachOpenings(&floor, page)

	return floor
}

// deriveWalls строит стены из ребер границ комнат. Ребро, лежащее на
// габаритном контуре этажа, считается наружной стеной.
func (a *Assembler) deriveWalls(floor *models.Floor) {
	bounds, ok := floorBounds(floor)

	for _, room := range floor.Rooms {
		n := len(room.BoundaryPoints)
		if n < 3 {
			continue
		}
		for i := 0; i < n; i++ {
			start := room.BoundaryPoints[i]
			end := room.BoundaryPoints[(i+1)%n]
			wall := models.Wall{
				Start:     start,
				End:       end,
				Thickness: defaultWallThickness,
				Height:    room.Height,
			}
			if wall.Length() == 0 {
				continue
			}
			if ok && a.onFootprint(start, end, bounds) {
				wall.IsExterior = true
				floor.ExteriorWalls = append(floor.ExteriorWalls, wall)
			} else {
				floor.InteriorWalls = append(floor.InteriorWalls, wall)
			}
		}
	}
}

// attachOpenings раздает найденные двери комнатам: дверь принадлежит
// первой комнате, граница которой содержит ее позицию. Двери вне всех
// комнат отбрасываются как шум чертежа. WallIndex — индекс ближайшей
// стены в объединенном списке стен этажа.
func (a *Assembler) attachOpenings(floor *models.Floor, page models.Page) {
	doors := DetectDoors(page.Lines)
	windows := DetectWindows(page.Lines)
	walls := floor.Walls()

	for _, door := range doors {
		for i := range floor.Rooms {
			if !pointInPolygon(door.Position, floor.Rooms[i].BoundaryPoints) {
				continue
			}
			if idx, ok := nearestWallIndex(walls, door.Position); ok {
				door.WallIndex = &idx
			}
			floor.Rooms[i].Doors = append(floor.Rooms[i].Doors, door)
			break
		}
	}

	for _, window := range windows {
		for i := range floor.Rooms {
			if !pointInPolygon(window.Position, floor.Rooms[i].BoundaryPoints) {
				continue
			}
			if idx, ok := nearestWallIndex(walls, window.Position); ok {
				window.WallIndex = &idx
			}
			floor.Rooms[i].Windows = append(floor.Rooms[i].Windows, window)
			break
		}
	}
}

// appendFloor добавляет этаж в здание. Уровни уникальны: страница с уже
// занятым уровнем вливает свои комнаты и стены в существующий этаж.
func (a *Assembler) appendFloor(building *models.Building, floor models.Floor) {
	existing := building.FloorByLevel(floor.Level)
	if existing == nil {
		building.Floors = append(building.Floors, floor)
		return
	}

	existing.Rooms = append(existing.Rooms, floor.Rooms...)
	existing.ExteriorWalls = append(existing.ExteriorWalls, floor.ExteriorWalls...)
	existing.InteriorWalls = append(existing.InteriorWalls, floor.InteriorWalls...)
}

// ============================================================
// Floor labels & scale annotation
// ============================================================

var floorPatterns = []struct {
	re    *regexp.Regexp
	level int
	name  string
}{
	{regexp.MustCompile(`(?i)\bbasement\b`), -1, "Basement"},
	{regexp.MustCompile(`(?i)\b(?:ground|main)\s+floor\b`), 0, "Ground Floor"},
	{regexp.MustCompile(`(?i)\b(?:first|1st)\s+floor\b`), 0, "First Floor"},
	{regexp.MustCompile(`(?i)\b(?:second|2nd)\s+floor\b`), 1, "Second Floor"},
	{regexp.MustCompile(`(?i)\b(?:third|3rd)\s+floor\b`), 2, "Third Floor"},
}

// floorLabel извлекает уровень и имя этажа из текста страницы, по
// умолчанию — индекс страницы.
func floorLabel(text string, pageIndex int) (int, string) {
	for _, pattern := range floorPatterns {
		if pattern.re.MatchString(text) {
			return pattern.level, pattern.name
		}
	}
	return pageIndex, fmt.Sprintf("Floor %d", pageIndex+1)
}

// Архитектурная аннотация масштаба вида 1/4" = 1'-0".
var scalePattern = regexp.MustCompile(`(\d+)\s*/\s*(\d+)"\s*=\s*(\d+)'(?:\s*-\s*(\d+)")?`)

// Пункты PDF на дюйм бумаги.
const pointsPerInch = 72.0

// parseScaleAnnotation возвращает реальные футы на единицу чертежа.
func parseScaleAnnotation(text string) (float64, bool) {
	match := scalePattern.FindStringSubmatch(text)
	if match == nil {
		return 0, false
	}

	numerator := parseDigits(match[1])
	denominator := parseDigits(match[2])
	feet := parseDigits(match[3])
	inches := 0.0
	if match[4] != "" {
		inches = parseDigits(match[4])
	}

	if numerator == 0 || denominator == 0 {
		return 0, false
	}

	paperInches := numerator / denominator
	realFeet := feet + inches/12.0
	return realFeet / (paperInches * pointsPerInch), true
}

func parseDigits(s string) float64 {
	value := 0.0
	for _, r := range s {
		value = value*10 + float64(r-'0')
	}
	return value
}

// ============================================================
// Geometry helpers
// ============================================================

type bounds struct {
	minX, minY, maxX, maxY float64
}

func floorBounds(floor *models.Floor) (bounds, bool) {
	first := true
	var b bounds
	for _, room := range floor.Rooms {
		for _, p := range room.BoundaryPoints {
			if first {
				b = bounds{minX: p.X, minY: p.Y, maxX: p.X, maxY: p.Y}
				first = false
				continue
			}
			b.minX = math.Min(b.minX, p.X)
			b.minY = math.Min(b.minY, p.Y)
			b.maxX = math.Max(b.maxX, p.X)
			b.maxY = math.Max(b.maxY, p.Y)
		}
	}
	return b, !first
}

// onFootprint истинно, когда оба конца ребра лежат на одной и той же
// стороне габаритного контура (в пределах допуска).
func (a *Assembler) onFootprint(start, end models.Point, b bounds) bool {
	tol := a.opts.Tolerance
	onSide := func(v1, v2, side float64) bool {
		return math.Abs(v1-side) < tol && math.Abs(v2-side) < tol
	}
	return onSide(start.X, end.X, b.minX) ||
		onSide(start.X, end.X, b.maxX) ||
		onSide(start.Y, end.Y, b.minY) ||
		onSide(start.Y, end.Y, b.maxY)
}

// pointInPolygon — четно-нечетный тест лучом.
func pointInPolygon(p models.Point, polygon []models.Point) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := polygon[i], polygon[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			x := pi.X + (p.Y-pi.Y)/(pj.Y-pi.Y)*(pj.X-pi.X)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// nearestWallIndex ищет ближайшую к точке стену.
func nearestWallIndex(walls []models.Wall, p models.Point) (int, bool) {
	best := -1
	minDist := math.MaxFloat64

	for i, wall := range walls {
		dist := pointToSegmentDistance(p, wall.Start, wall.End)
		if dist < minDist {
			minDist = dist
			best = i
		}
	}

	if best < 0 {
		return 0, false
	}
	return best, true
}

func pointToSegmentDistance(p, v1, v2 models.Point) float64 {
	dx := v2.X - v1.X
	dy := v2.Y - v1.Y
	lengthSq := dx*dx + dy*dy

	if lengthSq == 0 {
		return math.Sqrt((p.X-v1.X)*(p.X-v1.X) + (p.Y-v1.Y)*(p.Y-v1.Y))
	}

	t := ((p.X-v1.X)*dx + (p.Y-v1.Y)*dy) / lengthSq
	t = math.Max(0, math.Min(1, t))

	projX := v1.X + t*dx
	projY := v1.Y + t*dy
	return math.Sqrt((p.X-projX)*(p.X-projX) + (p.Y-projY)*(p.Y-projY))
}
