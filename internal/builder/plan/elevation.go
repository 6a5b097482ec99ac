package plan

import (
	"math"
	"sort"
	"strings"

	"plan2model/internal/builder/models"
)

// ============================================================
// Elevation / Roof Extractor
// ============================================================

// Доля страницы сверху, в которой ищутся сегменты крыши.
const roofBandRatio = 0.4

// Соседние точки профиля ближе этого по x считаются дубликатами.
const roofPointMergeDistance = 1.0

var elevationViews = []struct {
	view     string
	keywords []string
}{
	{"front", []string{"front", "facade"}},
	{"rear", []string{"rear", "back"}},
	{"left", []string{"left"}},
	{"right", []string{"right"}},
	// A bare "side elevation" carries no direction; it lands on left.
	{"left", []string{"side"}},
}

// DetectElevationView определяет, является ли страница видом фасада.
// Нужно слово "elevation" плюс ключевое слово вида; первый совпавший
// вид побеждает.
func DetectElevationView(text string) (string, bool) {
	lowered := strings.ToLower(text)
	if !strings.Contains(lowered, "elevation") {
		return "", false
	}

	for _, candidate := range elevationViews {
		for _, keyword := range candidate.keywords {
			if strings.Contains(lowered, keyword) {
				return candidate.view, true
			}
		}
	}
	return "", false
}

// ExtractRoofProfile собирает силуэт крыши из сегментов в верхних 40%
// страницы. Обе конечные точки каждого подходящего сегмента попадают в
// профиль; y чертежа фасада становится Z точки. Точки сортируются по x,
// соседние почти совпадающие схлопываются. Меньше двух точек — профиля нет.
func ExtractRoofProfile(lines []models.Line, pageHeight float64) *models.RoofProfile {
	threshold := pageHeight * (1.0 - roofBandRatio)

	var points []models.Point
	for _, line := range lines {
		if line.Y0 < threshold && line.Y1 < threshold {
			continue
		}
		points = append(points,
			models.Point{X: line.X0, Z: line.Y0},
			models.Point{X: line.X1, Z: line.Y1},
		)
	}

	sort.Slice(points, func(i, j int) bool { return points[i].X < points[j].X })
	points = dedupeProfilePoints(points)

	if len(points) < 2 {
		return nil
	}

	profile := models.NewRoofProfile(points)
	return &profile
}

// dedupeProfilePoints схлопывает соседей по x, оставляя первого.
func dedupeProfilePoints(points []models.Point) []models.Point {
	if len(points) == 0 {
		return points
	}

	out := points[:1]
	for i := 1; i < len(points); i++ {
		if math.Abs(points[i].X-out[len(out)-1].X) < roofPointMergeDistance {
			continue
		}
		out = append(out, points[i])
	}
	return out
}

// BuildElevation строит запись фасада для страницы.
func BuildElevation(page models.Page, view string) models.Elevation {
	return models.Elevation{
		View:        view,
		RoofProfile: ExtractRoofProfile(page.Lines, page.PageHeight),
		Windows:     []models.Window{},
		Doors:       []models.Door{},
		Width:       page.PageWidth,
		Height:      page.PageHeight,
	}
}
