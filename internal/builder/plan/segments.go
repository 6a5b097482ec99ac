package plan

import (
	"math"

	"plan2model/internal/builder/models"
)

// ============================================================
// Segment Classifier
// ============================================================

// Band — осевой сегмент: Lo..Hi вдоль оси, At — фиксированная координата
// поперек оси. Для горизонтали это (xmin, xmax, y), для вертикали
// (ymin, ymax, x).
type Band struct {
	Lo float64
	Hi float64
	At float64
}

// ClassifySegments раскладывает отрезки на горизонтальные и вертикальные
// полосы. Отрезки короче tolerance отбрасываются как шум; диагонали не
// считаются стенами и тоже отбрасываются.
func ClassifySegments(lines []models.Line, tolerance float64) (horizontal, vertical []Band) {
	for _, line := range lines {
		if line.Length() < tolerance {
			continue
		}

		dx := math.Abs(line.X1 - line.X0)
		dy := math.Abs(line.Y1 - line.Y0)

		switch {
		case dx > 2*dy:
			horizontal = append(horizontal, Band{
				Lo: math.Min(line.X0, line.X1),
				Hi: math.Max(line.X0, line.X1),
				At: (line.Y0 + line.Y1) / 2,
			})
		case dy > 2*dx:
			vertical = append(vertical, Band{
				Lo: math.Min(line.Y0, line.Y1),
				Hi: math.Max(line.Y0, line.Y1),
				At: (line.X0 + line.X1) / 2,
			})
		}
	}
	return horizontal, vertical
}
