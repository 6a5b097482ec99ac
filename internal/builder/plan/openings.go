package plan

import "plan2model/internal/builder/models"

// ============================================================
// Opening Detector
// ============================================================

const (
	// Дуга дверного полотна на плане — короткий изолированный отрезок.
	doorMinLength = 20.0
	doorMaxLength = 50.0
	// Эмпирическое отношение длины на чертеже к реальной ширине двери.
	doorWidthRatio = 10.0
)

// DetectDoors классифицирует отрезки в полосе длин (20, 50) как двери.
// Интервал открытый с обеих сторон. Работает по сырым отрезкам страницы,
// не по классифицированным полосам.
func DetectDoors(lines []models.Line) []models.Door {
	var doors []models.Door
	for _, line := range lines {
		length := line.Length()
		if length <= doorMinLength || length >= doorMaxLength {
			continue
		}
		doors = append(doors, models.NewDoor(line.Midpoint(), length/doorWidthRatio))
	}
	return doors
}

// DetectWindows пока не выводит окна из геометрии и всегда возвращает
// пустой список. Поведение сохранено намеренно: даунстрим рассчитан на
// реальную форму вывода, и тихое "исправление" меняло бы каждую модель.
func DetectWindows(lines []models.Line) []models.Window {
	_ = lines
	return nil
}
