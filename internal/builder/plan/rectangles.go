package plan

import (
	"math"

	"plan2model/internal/builder/models"
)

// ============================================================
// Rectangle Inferencer
// ============================================================

// InferRectangles перебирает пары горизонтальных и вертикальных полос и
// возвращает замкнутые прямоугольники-кандидаты комнат. Перебор O(H²·V²)
// допустим: на странице десятки, редко сотни сегментов. Дубликаты по
// совпадению углов подавляются.
func InferRectangles(horizontal, vertical []Band, tolerance float64) [][]models.Point {
	var polygons [][]models.Point
	seen := make(map[[8]float64]bool)

	for i := 0; i < len(horizontal); i++ {
		for j := i + 1; j < len(horizontal); j++ {
			h1, h2 := horizontal[i], horizontal[j]
			if math.Abs(h1.At-h2.At) < tolerance {
				continue
			}

			for k := 0; k < len(vertical); k++ {
				for l := k + 1; l < len(vertical); l++ {
					v1, v2 := vertical[k], vertical[l]
					if math.Abs(v1.At-v2.At) < tolerance {
						continue
					}

					poly, ok := matchRectangle(h1, h2, v1, v2, tolerance)
					if !ok {
						continue
					}

					key := cornerKey(poly)
					if seen[key] {
						continue
					}
					seen[key] = true
					polygons = append(polygons, poly)
				}
			}
		}
	}

	return polygons
}

// matchRectangle проверяет четыре условия совпадения углов: x каждой
// вертикали совпадает с x-границами обеих горизонталей, y каждой
// горизонтали — с y-границами обеих вертикалей.
func matchRectangle(h1, h2, v1, v2 Band, tolerance float64) ([]models.Point, bool) {
	hBottom, hTop := h1, h2
	if hBottom.At > hTop.At {
		hBottom, hTop = hTop, hBottom
	}
	vLeft, vRight := v1, v2
	if vLeft.At > vRight.At {
		vLeft, vRight = vRight, vLeft
	}

	near := func(a, b float64) bool { return math.Abs(a-b) <= tolerance }

	if !near(vLeft.At, hBottom.Lo) || !near(vLeft.At, hTop.Lo) {
		return nil, false
	}
	if !near(vRight.At, hBottom.Hi) || !near(vRight.At, hTop.Hi) {
		return nil, false
	}
	if !near(hBottom.At, vLeft.Lo) || !near(hBottom.At, vRight.Lo) {
		return nil, false
	}
	if !near(hTop.At, vLeft.Hi) || !near(hTop.At, vRight.Hi) {
		return nil, false
	}

	return []models.Point{
		{X: vLeft.At, Y: hBottom.At},
		{X: vRight.At, Y: hBottom.At},
		{X: vRight.At, Y: hTop.At},
		{X: vLeft.At, Y: hTop.At},
	}, true
}

func cornerKey(poly []models.Point) [8]float64 {
	var key [8]float64
	for i, p := range poly {
		key[i*2] = p.X
		key[i*2+1] = p.Y
	}
	return key
}
