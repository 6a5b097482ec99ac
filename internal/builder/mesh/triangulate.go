package mesh

import "plan2model/internal/builder/models"

// ============================================================
// Polygon Triangulation
// ============================================================

// EarClip триангулирует простой многоугольник отсечением ушей и возвращает
// индексные треугольники с обходом против часовой стрелки. В отличие от
// веера из нулевой вершины корректен и для невыпуклых контуров. Меньше
// трех вершин — nil.
func EarClip(points []models.Point) []Triangle {
	n := len(points)
	if n < 3 {
		return nil
	}

	// Work on an index list ordered counterclockwise.
	indices := make([]int, n)
	if signedArea(points) >= 0 {
		for i := range indices {
			indices[i] = i
		}
	} else {
		for i := range indices {
			indices[i] = n - 1 - i
		}
	}

	var triangles []Triangle
	for len(indices) > 3 {
		earIndex := findEar(points, indices)
		if earIndex < 0 {
			// Degenerate ring (collinear runs, self-touching). Clip
			// anyway so the loop terminates.
			earIndex = 0
		}

		prev := indices[(earIndex+len(indices)-1)%len(indices)]
		curr := indices[earIndex]
		next := indices[(earIndex+1)%len(indices)]
		triangles = append(triangles, Triangle{prev, curr, next})

		indices = append(indices[:earIndex], indices[earIndex+1:]...)
	}
	triangles = append(triangles, Triangle{indices[0], indices[1], indices[2]})

	return triangles
}

func findEar(points []models.Point, indices []int) int {
	n := len(indices)
	for i := 0; i < n; i++ {
		prev := points[indices[(i+n-1)%n]]
		curr := points[indices[i]]
		next := points[indices[(i+1)%n]]

		// Reflex vertices cannot be ears.
		if cross2D(prev, curr, next) <= 0 {
			continue
		}

		contains := false
		for j := 0; j < n; j++ {
			idx := indices[j]
			if idx == indices[(i+n-1)%n] || idx == indices[i] || idx == indices[(i+1)%n] {
				continue
			}
			if pointInTriangle(points[idx], prev, curr, next) {
				contains = true
				break
			}
		}
		if !contains {
			return i
		}
	}
	return -1
}

func signedArea(points []models.Point) float64 {
	area := 0.0
	n := len(points)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += points[i].X*points[j].Y - points[j].X*points[i].Y
	}
	return area / 2.0
}

func cross2D(a, b, c models.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func pointInTriangle(p, a, b, c models.Point) bool {
	d1 := cross2D(p, a, b)
	d2 := cross2D(p, b, c)
	d3 := cross2D(p, c, a)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
