package mesh

import "math"

// ============================================================
// Mesh Buffer
// ============================================================

// Vector3 — вершина меша.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Triangle — три индекса вершин с согласованным порядком обхода.
type Triangle [3]int

// Mesh — буфер обмена: упорядоченные вершины плюс индексные треугольники.
// Нормали и материалы не хранятся, потребители считают их сами.
type Mesh struct {
	Vertices []Vector3  `json:"vertices"`
	Faces    []Triangle `json:"faces"`
}

// IsEmpty истинно для меша без треугольников.
func (m *Mesh) IsEmpty() bool {
	return len(m.Faces) == 0
}

// Merge дописывает другой меш, сдвигая его индексы.
func (m *Mesh) Merge(other *Mesh) {
	if other == nil || len(other.Vertices) == 0 {
		return
	}

	offset := len(m.Vertices)
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, face := range other.Faces {
		m.Faces = append(m.Faces, Triangle{face[0] + offset, face[1] + offset, face[2] + offset})
	}
}

// Translate сдвигает все вершины.
func (m *Mesh) Translate(dx, dy, dz float64) {
	for i := range m.Vertices {
		m.Vertices[i].X += dx
		m.Vertices[i].Y += dy
		m.Vertices[i].Z += dz
	}
}

// Scale умножает все координаты на множитель.
func (m *Mesh) Scale(factor float64) {
	for i := range m.Vertices {
		m.Vertices[i].X *= factor
		m.Vertices[i].Y *= factor
		m.Vertices[i].Z *= factor
	}
}

// Bounds возвращает габаритный параллелепипед меша.
func (m *Mesh) Bounds() (min, max Vector3) {
	if len(m.Vertices) == 0 {
		return Vector3{}, Vector3{}
	}

	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		min.Z = math.Min(min.Z, v.Z)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
		max.Z = math.Max(max.Z, v.Z)
	}
	return min, max
}
