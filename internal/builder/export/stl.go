package export

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"plan2model/internal/builder/mesh"
)

// ============================================================
// STL Writer
// ============================================================

// WriteSTL сериализует меш в бинарный STL: 80-байтовый заголовок, число
// треугольников, затем по 50 байт на треугольник (нормаль, три вершины,
// атрибут). Нормали считаются из обхода вершин.
func WriteSTL(m *mesh.Mesh, w io.Writer) error {
	var header [80]byte
	copy(header[:], "plan2model binary STL")
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(m.Faces))); err != nil {
		return fmt.Errorf("write triangle count: %w", err)
	}

	for _, face := range m.Faces {
		v0 := m.Vertices[face[0]]
		v1 := m.Vertices[face[1]]
		v2 := m.Vertices[face[2]]

		record := [12]float32{}
		n := facetNormal(v0, v1, v2)
		record[0], record[1], record[2] = n[0], n[1], n[2]
		record[3], record[4], record[5] = float32(v0.X), float32(v0.Y), float32(v0.Z)
		record[6], record[7], record[8] = float32(v1.X), float32(v1.Y), float32(v1.Z)
		record[9], record[10], record[11] = float32(v2.X), float32(v2.Y), float32(v2.Z)

		if err := binary.Write(w, binary.LittleEndian, record); err != nil {
			return fmt.Errorf("write facet: %w", err)
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return fmt.Errorf("write attribute: %w", err)
		}
	}

	return nil
}

// facetNormal — нормализованное векторное произведение ребер грани.
// Для вырожденной грани нулевая нормаль.
func facetNormal(v0, v1, v2 mesh.Vector3) [3]float32 {
	ux := v1.X - v0.X
	uy := v1.Y - v0.Y
	uz := v1.Z - v0.Z
	vx := v2.X - v0.X
	vy := v2.Y - v0.Y
	vz := v2.Z - v0.Z

	nx := uy*vz - uz*vy
	ny := uz*vx - ux*vz
	nz := ux*vy - uy*vx

	length := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if length == 0 {
		return [3]float32{}
	}
	return [3]float32{float32(nx / length), float32(ny / length), float32(nz / length)}
}
