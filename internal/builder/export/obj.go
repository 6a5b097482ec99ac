package export

import (
	"strconv"
	"strings"

	"plan2model/internal/builder/mesh"
)

// ============================================================
// OBJ Writer
// ============================================================

// WriteOBJ сериализует меш в Wavefront OBJ: строки вершин, затем грани
// с индексацией с единицы.
func WriteOBJ(m *mesh.Mesh) string {
	var builder strings.Builder
	builder.WriteString("# plan2model\n")

	for _, v := range m.Vertices {
		builder.WriteString("v ")
		builder.WriteString(formatFloat(v.X))
		builder.WriteString(" ")
		builder.WriteString(formatFloat(v.Y))
		builder.WriteString(" ")
		builder.WriteString(formatFloat(v.Z))
		builder.WriteString("\n")
	}

	for _, f := range m.Faces {
		builder.WriteString("f ")
		builder.WriteString(strconv.Itoa(f[0] + 1))
		builder.WriteString(" ")
		builder.WriteString(strconv.Itoa(f[1] + 1))
		builder.WriteString(" ")
		builder.WriteString(strconv.Itoa(f[2] + 1))
		builder.WriteString("\n")
	}

	return builder.String()
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
