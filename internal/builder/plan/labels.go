package plan

import (
	"fmt"
	"math"
	"strings"

	"plan2model/internal/builder/models"
)

// ============================================================
// Label Associator
// ============================================================

var roomKeywords = []string{
	"bedroom", "living", "kitchen", "bathroom", "bath", "dining",
	"garage", "closet", "hallway", "entry", "foyer", "laundry",
	"office", "den", "family",
}

// Centroid возвращает среднее арифметическое вершин многоугольника.
func Centroid(points []models.Point) models.Point {
	if len(points) == 0 {
		return models.Point{}
	}

	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	return models.Point{X: sumX / n, Y: sumY / n}
}

// LabelRooms подбирает каждому многоугольнику имя: текст ближайшего к
// центроиду токена, если он содержит известное ключевое слово, иначе
// "Room N" (нумерация с единицы в пределах страницы).
func LabelRooms(polygons [][]models.Point, words []models.Word) []string {
	names := make([]string, len(polygons))
	for i, poly := range polygons {
		names[i] = labelFor(poly, words, i)
	}
	return names
}

func labelFor(poly []models.Point, words []models.Word, index int) string {
	fallback := fmt.Sprintf("Room %d", index+1)

	nearest, ok := nearestWord(Centroid(poly), words)
	if !ok {
		return fallback
	}

	lowered := strings.ToLower(nearest.Text)
	for _, keyword := range roomKeywords {
		if strings.Contains(lowered, keyword) {
			return nearest.Text
		}
	}
	return fallback
}

// nearestWord ищет токен с минимальным расстоянием центра до точки.
// При равенстве побеждает первый встреченный.
func nearestWord(p models.Point, words []models.Word) (models.Word, bool) {
	var nearest models.Word
	minDist := math.MaxFloat64
	found := false

	for _, word := range words {
		center := word.Center()
		dx := center.X - p.X
		dy := center.Y - p.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < minDist {
			minDist = dist
			nearest = word
			found = true
		}
	}

	return nearest, found
}
