package models

import "math"

// ============================================================
// Page Primitives
// ============================================================

// Line — отрезок со страницы чертежа.
type Line struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Length возвращает длину отрезка.
func (l Line) Length() float64 {
	dx := l.X1 - l.X0
	dy := l.Y1 - l.Y0
	return math.Sqrt(dx*dx + dy*dy)
}

// Midpoint возвращает середину отрезка.
func (l Line) Midpoint() Point {
	return Point{X: (l.X0 + l.X1) / 2, Y: (l.Y0 + l.Y1) / 2}
}

// Rect — прямоугольник со страницы чертежа.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Word — текстовый токен со страницы и его рамка.
type Word struct {
	Text string  `json:"text"`
	X0   float64 `json:"x0"`
	Y0   float64 `json:"y0"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
}

// Center возвращает центр рамки токена.
func (w Word) Center() Point {
	return Point{X: (w.X0 + w.X1) / 2, Y: (w.Y0 + w.Y1) / 2}
}

// Page — примитивы одной страницы, как их отдает внешний PDF-декодер.
// Отсутствующие списки и пустой текст допустимы.
type Page struct {
	Text       string  `json:"text"`
	Lines      []Line  `json:"lines"`
	Rectangles []Rect  `json:"rectangles"`
	Words      []Word  `json:"words"`
	PageWidth  float64 `json:"page_width"`
	PageHeight float64 `json:"page_height"`
}

// Document — все страницы одного чертежа.
type Document struct {
	Pages []Page `json:"pages"`
}
