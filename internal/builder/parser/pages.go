package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"plan2model/internal/builder/models"
)

// ============================================================
// Page Document Parser
// ============================================================

// ParseDocument читает JSON с примитивами страниц от внешнего PDF-декодера.
// Контракт опциональных коллекций явный: отсутствующий список становится
// пустым, отсутствующий текст — пустой строкой.
func ParseDocument(r io.Reader) (*models.Document, error) {
	var doc models.Document
	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode pages document: %w", err)
	}

	for i := range doc.Pages {
		normalizePage(&doc.Pages[i])
	}

	return &doc, nil
}

func normalizePage(p *models.Page) {
	if p.Lines == nil {
		p.Lines = []models.Line{}
	}
	if p.Rectangles == nil {
		p.Rectangles = []models.Rect{}
	}
	if p.Words == nil {
		p.Words = []models.Word{}
	}
}
