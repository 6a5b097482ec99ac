package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"plan2model/internal/builder/export"
	"plan2model/internal/builder/mesh"
	"plan2model/internal/builder/models"
	"plan2model/internal/builder/parser"
	"plan2model/internal/builder/plan"
	"plan2model/internal/builder/repository"
	"plan2model/internal/builder/service"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// ============================================================
// Builder Handler
// ============================================================

type BuilderHandler struct {
	repo      *repository.Repository
	storage   *service.FileStorage
	unitScale float64
	tolerance float64
}

func NewBuilderHandler(repo *repository.Repository, storage *service.FileStorage, unitScale, tolerance float64) *BuilderHandler {
	if unitScale <= 0 {
		unitScale = mesh.DefaultScale
	}
	if tolerance <= 0 {
		tolerance = plan.DefaultTolerance
	}
	return &BuilderHandler{
		repo:      repo,
		storage:   storage,
		unitScale: unitScale,
		tolerance: tolerance,
	}
}

type uploadResponse struct {
	Message  string `json:"message"`
	ID       string `json:"id"`
	Filename string `json:"filename"`
}

// Upload принимает JSON с примитивами страниц (выход внешнего
// PDF-декодера) и сохраняет его под новым идентификатором.
func (h *BuilderHandler) Upload(c fiber.Ctx) error {
	log.Printf("[BUILDER] Upload request, Content-Length: %d", len(c.Body()))

	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "file required in multipart/form-data",
		})
	}

	if !strings.EqualFold(filepath.Ext(file.Filename), ".json") {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid file type, only page-primitives JSON is accepted",
		})
	}

	f, err := file.Open()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to read file"})
	}

	// Документ разбирается сразу, чтобы битый файл не попал в хранилище.
	doc, err := parser.ParseDocument(bytes.NewReader(data))
	if err != nil {
		log.Printf("[BUILDER] Upload parse error: %v", err)
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": "invalid pages document"})
	}

	id := uuid.NewString()
	if err := h.storage.SaveUpload(id, data); err != nil {
		log.Printf("[BUILDER] Upload save error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to store file"})
	}

	if err := h.repo.Insert(context.Background(), id, file.Filename, len(doc.Pages)); err != nil {
		log.Printf("[BUILDER] Upload insert error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to record upload"})
	}

	log.Printf("[BUILDER] Upload stored: %s (%d pages)", id, len(doc.Pages))
	return c.JSON(uploadResponse{
		Message:  "File uploaded successfully",
		ID:       id,
		Filename: file.Filename,
	})
}

// Parse прогоняет сохраненный документ через реконструкцию и возвращает
// сводку без синтеза меша.
func (h *BuilderHandler) Parse(c fiber.Ctx) error {
	id := c.Params("id")
	log.Printf("[BUILDER] Parse request: %s", id)

	doc, err := h.loadDocument(id)
	if err != nil {
		return h.documentError(c, err)
	}

	assembler := plan.NewAssembler(plan.Options{Tolerance: h.tolerance})
	building := assembler.Assemble(doc.Pages)

	rooms := 0
	for _, floor := range building.Floors {
		rooms += len(floor.Rooms)
	}

	return c.JSON(fiber.Map{
		"message": "Document parsed successfully",
		"data": fiber.Map{
			"pages":        len(doc.Pages),
			"floors":       len(building.Floors),
			"elevations":   len(building.Elevations),
			"rooms":        rooms,
			"scale_factor": building.ScaleFactor,
		},
	})
}

type modelResponse struct {
	Message   string     `json:"message"`
	ModelData *mesh.Mesh `json:"model_data"`
	OBJFile   string     `json:"obj_file"`
	STLFile   string     `json:"stl_file"`
}

// GenerateModel запускает полный пайплайн: реконструкция, синтез меша,
// запись OBJ и STL артефактов, обновление записи конверсии.
func (h *BuilderHandler) GenerateModel(c fiber.Ctx) error {
	id := c.Params("id")
	log.Printf("[BUILDER] Generate model request: %s", id)

	doc, err := h.loadDocument(id)
	if err != nil {
		return h.documentError(c, err)
	}

	assembler := plan.NewAssembler(plan.Options{Tolerance: h.tolerance})
	building := assembler.Assemble(doc.Pages)

	var rawLines []models.Line
	for _, page := range doc.Pages {
		rawLines = append(rawLines, page.Lines...)
	}

	usePlaceholder := c.Query("placeholder") == "1"
	synthesizer := mesh.NewSynthesizer(h.unitScale * building.ScaleFactor)
	buffer := synthesizer.Synthesize(building, rawLines, usePlaceholder)

	objData := export.WriteOBJ(buffer)
	if err := h.storage.SaveArtifact(h.storage.OBJPath(id), []byte(objData)); err != nil {
		log.Printf("[BUILDER] OBJ save error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to write OBJ"})
	}

	var stlData bytes.Buffer
	if err := export.WriteSTL(buffer, &stlData); err != nil {
		log.Printf("[BUILDER] STL encode error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to encode STL"})
	}
	if err := h.storage.SaveArtifact(h.storage.STLPath(id), stlData.Bytes()); err != nil {
		log.Printf("[BUILDER] STL save error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to write STL"})
	}

	rooms := 0
	for _, floor := range building.Floors {
		rooms += len(floor.Rooms)
	}
	if err := h.repo.UpdateResult(context.Background(), id, "generated",
		len(building.Floors), rooms, len(buffer.Vertices), len(buffer.Faces)); err != nil {
		log.Printf("[BUILDER] Update result error: %v", err)
	}

	log.Printf("[BUILDER] Model generated: %s (%d vertices, %d faces)",
		id, len(buffer.Vertices), len(buffer.Faces))
	return c.JSON(modelResponse{
		Message:   "3D model generated successfully",
		ModelData: buffer,
		OBJFile:   filepath.Base(h.storage.OBJPath(id)),
		STLFile:   filepath.Base(h.storage.STLPath(id)),
	})
}

// Download отдает сохраненный артефакт по имени файла.
func (h *BuilderHandler) Download(c fiber.Ctx) error {
	name := filepath.Base(c.Params("filename"))
	path := filepath.Join(h.storage.Root(), name)

	if _, err := os.Stat(path); err != nil {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "file not found"})
	}

	return c.SendFile(path)
}

// ListConversions возвращает историю конверсий.
func (h *BuilderHandler) ListConversions(c fiber.Ctx) error {
	conversions, err := h.repo.List(context.Background())
	if err != nil {
		log.Printf("[BUILDER] List error: %v", err)
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list conversions"})
	}
	if conversions == nil {
		conversions = []repository.Conversion{}
	}
	return c.JSON(fiber.Map{"conversions": conversions})
}

// Status — проверка, что сервис жив.
func (h *BuilderHandler) Status(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "online",
		"message": "Plan to 3D model API is running",
	})
}

// ============================================================
// Helpers
// ============================================================

var errUploadNotFound = errors.New("upload not found")

func (h *BuilderHandler) loadDocument(id string) (*models.Document, error) {
	if id == "" || id != filepath.Base(id) {
		return nil, errUploadNotFound
	}

	f, err := os.Open(h.storage.UploadPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errUploadNotFound
		}
		return nil, err
	}
	defer f.Close()

	return parser.ParseDocument(f)
}

func (h *BuilderHandler) documentError(c fiber.Ctx, err error) error {
	if errors.Is(err, errUploadNotFound) {
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "file not found"})
	}
	log.Printf("[BUILDER] Document error: %v", err)
	return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}
