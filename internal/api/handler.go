package api

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/statement-scraper/internal/analyzer"
	"github.com/insightdelivered/statement-scraper/internal/extractor"
	"github.com/insightdelivered/statement-scraper/internal/models"
	"github.com/insightdelivered/statement-scraper/internal/parser"
	"github.com/insightdelivered/statement-scraper/internal/writer"
)

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success          bool                     `json:"success"`
	Error            string                   `json:"error,omitempty"`
	Format           string                   `json:"format,omitempty"`
	Count            int                      `json:"count"`
	Transactions     []models.Transaction     `json:"transactions,omitempty"`
	CardTransactions []models.CardTransaction `json:"cardTransactions,omitempty"`
	CSV              string                   `json:"csv,omitempty"`
	Summary          *analyzer.Summary        `json:"summary,omitempty"`
	Version          string                   `json:"version,omitempty"`
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Options parser.Options
	Format  string // default format when the request does not name one
	Log     logrus.FieldLogger
	Version string
}

// NewApp builds the fiber app with the API routes registered.
func NewApp(h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit:             32 << 20,
		DisableStartupMessage: true,
	})
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/convert", h.HandleConvert)
	return app
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": h.Version,
	})
}

// HandleConvert accepts a multipart upload with either a "file" PDF or
// pre-extracted "extractedText", plus optional "format" and "analyze".
func (h *Handler) HandleConvert(c *fiber.Ctx) error {
	pages, err := h.pagesFromRequest(c)
	if err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return writeError(c, fe.Code, fe.Message)
		}
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %v", err))
	}

	formatName := c.FormValue("format", h.Format)
	format, err := parser.ParseFormat(formatName)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, err.Error())
	}

	info, err := parser.Parse(pages, format, h.Options)
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	resp := ConvertResponse{
		Success:          true,
		Format:           string(info.Format),
		Count:            info.Count(),
		Transactions:     info.Transactions,
		CardTransactions: info.CardTransactions,
		Version:          h.Version,
	}

	var csvBuf bytes.Buffer
	switch err := writer.WriteStatement(&csvBuf, info); {
	case errors.Is(err, writer.ErrNoTransactions):
		resp.Error = "No transactions found."
	case err != nil:
		return writeError(c, fiber.StatusInternalServerError, fmt.Sprintf("CSV generation failed: %v", err))
	default:
		resp.CSV = csvBuf.String()
	}

	if c.FormValue("analyze") == "true" && info.Format == models.FormatBilt && info.Count() > 0 {
		s := analyzer.Summarize(info.CardTransactions)
		resp.Summary = &s
	}

	h.logger().WithFields(logrus.Fields{"format": resp.Format, "count": resp.Count}).Info("converted statement")
	return c.JSON(resp)
}

func (h *Handler) pagesFromRequest(c *fiber.Ctx) ([]string, error) {
	if text := c.FormValue("extractedText"); text != "" {
		if pages := extractor.SplitPages(text); len(pages) > 0 {
			return pages, nil
		}
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}
	defer f.Close()

	return extractor.ExtractReader(f, fh.Size)
}

func (h *Handler) logger() logrus.FieldLogger {
	if h.Log == nil {
		return logrus.StandardLogger()
	}
	return h.Log
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Success: false,
		Error:   msg,
	})
}
