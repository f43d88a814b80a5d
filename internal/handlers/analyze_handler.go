package handlers

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"nikhilsahni/resume-radar/internal/services"
)

type AnalyzeHandler struct {
	screening   services.ScreeningService
	maxFileSize int64
}

func NewAnalyzeHandler(screening services.ScreeningService, maxFileSize int64) *AnalyzeHandler {
	return &AnalyzeHandler{
		screening:   screening,
		maxFileSize: maxFileSize,
	}
}

// HandleAnalyze handles POST /analyze: an ad-hoc resume upload scored against
// a pasted job description, without persisting anything.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume file is required",
		})
	}

	jdText := c.FormValue("jd_text")
	if jdText == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "jd_text is required",
		})
	}

	// Oversized uploads are rejected before extraction is ever attempted.
	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Resume file is too large. Maximum size is %dMB.", h.maxFileSize/(1024*1024)),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	// Deliberately not the request context: a client disconnect must not
	// abort an in-flight scoring call.
	result, err := h.screening.Analyze(c.UserContext(), fileHeader.Filename, content, jdText)
	if err != nil {
		return err
	}

	return c.JSON(result)
}
