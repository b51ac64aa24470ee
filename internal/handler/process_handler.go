package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"payproc/internal/domain"
	"payproc/internal/notify"
	"payproc/internal/pipeline"
)

// ProcessHandler handles document processing endpoints.
type ProcessHandler struct {
	processor *pipeline.Processor
	notifier  *notify.Notifier
}

// NewProcessHandler creates a new ProcessHandler.
func NewProcessHandler(processor *pipeline.Processor, notifier *notify.Notifier) *ProcessHandler {
	return &ProcessHandler{processor: processor, notifier: notifier}
}

// Process handles POST /api/v1/documents/process
// @Summary Process an uploaded document
// @Description Extract text and invoice fields from a base64 document, validate them, and return the approval decision
// @Tags documents
// @Accept json
// @Produce json
// @Param request body domain.ProcessRequest true "Document submission"
// @Success 200 {object} ProcessResponse "Processing decision"
// @Failure 400 {object} ErrorResponse "Missing or invalid documentBase64"
// @Failure 500 {object} ErrorResponse "Unexpected internal failure"
// @Router /documents/process [post]
func (h *ProcessHandler) Process(c *gin.Context) {
	var req domain.ProcessRequest
	// A malformed body is treated as an empty submission; the missing
	// documentBase64 is reported, matching the decode-stage contract.
	_ = c.ShouldBindJSON(&req)

	result, err := h.processor.Process(c.Request.Context(), req)
	if err != nil {
		HandleError(c, err)
		return
	}

	h.notifier.Notify(c.Request.Context(), result.CorrelationID)

	c.JSON(http.StatusOK, ProcessResponse{
		CorrelationID: result.CorrelationID,
		Status:        result.Status,
	})
}
