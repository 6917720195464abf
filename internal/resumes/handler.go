package resumes

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"resume-screener/internal/analyses"
	"resume-screener/internal/extract"
	"resume-screener/internal/identity"
	"resume-screener/internal/llm"
	"resume-screener/internal/shared/server/respond"
	"resume-screener/internal/shared/storage/object"
	"resume-screener/internal/shared/telemetry"
)

const (
	targetRoleHeader  = "x-target-role"
	targetRoleQuery   = "targetRole"
	defaultTargetRole = "Cloud Engineer"
)

// Handler runs the screening pipeline: resolve identity, validate body,
// upload, extract text, evaluate, respond. All steps are sequential and
// blocking; there is no retry anywhere.
type Handler struct {
	uploader  object.Uploader
	extractor extract.Extractor
	evaluator llm.Client
	history   analyses.Repo
}

// NewHandler constructs a Handler. history may be nil to disable recording.
func NewHandler(uploader object.Uploader, extractor extract.Extractor, evaluator llm.Client, history analyses.Repo) *Handler {
	return &Handler{
		uploader:  uploader,
		extractor: extractor,
		evaluator: evaluator,
		history:   history,
	}
}

// ResponsePayload is the success body of the analyze endpoint.
type ResponsePayload struct {
	UserID     string     `json:"userId"`
	TargetRole string     `json:"targetRole"`
	BlobURL    string     `json:"blobUrl"`
	UploadedAt string     `json:"uploadedAt"`
	Analysis   llm.Result `json:"analysis"`
}

// RegisterRoutes wires the analyze endpoint into the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/analyze", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := identity.Resolve(c.GetHeader(identity.HeaderName))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Set("userId", userID)

	targetRole := c.GetHeader(targetRoleHeader)
	if targetRole == "" {
		targetRole = c.Query(targetRoleQuery)
	}
	if targetRole == "" {
		targetRole = defaultTargetRole
	}
	c.Set("targetRole", targetRole)

	pdfBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	if len(pdfBytes) == 0 {
		respond.Error(c, http.StatusBadRequest, "No file provided.")
		return
	}

	blobName := uuid.NewString() + ".pdf"
	blobURL, err := h.uploader.Upload(ctx, blobName, "application/pdf", pdfBytes)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	resumeText, err := h.extractor.ExtractText(ctx, pdfBytes)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	// Evaluator failures surface as an error-shaped analysis, never as 500.
	analysis := h.evaluator.Analyze(ctx, resumeText, targetRole)

	uploadedAt := time.Now().UTC()
	payload := ResponsePayload{
		UserID:     userID,
		TargetRole: targetRole,
		BlobURL:    blobURL,
		UploadedAt: uploadedAt.Format(time.RFC3339),
		Analysis:   analysis,
	}

	h.record(c, payload, uploadedAt)
	respond.OK(c, payload)
}

// record persists the screening for history. Best effort: a storage failure
// is logged and the response still succeeds.
func (h *Handler) record(c *gin.Context, payload ResponsePayload, uploadedAt time.Time) {
	if h.history == nil {
		return
	}

	result, err := json.Marshal(payload.Analysis)
	if err != nil {
		telemetry.Error("screening.record.marshal", map[string]any{"err": err.Error()})
		return
	}

	rec := analyses.Record{
		ID:         uuid.NewString(),
		UserID:     payload.UserID,
		TargetRole: payload.TargetRole,
		BlobURL:    payload.BlobURL,
		Result:     result,
		CreatedAt:  uploadedAt,
	}
	if err := h.history.Create(c.Request.Context(), rec); err != nil {
		telemetry.Error("screening.record.failed", map[string]any{
			"err":        err.Error(),
			"user_id":    payload.UserID,
			"request_id": c.GetString("requestId"),
		})
	}
}
