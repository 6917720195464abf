package analyses

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/identity"
	"resume-screener/internal/shared/server/respond"
)

// Handler serves read access to screening history.
type Handler struct {
	repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

// RegisterRoutes wires the history endpoints into the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analyses", h.list)
	rg.GET("/analyses/:id", h.get)
}

func (h *Handler) list(c *gin.Context) {
	userID, err := identity.Resolve(c.GetHeader(identity.HeaderName))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Set("userId", userID)

	limit := parseIntQuery(c, "limit", 20)
	offset := parseIntQuery(c, "offset", 0)

	records, err := h.repo.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond.OK(c, gin.H{"analyses": records})
}

func (h *Handler) get(c *gin.Context) {
	userID, err := identity.Resolve(c.GetHeader(identity.HeaderName))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.Set("userId", userID)

	record, err := h.repo.GetByID(c.Request.Context(), userID, c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		respond.Error(c, http.StatusNotFound, "Analysis not found.")
		return
	}
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	respond.OK(c, record)
}

func parseIntQuery(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return def
	}
	return val
}
