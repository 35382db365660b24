package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/faceline/internal/cascadestore"
	"github.com/your-org/faceline/internal/models"
	"github.com/your-org/faceline/internal/storage"
	"github.com/your-org/faceline/pkg/dto"
)

// CascadeHandler registers and lists cascades cached by the registry
// (C10), persisting their metadata so the set survives a restart.
type CascadeHandler struct {
	registry *cascadestore.Registry
	db       *storage.PostgresStore
}

func NewCascadeHandler(registry *cascadestore.Registry, db *storage.PostgresStore) *CascadeHandler {
	return &CascadeHandler{registry: registry, db: db}
}

// Create handles POST /v1/cascades?name=faces.xml with the cascade XML
// as the request body.
func (h *CascadeHandler) Create(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read cascade body: " + err.Error()})
		return
	}

	cas, hash, err := h.registry.Put(name, body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cascade xml: " + err.Error()})
		return
	}

	record := &models.CascadeRecord{
		Name:    name,
		Hash:    hash,
		WindowW: cas.WindowW(),
		WindowH: cas.WindowH(),
	}
	if err := h.db.UpsertCascadeRecord(context.Background(), record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.CascadeResponse{
		Name:    record.Name,
		Hash:    record.Hash,
		WindowW: record.WindowW,
		WindowH: record.WindowH,
	})
}

func (h *CascadeHandler) List(c *gin.Context) {
	records, err := h.db.ListCascadeRecords(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.CascadeResponse, 0, len(records))
	for _, r := range records {
		resp = append(resp, dto.CascadeResponse{
			Name:      r.Name,
			Hash:      r.Hash,
			WindowW:   r.WindowW,
			WindowH:   r.WindowH,
			UpdatedAt: r.UpdatedAt.Format("2006-01-02T15:04:05Z"),
		})
	}

	c.JSON(http.StatusOK, dto.CascadeListResponse{Cascades: resp})
}
