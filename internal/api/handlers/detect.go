package handlers

import (
	"bytes"
	"encoding/base64"
	"image/png"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/faceline/internal/cascadestore"
	"github.com/your-org/faceline/internal/pipeline"
)

// DetectHandler runs the pipeline façade inline against one uploaded
// image, for callers that want the result synchronously rather than
// through the job queue.
type DetectHandler struct {
	registry *cascadestore.Registry
}

func NewDetectHandler(registry *cascadestore.Registry) *DetectHandler {
	return &DetectHandler{registry: registry}
}

// Run handles POST /v1/detect. The image is the raw body; the
// face_cascade and eye_cascade query parameters name registered
// cascades.
func (h *DetectHandler) Run(c *gin.Context) {
	faceCascadeName := c.Query("face_cascade")
	eyeCascadeName := c.Query("eye_cascade")
	if faceCascadeName == "" || eyeCascadeName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "face_cascade and eye_cascade query parameters are required"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image body: " + err.Error()})
		return
	}

	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image must be PNG: " + err.Error()})
		return
	}

	faceCascade, _, err := h.registry.Get(c.Request.Context(), faceCascadeName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown face_cascade: " + err.Error()})
		return
	}
	eyeCascade, _, err := h.registry.Get(c.Request.Context(), eyeCascadeName)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown eye_cascade: " + err.Error()})
		return
	}

	p := pipeline.New(faceCascade, eyeCascade)
	result, err := p.Run(img)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"outcome": result.Outcome.String()}
	if result.Outcome != pipeline.OutcomeNoFace {
		resp["face"] = gin.H{"x": result.Face.X, "y": result.Face.Y, "w": result.Face.W, "h": result.Face.H}
	}
	if result.Outcome == pipeline.OutcomeNormalized {
		resp["eye_left"] = gin.H{"x": result.Eyes.Left.X, "y": result.Eyes.Left.Y}
		resp["eye_right"] = gin.H{"x": result.Eyes.Right.X, "y": result.Eyes.Right.Y}
		resp["distance"] = result.Distance
		resp["angle"] = result.Angle

		var buf bytes.Buffer
		if err := png.Encode(&buf, result.Crop); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "encode crop: " + err.Error()})
			return
		}
		resp["crop_png_base64"] = base64.StdEncoding.EncodeToString(buf.Bytes())
	}

	c.JSON(http.StatusOK, resp)
}
