package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/your-org/faceline/internal/models"
	"github.com/your-org/faceline/internal/queue"
	"github.com/your-org/faceline/internal/storage"
	"github.com/your-org/faceline/pkg/dto"
)

// JobHandler submits detection jobs (one DetectJobTask per frame) and
// reports their status.
type JobHandler struct {
	db       *storage.PostgresStore
	producer *queue.Producer
}

func NewJobHandler(db *storage.PostgresStore, producer *queue.Producer) *JobHandler {
	return &JobHandler{db: db, producer: producer}
}

func (h *JobHandler) Create(c *gin.Context) {
	var req dto.JobCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	job := &models.DetectionJob{
		FaceCascade: req.FaceCascade,
		EyeCascade:  req.EyeCascade,
		FrameCount:  len(req.FrameKeys),
	}

	if err := h.db.CreateJob(c.Request.Context(), job); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	for i, key := range req.FrameKeys {
		task := models.DetectJobTask{
			JobID:       job.ID,
			FrameIndex:  i,
			FrameRef:    key,
			FaceCascade: req.FaceCascade,
			EyeCascade:  req.EyeCascade,
		}
		if err := h.producer.PublishJobTask(c.Request.Context(), job.ID.String(), task); err != nil {
			_ = h.db.UpdateJobStatus(c.Request.Context(), job.ID, models.JobStatusError, "failed to queue frame "+key)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue job: " + err.Error()})
			return
		}
	}

	c.JSON(http.StatusCreated, jobToResponse(job))
}

func (h *JobHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	job, err := h.db.GetJob(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	c.JSON(http.StatusOK, jobToResponse(job))
}

func (h *JobHandler) List(c *gin.Context) {
	var q dto.JobQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jobs, total, err := h.db.ListJobs(c.Request.Context(), q.Status, q.Limit, q.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		resp = append(resp, jobToResponse(&j))
	}

	c.JSON(http.StatusOK, dto.JobListResponse{Jobs: resp, Total: total})
}

func (h *JobHandler) ListFaceResults(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid job id"})
		return
	}

	var q dto.JobQuery
	_ = c.ShouldBindQuery(&q)

	results, total, err := h.db.ListFaceResults(c.Request.Context(), id, q.Limit, q.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.FaceResultResponse, 0, len(results))
	for _, r := range results {
		resp = append(resp, faceResultToResponse(&r))
	}

	c.JSON(http.StatusOK, dto.FaceResultListResponse{Results: resp, Total: total})
}

func jobToResponse(j *models.DetectionJob) dto.JobResponse {
	return dto.JobResponse{
		ID:           j.ID,
		Status:       string(j.Status),
		FaceCascade:  j.FaceCascade,
		EyeCascade:   j.EyeCascade,
		FrameCount:   j.FrameCount,
		ErrorMessage: j.ErrorMessage,
		CreatedAt:    j.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:    j.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

func faceResultToResponse(r *models.FaceResult) dto.FaceResultResponse {
	resp := dto.FaceResultResponse{
		ID:         r.ID,
		JobID:      r.JobID,
		FrameIndex: r.FrameIndex,
		Outcome:    string(r.Outcome),
		Deduped:    r.Deduped,
		CropURL:    r.CropKey,
		CreatedAt:  r.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if r.Outcome != models.OutcomeNoFace {
		resp.Rect = &dto.Rect{X: r.RectX, Y: r.RectY, W: r.RectW, H: r.RectH}
	}
	if r.Outcome == models.OutcomeNormalized {
		resp.EyeLeft = &dto.Point{X: r.EyeLeftX, Y: r.EyeLeftY}
		resp.EyeRight = &dto.Point{X: r.EyeRightX, Y: r.EyeRightY}
		resp.Distance = r.Distance
		resp.Angle = r.Angle
	}
	return resp
}
