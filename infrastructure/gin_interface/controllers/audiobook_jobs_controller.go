package controllers

import (
	"audiobook-generation-api/application/ports/inbound"
	"audiobook-generation-api/application/ports/outbound"
	"audiobook-generation-api/domain"
	"audiobook-generation-api/infrastructure/gin_interface/dto"
	"audiobook-generation-api/middleware"
	"context"
	"errors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"net/http"
)

// StatusStreamHandler serves the SSE subscription stream for one job id.
type StatusStreamHandler interface {
	Handler(jobID string) http.HandlerFunc
}

type AudiobookJobsController interface {
	CreateJob(c *gin.Context)
	GetJob(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type audiobookJobsController struct {
	logger       outbound.LoggerPort
	workerPool   outbound.TaskDispatcher
	recorder     outbound.JobRecorderPort
	pipeline     inbound.AudiobookPipelinePort
	statusStream StatusStreamHandler
}

func NewAudiobookJobsController(
	logger outbound.LoggerPort,
	workerPool outbound.TaskDispatcher,
	recorder outbound.JobRecorderPort,
	pipeline inbound.AudiobookPipelinePort,
	statusStream StatusStreamHandler,
) AudiobookJobsController {
	return &audiobookJobsController{
		logger:       logger,
		workerPool:   workerPool,
		recorder:     recorder,
		pipeline:     pipeline,
		statusStream: statusStream,
	}
}

func (a *audiobookJobsController) CreateJob(c *gin.Context) {
	var createJobRequest dto.CreateJobRequest
	if err := c.ShouldBindJSON(&createJobRequest); err != nil {
		err = c.AbortWithError(http.StatusBadRequest, err)
		if err != nil {
			a.logger.Error(err, "failed to abort with error")
		}
		return
	}

	if createJobRequest.VoiceSampleURL == "" && createJobRequest.VideoID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error": "either voice_sample_url or video_id must be provided",
		})
		return
	}

	job := domain.NewJob(uuid.NewString(), createJobRequest.DocumentPath, createJobRequest.Title,
		createJobRequest.VoiceLabel, domain.VoiceReference{
			SampleURL: createJobRequest.VoiceSampleURL,
			VideoID:   createJobRequest.VideoID,
			ClipStart: createJobRequest.ClipStart,
			ClipEnd:   createJobRequest.ClipEnd,
		})

	if err := a.recorder.Create(c, job); err != nil {
		a.logger.ErrorWithFields(err, "Failed to create job record", map[string]interface{}{
			"job_id": job.ID,
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to create job"})
		return
	}

	// The run owns its own lifetime; it must not die with this request.
	err := a.workerPool.Submit(func() {
		a.pipeline.Run(context.Background(), job)
	})
	if err != nil {
		a.logger.ErrorWithFields(err, "Failed to dispatch job", map[string]interface{}{
			"job_id": job.ID,
		})
		if updateErr := a.recorder.Update(c, job.ID, domain.Failed("failed to enqueue job")); updateErr != nil {
			a.logger.Error(updateErr, "Failed to mark job as failed")
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to enqueue job"})
		return
	}

	c.JSON(http.StatusAccepted, dto.CreateJobResponse{
		JobID:  job.ID,
		Status: string(domain.JobQueued),
	})
}

func (a *audiobookJobsController) GetJob(c *gin.Context) {
	jobID := c.Param("id")

	record, err := a.recorder.Get(c, jobID)
	if err != nil {
		if errors.Is(err, domain.ErrJobNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		a.logger.ErrorWithFields(err, "Failed to fetch job record", map[string]interface{}{
			"job_id": jobID,
		})
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch job"})
		return
	}

	c.JSON(http.StatusOK, dto.JobStatusResponse{
		JobID:          record.ID,
		Status:         string(record.Status),
		Progress:       record.Progress,
		Error:          record.ErrorMessage,
		OutputLocation: record.OutputLocation,
	})
}

func (a *audiobookJobsController) StreamJobEvents(c *gin.Context) {
	jobID := c.Param("id")
	a.statusStream.Handler(jobID)(c.Writer, c.Request)
}

func (a *audiobookJobsController) RegisterRoutes(g *gin.Engine) {
	g.POST("/jobs", a.CreateJob)
	g.GET("/jobs/:id", a.GetJob)
	g.GET("/jobs/:id/events", middleware.SSEHeaders(), a.StreamJobEvents)
}
