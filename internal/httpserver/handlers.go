package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/nguyentantai21042004/audio-recap/internal/export"
	"github.com/nguyentantai21042004/audio-recap/internal/media"
	"github.com/nguyentantai21042004/audio-recap/internal/notify"
	"github.com/nguyentantai21042004/audio-recap/internal/session"
)

const exportTitle = "Audio Summary"

// RegisterRoutes attaches all HTTP routes to the router.
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	api.POST("/sessions", h.createSession)

	sess := api.Group("/sessions/:id")
	sess.Use(h.requireSession())
	sess.GET("", h.getSession)
	sess.DELETE("", h.deleteSession)
	sess.POST("/summarize", h.summarize)
	sess.POST("/questions", h.askQuestion)
	sess.GET("/export", h.exportSession)
}

// requireSession resolves :id and aborts with 404 when it is unknown
func (h *Handler) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		s, ok := h.sessions.Get(c.Param("id"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		c.Set("session", s)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	return c.MustGet("session").(*session.Session)
}

func (h *Handler) createSession(c *gin.Context) {
	s := h.sessions.Create()
	c.JSON(http.StatusCreated, gin.H{
		"id":    s.ID,
		"state": s.State(),
	})
}

func (h *Handler) getSession(c *gin.Context) {
	c.JSON(http.StatusOK, currentSession(c).Snapshot())
}

func (h *Handler) deleteSession(c *gin.Context) {
	h.sessions.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) summarize(c *gin.Context) {
	s := currentSession(c)
	ctx := c.Request.Context()

	if c.Request.ContentLength > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	file, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if !media.IsSupported(file.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%v: %s", media.ErrUnsupportedFormat, filepath.Ext(file.Filename))})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "open file failed"})
		return
	}
	path, err := h.uploads.Save(ctx, src, filepath.Ext(file.Filename))
	src.Close()
	if err != nil {
		h.logger.Error(ctx, "Failed to store upload %s: %v", file.Filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save file failed"})
		return
	}
	defer h.uploads.Remove(ctx, path)

	h.logger.Info(ctx, "Session %s: summarizing %s (%d bytes)", s.ID, file.Filename, file.Size)

	collector := notify.NewCollector(h.logger)
	summary, err := h.processor.Process(notify.WithNotifier(ctx, collector), path)
	if err != nil {
		h.logger.Error(ctx, "Session %s: processing failed: %v", s.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   err.Error(),
			"notices": collector.Notices(),
		})
		return
	}

	if err := s.SetSummary(summary); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   err.Error(),
			"notices": collector.Notices(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"summary": summary.CombinedText,
		"tokens":  summary.TotalTokens,
		"state":   s.State(),
		"notices": collector.Notices(),
	})
}

type questionRequest struct {
	Question string `json:"question"`
}

func (h *Handler) askQuestion(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	s := currentSession(c)
	turn, err := s.Ask(c.Request.Context(), h.answerer, req.Question)
	switch {
	case errors.Is(err, session.ErrEmptyQuestion):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrNoSummary):
		c.JSON(http.StatusConflict, gin.H{"error": "summarize a recording first"})
	case err != nil:
		h.logger.Error(c.Request.Context(), "Session %s: answer failed: %v", s.ID, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error": err.Error(),
			"turn":  turn,
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"turn":  turn,
			"state": s.State(),
		})
	}
}

func (h *Handler) exportSession(c *gin.Context) {
	snap := currentSession(c).Snapshot()
	if snap.State == session.StateEmpty {
		c.JSON(http.StatusConflict, gin.H{"error": "nothing to export yet"})
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "md"))
	filename := "summary-" + snap.ID

	switch format {
	case "md", "markdown":
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename+".md"))
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(export.Markdown(exportTitle, snap, time.Now())))
	case "docx":
		ctx := c.Request.Context()
		path := filepath.Join(h.uploads.Dir(), uuid.NewString()+".docx")
		if err := export.WriteDocx(path, exportTitle, snap); err != nil {
			h.logger.Error(ctx, "Session %s: docx export failed: %v", snap.ID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
			return
		}
		defer h.uploads.Remove(ctx, path)
		c.FileAttachment(path, filename+".docx")
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be md or docx"})
	}
}
