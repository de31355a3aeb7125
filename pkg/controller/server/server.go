package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/m-mizutani/kokoro/pkg/model"
	"github.com/m-mizutani/kokoro/pkg/usecase/aggregator"
	"github.com/m-mizutani/kokoro/pkg/usecase/board"
	"github.com/m-mizutani/kokoro/pkg/utils/logging"
)

// Controller exposes the board and the aggregator to the browser front-end.
type Controller struct {
	board *board.UseCase
	agg   *aggregator.UseCase
}

// New creates a server controller
func New(b *board.UseCase, agg *aggregator.UseCase) *Controller {
	return &Controller{board: b, agg: agg}
}

// Router builds the gin engine with all routes attached.
func (x *Controller) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), accessLog(), cors())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/quote", x.getQuote)
		apiV1.POST("/notes", x.spawnNote)
		apiV1.GET("/notes", x.listNotes)
		apiV1.PATCH("/notes/:id/position", x.moveNote)
		apiV1.DELETE("/notes", x.clearNotes)
	}

	return router
}

// cors lets the browser widget call the API from any origin.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logging.From(c.Request.Context()).Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}

type spawnRequest struct {
	Viewport model.Viewport   `json:"viewport"`
	Mode     model.LayoutMode `json:"mode"`
}

type moveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (x *Controller) getQuote(c *gin.Context) {
	text := x.agg.NextQuote(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"text": text})
}

func (x *Controller) spawnNote(c *gin.Context) {
	var req spawnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Mode == "" {
		req.Mode = model.LayoutHeart
	}

	note, err := x.board.Spawn(c.Request.Context(), req.Viewport, req.Mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, note)
}

func (x *Controller) listNotes(c *gin.Context) {
	notes, err := x.board.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": notes})
}

func (x *Controller) moveNote(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	note, err := x.board.Move(c.Request.Context(), model.NoteID(c.Param("id")), req.X, req.Y)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, model.ErrNoteNotFound) {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, note)
}

func (x *Controller) clearNotes(c *gin.Context) {
	if err := x.board.Clear(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
