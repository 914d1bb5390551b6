package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/agenthands/kinship/internal/core"
	"github.com/agenthands/kinship/internal/core/common"
	"github.com/agenthands/kinship/internal/core/model"
	"github.com/agenthands/kinship/internal/core/summary"
	"github.com/agenthands/kinship/internal/observability"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	Kinship *core.Kinship
	Metrics *observability.Collector
	Log     *zap.SugaredLogger
}

func NewServer(k *core.Kinship, metrics *observability.Collector, log *zap.SugaredLogger) *Server {
	return &Server{
		Kinship: k,
		Metrics: metrics,
		Log:     log,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())
	if s.Metrics != nil {
		r.Use(s.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(s.Metrics.Handler()))
	}

	r.GET("/healthz", s.Health)

	r.GET("/graph", s.GetGraph)
	r.GET("/graph/colored", s.GetColoredGraph)
	r.GET("/graph/render", s.GetRenderGraph)
	r.POST("/graph/visibility", s.PostVisibility)

	r.GET("/clusters", s.GetClusters)
	r.GET("/clusters/summary", s.GetClusterSummaries)
	r.GET("/nodes/:id", s.GetNode)

	r.GET("/matches/by-name", s.FindByName)
	r.GET("/matches/by-surname", s.FindBySurname)
	r.GET("/matches/columns", s.GetColumns)

	return r
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.Log.Debugw("Request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func (s *Server) fail(c *gin.Context, msg string, err error) {
	s.Log.Errorw(msg, "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) GetGraph(c *gin.Context) {
	graph, err := s.Kinship.GetGraphData(c.Request.Context())
	if err != nil {
		s.fail(c, "Failed to read graph", err)
		return
	}
	c.JSON(http.StatusOK, graph)
}

func (s *Server) GetColoredGraph(c *gin.Context) {
	colored, err := s.Kinship.ColoredGraph(c.Request.Context())
	if err != nil {
		s.fail(c, "Failed to colour graph", err)
		return
	}
	c.JSON(http.StatusOK, colored)
}

func (s *Server) GetRenderGraph(c *gin.Context) {
	view, err := s.Kinship.RenderGraph(c.Request.Context())
	if err != nil {
		s.fail(c, "Failed to render graph", err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type VisibilityRequest struct {
	Disabled []string `json:"disabled"`
	Toggle   []string `json:"toggle"`
}

func (s *Server) PostVisibility(c *gin.Context) {
	var req VisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	state, err := s.Kinship.Visibility(c.Request.Context(), req.Disabled, req.Toggle)
	if err != nil {
		s.fail(c, "Failed to compute visibility", err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (s *Server) GetClusters(c *gin.Context) {
	clusters, err := s.Kinship.Clusters(c.Request.Context())
	if err != nil {
		s.fail(c, "Failed to cluster graph", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clusters": clusters})
}

func (s *Server) GetClusterSummaries(c *gin.Context) {
	summaries, err := s.Kinship.ClusterSummaries(c.Request.Context())
	if err != nil {
		s.fail(c, "Failed to summarize clusters", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clusters": summaries})
}

func (s *Server) GetNode(c *gin.Context) {
	detail, err := s.Kinship.DescribeNode(c.Request.Context(), c.Param("id"))
	if errors.Is(err, summary.ErrNodeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Node not found"})
		return
	}
	if err != nil {
		s.fail(c, "Failed to describe node", err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (s *Server) FindByName(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing name"})
		return
	}

	matches, err := s.Kinship.FindMatchesByPersonName(c.Request.Context(), name)
	if err != nil {
		s.fail(c, "Failed to find matches", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

func (s *Server) FindBySurname(c *gin.Context) {
	surname := c.Query("surname")
	if surname == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing surname"})
		return
	}

	matches, err := s.Kinship.FindMatchesBySurname(c.Request.Context(), surname)
	if err != nil {
		s.fail(c, "Failed to find matches", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// GetColumns lists the match fields of the detail table with readable labels.
func (s *Server) GetColumns(c *gin.Context) {
	columns := make([]Column, 0, len(model.MatchColumns))
	for _, key := range model.MatchColumns {
		columns = append(columns, Column{Key: key, Label: common.HumanizeKey(key)})
	}
	c.JSON(http.StatusOK, gin.H{"columns": columns})
}
