package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gaugeboard/gauge-dashboard/services/dashboard/metrics"
	"github.com/gin-gonic/gin"
	"github.com/multiversx/mx-chain-core-go/core/check"
	logger "github.com/multiversx/mx-chain-logger-go"
)

var log = logger.GetOrCreate("api")

type server struct {
	router         *gin.Engine
	httpServer     *http.Server
	pipeline       Pipeline
	listenAddr     string
	staticDir      string
	generalHandler func(http.Handler) http.Handler
	wg             sync.WaitGroup
}

// ArgsWebServer defines the web server arguments
type ArgsWebServer struct {
	ListenAddress  string
	StaticDir      string
	Pipeline       Pipeline
	GeneralHandler func(http.Handler) http.Handler
}

// gaugeResponse is one rendered-ready gauge: the normalized snapshot plus its computed domain
type gaugeResponse struct {
	Key    string              `json:"key"`
	Label  string              `json:"label"`
	Value  float64             `json:"value"`
	Target float64             `json:"target"`
	Domain metrics.GaugeDomain `json:"domain"`
}

type periodGaugesResponse struct {
	Period  string          `json:"period"`
	HasData bool            `json:"hasData"`
	Gauges  []gaugeResponse `json:"gauges"`
}

type statusResponse struct {
	LastAttempt   int64  `json:"lastAttempt"` // unix seconds, 0 = never
	LastSuccess   int64  `json:"lastSuccess"` // unix seconds, 0 = never
	LastErrorKind string `json:"lastErrorKind,omitempty"`
	LastError     string `json:"lastError,omitempty"`
	Refreshing    bool   `json:"refreshing"`
	HasSnapshot   bool   `json:"hasSnapshot"`
}

// NewServer initializes the Gin engine and mounts all routes
func NewServer(args ArgsWebServer) (*server, error) {
	if check.IfNil(args.Pipeline) {
		return nil, errors.New("nil pipeline")
	}
	if args.GeneralHandler == nil {
		return nil, errors.New("nil http handler")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &server{
		router:         router,
		pipeline:       args.Pipeline,
		listenAddr:     args.ListenAddress,
		staticDir:      args.StaticDir,
		generalHandler: args.GeneralHandler,
	}

	s.setupRoutes()
	return s, nil
}

func (s *server) setupRoutes() {
	api := s.router.Group("/api")

	api.GET("/periods", s.handleGetPeriods)
	api.GET("/gauges/:period", s.handleGetGauges)
	api.GET("/status", s.handleGetStatus)

	// Serve static files from the frontend build if configured
	if s.staticDir != "" {
		log.Info("serving static files", "dir", s.staticDir)
		s.router.Static("/static", path.Join(s.staticDir, "static"))
		s.router.StaticFile("/favicon.ico", path.Join(s.staticDir, "favicon.ico"))

		// NoRoute for SPA fallback
		s.router.NoRoute(func(c *gin.Context) {
			// If request is for an /api route that doesn't exist, return 404
			if strings.HasPrefix(c.Request.URL.Path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": "api route not found"})
				return
			}
			// Otherwise serve index.html for CSR
			c.File(path.Join(s.staticDir, "index.html"))
		})
	}
}

// Start listens and serves connections
func (s *server) Start() {
	handler := s.generalHandler(s.router)

	s.httpServer = &http.Server{
		Addr:    s.listenAddr,
		Handler: handler,
	}

	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		log.Error("failed to listen", "error", err)
		return
	}
	s.listenAddr = ln.Addr().String()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		log.Info("starting HTTP server", "address", s.listenAddr)

		err := s.httpServer.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "error", err)
		}
	}()
}

// Address returns the actual listen address
func (s *server) Address() string {
	return s.listenAddr
}

// Close gracefully stops the server
func (s *server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			return err
		}
	}
	s.wg.Wait()

	return nil
}

// --- Handlers ---

func (s *server) handleGetPeriods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"periods": metrics.Periods()})
}

func (s *server) handleGetGauges(c *gin.Context) {
	period := c.Param("period")
	if !metrics.IsKnownPeriod(period) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown period"})
		return
	}

	resp := periodGaugesResponse{
		Period:  period,
		HasData: s.pipeline.HasPeriodData(period),
		Gauges:  make([]gaugeResponse, 0, len(metrics.Definitions())),
	}
	for _, def := range metrics.Definitions() {
		snapshot := s.pipeline.GetMetric(period, def.Key)
		resp.Gauges = append(resp.Gauges, gaugeResponse{
			Key:    def.Key,
			Label:  def.DisplayLabel,
			Value:  snapshot.Value,
			Target: snapshot.Target,
			Domain: metrics.Domain(snapshot.Target),
		})
	}

	c.JSON(http.StatusOK, resp)
}

func (s *server) handleGetStatus(c *gin.Context) {
	status := s.pipeline.Status()

	resp := statusResponse{
		LastErrorKind: status.LastErrorKind,
		LastError:     status.LastError,
		Refreshing:    status.Refreshing,
		HasSnapshot:   status.HasSnapshot,
	}
	if !status.LastAttempt.IsZero() {
		resp.LastAttempt = status.LastAttempt.Unix()
	}
	if !status.LastSuccess.IsZero() {
		resp.LastSuccess = status.LastSuccess.Unix()
	}

	c.JSON(http.StatusOK, resp)
}
