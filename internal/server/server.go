// Package server exposes configured actions, model pick-lists and schemas over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/skosovsky/geminikit"
	"github.com/skosovsky/geminikit/action"
	"github.com/skosovsky/geminikit/catalog"
	"github.com/skosovsky/geminikit/extract"
	"github.com/skosovsky/geminikit/internal/jsonx"
	"github.com/skosovsky/geminikit/mediafetch"
	"github.com/skosovsky/geminikit/schema"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

// maxInputSize caps action request bodies; images travel base64 encoded.
const maxInputSize = 32 << 20

const shutdownTimeout = 10 * time.Second

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// Server routes HTTP requests to a registry and a catalog.
type Server struct {
	registry *action.Registry
	catalog  *catalog.Catalog
	logger   logrus.FieldLogger
	engine   *gin.Engine
}

// New builds the router.
func New(reg *action.Registry, cat *catalog.Catalog, logger logrus.FieldLogger) *Server {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Server{registry: reg, catalog: cat, logger: logger, engine: gin.New()}
	s.routes()
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("listen", addr).Info("server started")
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errCh
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) routes() {
	r := s.engine
	r.Use(requestID())
	r.Use(s.accessLog())
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		writeJSON(c, http.StatusOK, gin.H{"ok": true})
	})

	v1 := r.Group("/v1")
	v1.GET("/models", s.listModels)
	v1.GET("/pick-lists/:name", s.pickList)
	v1.GET("/actions", s.listActions)
	v1.POST("/actions/:name", s.invoke)
	v1.GET("/actions/:name/schema", s.outputFields)
	v1.GET("/actions/:name/sample", s.sampleOutput)
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(HeaderRequestID, id)
		c.Set(HeaderRequestID, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		s.logger.WithFields(logrus.Fields{
			"request_id": c.GetString(HeaderRequestID),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency":    time.Since(started),
			"client_ip":  c.ClientIP(),
		}).Info("request")
	}
}

func (s *Server) listModels(c *gin.Context) {
	kind := strings.TrimSpace(c.Query("kind"))
	if kind == "" {
		models, err := s.catalog.Models(c.Request.Context())
		if err != nil {
			s.fail(c, err)
			return
		}
		writeJSON(c, http.StatusOK, gin.H{"models": models})
		return
	}
	choices, err := s.catalog.PickList(c.Request.Context(), catalog.Kind(kind))
	if err != nil {
		s.fail(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"models": choices})
}

var staticLists = map[string]func() []catalog.Choice{
	"harm_categories": catalog.HarmCategories,
	"thresholds":      catalog.Thresholds,
	"languages":       catalog.Languages,
	"message_types":   catalog.MessageTypes,
	"chat_roles":      catalog.ChatRoles,
}

func (s *Server) pickList(c *gin.Context) {
	list, ok := staticLists[c.Param("name")]
	if !ok {
		writeError(c, http.StatusNotFound, "unknown pick-list "+c.Param("name"), nil)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"choices": list()})
}

type actionInfo struct {
	Name  string      `json:"name"`
	Kind  action.Kind `json:"kind"`
	Model string      `json:"model,omitempty"`
}

func (s *Server) listActions(c *gin.Context) {
	names := s.registry.Names()
	out := make([]actionInfo, 0, len(names))
	for _, name := range names {
		d, _ := s.registry.Definition(name)
		out = append(out, actionInfo{Name: name, Kind: d.Kind, Model: d.Model})
	}
	writeJSON(c, http.StatusOK, gin.H{"actions": out})
}

func (s *Server) invoke(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxInputSize+1))
	if err != nil {
		writeError(c, http.StatusBadRequest, "read body: "+err.Error(), nil)
		return
	}
	if len(body) > maxInputSize {
		writeError(c, http.StatusRequestEntityTooLarge, "request body too large", nil)
		return
	}
	out, err := s.registry.Invoke(c.Request.Context(), c.Param("name"), body)
	if err != nil {
		s.fail(c, err)
		return
	}
	writeJSON(c, http.StatusOK, out)
}

func (s *Server) outputFields(c *gin.Context) {
	fields, err := s.registry.OutputFields(c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"fields": fields})
}

func (s *Server) sampleOutput(c *gin.Context) {
	sample, err := s.registry.SampleOutput(c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sample)
}

// fail maps err onto a status code and writes the error body.
func (s *Server) fail(c *gin.Context, err error) {
	var (
		finishErr *extract.FinishError
		httpErr   *geminikit.HTTPError
	)
	switch {
	case errors.Is(err, action.ErrUnknownAction):
		writeError(c, http.StatusNotFound, err.Error(), nil)
	case errors.As(err, &finishErr):
		writeError(c, http.StatusUnprocessableEntity, err.Error(), gin.H{
			"severity":      finishErr.Severity,
			"finish_reason": finishErr.Reason,
		})
	case errors.As(err, &httpErr):
		writeError(c, http.StatusBadGateway, err.Error(), gin.H{"upstream_status": httpErr.StatusCode})
	case errors.Is(err, action.ErrMissingInput),
		errors.Is(err, action.ErrInvalidInput),
		errors.Is(err, action.ErrInputTooLong),
		errors.Is(err, geminikit.ErrInvalidSettings),
		errors.Is(err, geminikit.ErrInvalidPart),
		errors.Is(err, schema.ErrInvalidSchema),
		errors.Is(err, catalog.ErrUnknownKind),
		errors.Is(err, mediafetch.ErrUnsafeScheme),
		errors.Is(err, mediafetch.ErrUnsupportedType),
		errors.Is(err, mediafetch.ErrBodyTooLarge),
		errors.Is(err, mediafetch.ErrFetchFailed):
		writeError(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, context.DeadlineExceeded):
		writeError(c, http.StatusGatewayTimeout, err.Error(), nil)
	case errors.Is(err, geminikit.ErrRequestFailed):
		writeError(c, http.StatusBadGateway, err.Error(), nil)
	default:
		s.logger.WithError(err).WithField("request_id", c.GetString(HeaderRequestID)).Error("request failed")
		writeError(c, http.StatusInternalServerError, err.Error(), nil)
	}
}

func writeError(c *gin.Context, status int, msg string, extra gin.H) {
	body := gin.H{"error": msg}
	for k, v := range extra {
		body[k] = v
	}
	writeJSON(c, status, body)
}

func writeJSON(c *gin.Context, status int, v any) {
	data, err := jsonx.Marshal(v)
	if err != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(status, "application/json; charset=utf-8", data)
}
