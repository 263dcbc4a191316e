package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const processTimeHeader = "X-Process-Time"

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// processTimeMiddleware expone el tiempo de proceso en segundos.
// La cabecera se fija antes de que el handler escriba el cuerpo.
func processTimeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		w := &processTimeWriter{ResponseWriter: c.Writer, start: time.Now()}
		c.Writer = w
		c.Next()
		if !w.Written() {
			w.stamp()
		}
	}
}

type processTimeWriter struct {
	gin.ResponseWriter
	start time.Time
	set   bool
}

func (w *processTimeWriter) WriteHeader(code int) {
	w.stamp()
	w.ResponseWriter.WriteHeader(code)
}

func (w *processTimeWriter) WriteHeaderNow() {
	w.stamp()
	w.ResponseWriter.WriteHeaderNow()
}

func (w *processTimeWriter) Write(b []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(b)
}

func (w *processTimeWriter) WriteString(s string) (int, error) {
	w.stamp()
	return w.ResponseWriter.WriteString(s)
}

func (w *processTimeWriter) stamp() {
	if w.set {
		return
	}
	w.set = true
	elapsed := time.Since(w.start).Seconds()
	w.Header().Set(processTimeHeader, strconv.FormatFloat(elapsed, 'f', -1, 64))
}

// maxJSONBodyBytes limita el cuerpo que jsonValidationMiddleware carga en memoria.
const maxJSONBodyBytes = 1 << 20

// jsonValidationMiddleware rechaza cuerpos declarados como JSON que no lo son.
func jsonValidationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
		if mediaType != "application/json" || c.Request.Body == nil {
			c.Next()
			return
		}
		body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxJSONBodyBytes))
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "could not read request body"})
			return
		}
		if len(bytes.TrimSpace(body)) > 0 && !json.Valid(body) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid JSON format"})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))
		c.Next()
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		origins = []string{"http://localhost", "http://localhost:3000"}
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{processTimeHeader},
		AllowCredentials: true,
	})
}
