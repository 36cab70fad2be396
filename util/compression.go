package util

import (
	"bytes"
	"compress/gzip"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// bufferedWriter holds the response body until the handler chain finishes.
type bufferedWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bufferedWriter) Write(b []byte) (int, error) {
	return w.body.Write(b)
}

func (w *bufferedWriter) WriteString(s string) (int, error) {
	return w.body.WriteString(s)
}

// GzipMiddleware compresses responses of at least minSize bytes for clients that
// accept gzip.
func GzipMiddleware(minSize int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.Request.Header.Get("Accept-Encoding"), "gzip") {
			c.Next()
			return
		}

		original := c.Writer
		buffered := &bufferedWriter{ResponseWriter: original, body: &bytes.Buffer{}}
		c.Writer = buffered

		c.Next()

		c.Writer = original
		data := buffered.body.Bytes()

		if len(data) < minSize {
			original.Header().Set("Content-Length", strconv.Itoa(len(data)))
			_, _ = original.Write(data)
			return
		}

		var compressed bytes.Buffer
		gz, err := gzip.NewWriterLevel(&compressed, gzip.BestSpeed)
		if err == nil {
			_, err = gz.Write(data)
		}
		if err == nil {
			err = gz.Close()
		}
		if err != nil {
			_, _ = original.Write(data)
			return
		}

		original.Header().Set("Content-Encoding", "gzip")
		original.Header().Add("Vary", "Accept-Encoding")
		original.Header().Set("Content-Length", strconv.Itoa(compressed.Len()))
		_, _ = original.Write(compressed.Bytes())
	}
}
