package server

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/gin-gonic/gin"
)

// Defaults applied when the inbound upload omits a filename or part
// content type.
const (
	defaultUploadFilename    = "file"
	defaultUploadContentType = "application/octet-stream"
)

// @Summary Fetch media
// @Description Streams the upstream media object with its content type
// @Tags media
// @Param id path string true "Media ID"
// @Router /api/v1/media/{id} [get]
func (s *Server) getMedia(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Media id is required"})
		return
	}

	path := "/v1/media/" + id
	resp, err := s.client(c).Stream(c.Request.Context(), http.MethodGet, path)
	if err != nil {
		s.respondError(c, err, path)
		return
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = defaultUploadContentType
	}

	c.DataFromReader(resp.StatusCode, resp.ContentLength, contentType, resp.Body, nil)
}

// @Summary Upload media
// @Description Re-encodes the inbound multipart file and forwards it upstream
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/media/upload [post]
func (s *Server) uploadMedia(c *gin.Context) {
	// Read the part stream directly: a file part with no filename must
	// still count as the file field, which FormFile would reject
	reader, err := c.Request.MultipartReader()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	var (
		data      []byte
		filename  string
		partType  string
		foundFile bool
	)
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			s.respondError(c, err, "/v1/media/upload")
			return
		}
		if part.FormName() != "file" {
			continue
		}

		data, err = io.ReadAll(part)
		if err != nil {
			s.respondError(c, err, "/v1/media/upload")
			return
		}
		filename = part.FileName()
		partType = part.Header.Get("Content-Type")
		foundFile = true
		break
	}

	if !foundFile {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	body, contentType, err := encodeUpload(data, filename, partType)
	if err != nil {
		s.respondError(c, err, "/v1/media/upload")
		return
	}

	resp, err := s.uploadClient(c).Do(c.Request.Context(), http.MethodPost, "/v1/media/upload", body, contentType)
	if err != nil {
		s.respondError(c, err, "/v1/media/upload")
		return
	}

	c.Data(resp.StatusCode, "application/json", resp.Body)
}

// encodeUpload wraps the file bytes in a fresh multipart payload,
// preserving the original filename and part content type or substituting
// the defaults when absent
func encodeUpload(data []byte, filename, contentType string) (io.Reader, string, error) {
	if filename == "" {
		filename = defaultUploadFilename
	}
	if contentType == "" {
		contentType = defaultUploadContentType
	}

	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(filename)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create multipart part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("failed to write multipart part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart payload: %w", err)
	}

	return buf, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
