package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"pocketcoach/backend/internal/validation"
)

// multipartOverhead covers boundaries, part headers and the small text fields of an upload form.
const multipartOverhead = 64 << 10

const contextBodyLimitKey = "uploadBodyLimit"

var errFileTooLarge = errors.New("uploaded file is too large")

// limitedBody records whether the request body hit its limit.
type limitedBody struct {
	io.ReadCloser
	exceeded bool
}

func (b *limitedBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		b.exceeded = true
	}
	return n, err
}

// LimitUploadBody caps the request body at files*maxFileBytes plus form overhead, so an oversized
// upload is cut off while it is being read instead of being spooled to disk.
func LimitUploadBody(maxFileBytes int64, files int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxFileBytes <= 0 || c.Request.Body == nil {
			c.Next()
			return
		}
		body := &limitedBody{
			ReadCloser: http.MaxBytesReader(c.Writer, c.Request.Body, int64(files)*maxFileBytes+multipartOverhead),
		}
		c.Request.Body = body
		c.Set(contextBodyLimitKey, body)
		c.Next()
	}
}

func bodyLimitExceeded(c *gin.Context) bool {
	v, ok := c.Get(contextBodyLimitKey)
	if !ok {
		return false
	}
	body, ok := v.(*limitedBody)
	return ok && body.exceeded
}

// bindUploadForm binds a multipart form. A body cut off by LimitUploadBody is a 413, any other
// failure the usual 422.
func bindUploadForm[T any](c *gin.Context) (T, bool) {
	form, verr := validation.BindMultipart[T](c)
	if verr == nil {
		return form, true
	}
	if bodyLimitExceeded(c) {
		abortWithError(c, http.StatusRequestEntityTooLarge, errFileTooLarge.Error())
		return form, false
	}
	verr.Abort(c)
	return form, false
}

// readUpload buffers a multipart file completely. Providers need the whole payload, so there is
// no streaming path. The content type comes from the part header unless it is missing or generic,
// in which case it is sniffed from the bytes.
func readUpload(fh *multipart.FileHeader, maxBytes int64) ([]byte, string, error) {
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, "", errFileTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, "", fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer f.Close()

	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, "", fmt.Errorf("read upload %q: %w", fh.Filename, err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, "", errFileTooLarge
	}
	return data, contentType(fh, data), nil
}

func contentType(fh *multipart.FileHeader, data []byte) string {
	if declared := fh.Header.Get("Content-Type"); declared != "" {
		if mediaType, _, err := mime.ParseMediaType(declared); err == nil && mediaType != "application/octet-stream" {
			return mediaType
		}
	}
	detected := mimetype.Detect(data).String()
	if mediaType, _, err := mime.ParseMediaType(detected); err == nil {
		return mediaType
	}
	return detected
}
