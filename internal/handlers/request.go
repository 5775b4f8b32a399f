package handlers

import (
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	defaultPage  = 1
	defaultLimit = 10

	// maxUploadMemory bounds the in-memory portion of multipart parsing; larger
	// payloads spill to temp files.
	maxUploadMemory = 32 << 20
)

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// pathID extracts a route wildcard and validates that it is UUID-shaped.
func pathID(r *http.Request, name string) (string, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	if raw == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	if _, err := uuid.Parse(raw); err != nil {
		return "", fmt.Errorf("%s must be a valid id", name)
	}
	return raw, nil
}

// parsePagination reads page/limit query parameters, falling back to the
// defaults when absent or malformed.
func parsePagination(r *http.Request) (page, limit int) {
	page = defaultPage
	limit = defaultLimit

	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	return page, limit
}

// formFile fetches a named multipart file. The caller owns closing the reader.
func formFile(r *http.Request, field string) (multipart.File, *multipart.FileHeader, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s file: %w", field, err)
	}
	return file, header, nil
}

// uploadKey derives a collision-free object key preserving the uploaded
// file's extension.
func uploadKey(prefix, filename string) string {
	ext := ""
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		ext = strings.ToLower(filename[idx:])
	}
	return fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), ext)
}

func fileContentType(header *multipart.FileHeader) string {
	if header == nil {
		return ""
	}
	return header.Header.Get("Content-Type")
}
