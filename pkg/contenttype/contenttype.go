// Package contenttype infers MIME types for email attachments.
//
// It depends on the standard library only so the API client can use it
// without linking any storage SDK.
package contenttype

import (
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// OctetStream is the content type used when nothing better is known.
const OctetStream = "application/octet-stream"

// mimeDetectionBytes is the prefix length http.DetectContentType looks at.
const mimeDetectionBytes = 512

// extensionTypes covers extensions whose registration differs between systems.
var extensionTypes = map[string]string{
	".txt":  "text/plain",
	".csv":  "text/csv",
	".html": "text/html",
	".htm":  "text/html",
	".ics":  "text/calendar",
	".pdf":  "application/pdf",
	".json": "application/json",
	".xml":  "application/xml",
	".zip":  "application/zip",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
}

// Detect infers a MIME type for an attachment.
// The filename extension wins; otherwise the content is sniffed.
// Parameters such as charset are dropped.
func Detect(filename string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != "" {
		if t, ok := extensionTypes[ext]; ok {
			return t
		}
		if t := mime.TypeByExtension(ext); t != "" {
			return Normalize(t)
		}
	}

	if len(content) == 0 {
		return OctetStream
	}
	if len(content) > mimeDetectionBytes {
		content = content[:mimeDetectionBytes]
	}
	return Normalize(http.DetectContentType(content))
}

// Normalize extracts the base MIME type, removing parameters like charset.
func Normalize(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.TrimSpace(strings.ToLower(mimeType))
}
