package payload

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"strings"
)

var (
	// ErrMalformedMultipart means the body could not be parsed against the
	// declared boundary. The decode is atomic: callers never see a
	// partially populated Form alongside this error.
	ErrMalformedMultipart = errors.New("malformed multipart body")

	// ErrPayloadTooLarge means a single file part exceeded the size limit.
	ErrPayloadTooLarge = errors.New("file exceeds maximum allowed size")
)

// text fields are bounded too, generously
const maxFieldSize = 64 * 1024

// File is one fully buffered file part.
type File struct {
	FieldName string
	Filename  string
	MimeType  string
	Data      []byte
}

// Form is the complete decoded result of one multipart body.
type Form struct {
	Fields map[string]string
	Files  []File
}

// DecodeMultipart parses a multipart/form-data body into a Form, buffering
// every part in memory. Hosting platforms may hand the body over transfer
// encoded as base64; that is detected and undone before parsing. Each file is
// capped at maxFileSize bytes. The whole decode either succeeds or fails.
func DecodeMultipart(body []byte, contentType string, maxFileSize int64) (*Form, error) {
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || !strings.HasPrefix(mediaType, "multipart/") {
		return nil, fmt.Errorf("%w: bad content type %q", ErrMalformedMultipart, contentType)
	}
	boundary := params["boundary"]
	if boundary == "" {
		return nil, fmt.Errorf("%w: missing boundary", ErrMalformedMultipart)
	}

	raw := decodeTransferEncoding(body, boundary)

	form := &Form{Fields: make(map[string]string)}
	mr := multipart.NewReader(bytes.NewReader(raw), boundary)
	for {
		part, err := mr.NextPart()
		if err == io.EOF {
			// wrapped EOFs from NextPart mean a truncated stream, so
			// only the bare sentinel ends the loop cleanly
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMultipart, err)
		}

		if part.FileName() == "" {
			value, err := io.ReadAll(io.LimitReader(part, maxFieldSize))
			if err != nil {
				return nil, fmt.Errorf("%w: reading field %q: %v", ErrMalformedMultipart, part.FormName(), err)
			}
			form.Fields[part.FormName()] = string(value)
			continue
		}

		data, err := io.ReadAll(io.LimitReader(part, maxFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("%w: reading file %q: %v", ErrMalformedMultipart, part.FileName(), err)
		}
		if int64(len(data)) > maxFileSize {
			return nil, fmt.Errorf("%w: %q", ErrPayloadTooLarge, part.FileName())
		}
		form.Files = append(form.Files, File{
			FieldName: part.FormName(),
			Filename:  part.FileName(),
			MimeType:  part.Header.Get("Content-Type"),
			Data:      data,
		})
	}

	return form, nil
}

// decodeTransferEncoding returns the raw multipart bytes. If the body does
// not contain the boundary delimiter but decodes as base64 into bytes that
// do, the decoded form is used. Otherwise the body is returned untouched and
// the parser reports any mismatch.
func decodeTransferEncoding(body []byte, boundary string) []byte {
	delim := []byte("--" + boundary)
	if bytes.Contains(body, delim) {
		return body
	}
	decoded, err := base64.StdEncoding.DecodeString(string(bytes.TrimSpace(body)))
	if err == nil && bytes.Contains(decoded, delim) {
		return decoded
	}
	return body
}
