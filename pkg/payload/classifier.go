// Package payload turns raw request bodies into structured form data. It
// covers the two encodings the submission endpoint accepts: a flat JSON
// object for RSVPs and multipart/form-data for photo batches.
package payload

import (
	"strings"
)

// Kind is the parse path selected for a request body.
type Kind int

const (
	KindUnsupported Kind = iota
	KindJSON
	KindMultipart
)

// Classify picks the parse path from the declared Content-Type. Matching is
// substring based so parameters like charset or the multipart boundary never
// affect the result. Anything else is KindUnsupported and must be rejected
// before any parsing happens.
func Classify(contentType string) Kind {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "application/json"):
		return KindJSON
	case strings.Contains(ct, "multipart/form-data"):
		return KindMultipart
	default:
		return KindUnsupported
	}
}
