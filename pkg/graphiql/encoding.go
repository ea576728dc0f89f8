package graphiql

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/cespare/xxhash/v2"
)

const (
	etagHeader            = "ETag"
	ifNoneMatchHeader     = "If-None-Match"
	varyHeader            = "Vary"
	acceptEncodingHeader  = "Accept-Encoding"
	contentEncodingHeader = "Content-Encoding"
	contentLengthHeader   = "Content-Length"

	encodingBrotli = "br"
)

// etag is a weak validator of the uncompressed asset, shared by all encodings.
func etag(content []byte) string {
	return fmt.Sprintf(`W/"%016x"`, xxhash.Sum64(content))
}

// notModified reports whether the If-None-Match header of r matches tag using the weak comparison.
func notModified(r *http.Request, tag string) bool {
	header := r.Header.Get(ifNoneMatchHeader)
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == strings.TrimPrefix(tag, "W/") {
			return true
		}
	}
	return false
}

// acceptsBrotli reports whether the Accept-Encoding header of r lists br with a non-zero quality.
func acceptsBrotli(r *http.Request) bool {
	for _, header := range r.Header.Values(acceptEncodingHeader) {
		for _, entry := range strings.Split(header, ",") {
			coding, params, _ := strings.Cut(entry, ";")
			if !strings.EqualFold(strings.TrimSpace(coding), encodingBrotli) {
				continue
			}
			quality, ok := strings.CutPrefix(strings.TrimSpace(params), "q=")
			if !ok {
				return true
			}
			q, err := strconv.ParseFloat(quality, 64)
			return err == nil && q > 0
		}
	}
	return false
}

func compressBrotli(out *bytes.Buffer, content []byte) error {
	writer := brotli.NewWriterLevel(out, brotli.DefaultCompression)
	if _, err := writer.Write(content); err != nil {
		return err
	}
	return writer.Close()
}
