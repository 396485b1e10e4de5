package transport

import (
	"net/http"
	"strconv"
)

// Headers attached to protected requests.
const (
	HeaderClientVersion      = "X-Client-Version"
	HeaderRequestID          = "X-Request-ID"
	HeaderRequestTimestamp   = "X-Request-Timestamp"
	HeaderContentTypeOptions = "X-Content-Type-Options"
	HeaderFrameOptions       = "X-Frame-Options"
	// HeaderEncrypted marks a body that is an encrypted envelope.
	HeaderEncrypted = "X-Encrypted"
)

func setSecurityHeaders(h http.Header, clientVersion, requestID string, timestamp int64) {
	if clientVersion != "" {
		h.Set(HeaderClientVersion, clientVersion)
	}
	h.Set(HeaderRequestID, requestID)
	h.Set(HeaderRequestTimestamp, strconv.FormatInt(timestamp, 10))
	h.Set(HeaderContentTypeOptions, "nosniff")
	h.Set(HeaderFrameOptions, "DENY")
}
