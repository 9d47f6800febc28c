package api

import (
	"encoding/json/v2"
	"io"
	"net"
	"net/http"
)

// maxRequestBody caps how much of a request body is read.
const maxRequestBody = 1 << 20 // 1 MB

// decodeJSON decodes a JSON request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	return json.UnmarshalRead(io.LimitReader(r.Body, maxRequestBody), dst)
}

// clientIP extracts the client IP from the request.
// middleware.RealIP has already folded X-Forwarded-For and X-Real-IP into
// RemoteAddr, so the value may be host:port or a bare IP (including IPv6).
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
