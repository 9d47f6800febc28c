package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		want       string
	}{
		{"ipv4 with port", "192.0.2.1:1234", "192.0.2.1"},
		{"ipv6 with port", "[2001:db8::1]:1234", "2001:db8::1"},
		{"bare ipv4", "192.0.2.1", "192.0.2.1"},
		{"bare ipv6", "2001:db8::1", "2001:db8::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &http.Request{RemoteAddr: tt.remoteAddr}
			assert.Equal(t, tt.want, clientIP(r))
		})
	}
}
