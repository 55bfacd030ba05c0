package server

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrustedRealIP(t *testing.T) {
	proxies := []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("2001:db8::/32"),
	}

	tests := []struct {
		name       string
		proxies    []netip.Prefix
		remoteAddr string
		want       string
	}{
		{"no proxies configured", nil, "10.1.2.3:5000", "10.1.2.3:5000"},
		{"untrusted peer", proxies, "198.51.100.4:6000", "198.51.100.4:6000"},
		{"trusted peer", proxies, "10.1.2.3:5000", "203.0.113.9"},
		{"trusted ipv6 peer", proxies, "[2001:db8::1]:5000", "203.0.113.9"},
		{"unparseable peer", proxies, "pipe", "pipe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := TrustedRealIP(tt.proxies)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.RemoteAddr
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			req.Header.Set("X-Forwarded-For", "203.0.113.9")
			handler.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, got)
		})
	}
}
