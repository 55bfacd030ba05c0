package server

import (
	"net/http"
	"net/netip"

	"github.com/go-chi/chi/v5/middleware"
)

// TrustedRealIP rewrites RemoteAddr from the forwarding headers only when
// the socket peer is one of the trusted proxies. Requests from anyone else
// keep their peer address.
func TrustedRealIP(proxies []netip.Prefix) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if len(proxies) == 0 {
			return next
		}
		realIP := middleware.RealIP(next)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if fromTrustedProxy(r.RemoteAddr, proxies) {
				realIP.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func fromTrustedProxy(remoteAddr string, proxies []netip.Prefix) bool {
	var addr netip.Addr
	if addrPort, err := netip.ParseAddrPort(remoteAddr); err == nil {
		addr = addrPort.Addr()
	} else if parsed, err := netip.ParseAddr(remoteAddr); err == nil {
		addr = parsed
	} else {
		return false
	}

	addr = addr.Unmap()
	for _, prefix := range proxies {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
