package services

import (
	"encoding/hex"
	"fmt"
	"net"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// IPHasher turns client addresses into keyed, non-reversible identifiers
// so rate limiting never stores a raw IP
type IPHasher struct {
	key []byte
}

// NewIPHasher creates a hasher keyed with secret (at most 64 bytes)
func NewIPHasher(secret string) (*IPHasher, error) {
	if len(secret) > blake2b.Size {
		return nil, fmt.Errorf("IP hash secret must be at most %d bytes", blake2b.Size)
	}
	return &IPHasher{key: []byte(secret)}, nil
}

// Hash returns the hex blake2b-256 of the normalized address. Ports are
// dropped and IPv4-mapped IPv6 addresses hash like their IPv4 form.
func (h *IPHasher) Hash(remoteAddr string) string {
	addr := strings.TrimSpace(remoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	if ip := net.ParseIP(addr); ip != nil {
		addr = ip.String()
	}

	mac, err := blake2b.New256(h.key)
	if err != nil {
		// Only reachable with an oversized key, rejected in NewIPHasher
		panic(err)
	}
	mac.Write([]byte(addr))
	return hex.EncodeToString(mac.Sum(nil))
}
