package utils

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP extracts the best IP address from typical proxy headers or RemoteAddr.
// Access tokens are bound to this value.
func ClientIP(r *http.Request) string {
	forwardedFor := r.Header.Get("X-Forwarded-For")
	if forwardedFor != "" {
		for _, ip := range strings.Split(forwardedFor, ",") {
			cleanIP := strings.TrimSpace(ip)
			if isValidIP(cleanIP) {
				return cleanIP
			}
		}
	}

	if cf := r.Header.Get("CF-Connecting-IP"); cf != "" && isValidIP(cf) {
		return cf
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" && isValidIP(realIP) {
		return realIP
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && isValidIP(ip) {
		return ip
	}
	return ""
}

func isValidIP(ip string) bool {
	return net.ParseIP(ip) != nil
}
