// Copyright (c) 2025 Solvex
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly error handling for HTTP requests.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// Category is the user-facing class of a network failure.
type Category int

const (
	Generic Category = iota
	Timeout
	DNS
	ConnectionRefused
	TLS
	Server
)

// Classify inspects err and returns the matching category.
func Classify(err error) Category {
	if err == nil {
		return Generic
	}
	switch {
	case isTimeoutError(err):
		return Timeout
	case isDNSError(err):
		return DNS
	case isConnectionRefusedError(err):
		return ConnectionRefused
	case isSSLError(err):
		return TLS
	case isServerError(err.Error()):
		return Server
	default:
		return Generic
	}
}

// FormatNetworkError converts technical HTTP/network errors into user-friendly messages.
// It prints troubleshooting hints for host while context describes the action
// ("logging in"), and returns the error wrapped for the caller.
func FormatNetworkError(err error, context, host string) error {
	if err == nil {
		return nil
	}
	pterm.Println(Describe(err, context, host))
	return fmt.Errorf("network error: %w", err)
}

// Describe renders the hint text for err without printing it.
func Describe(err error, context, host string) string {
	var b strings.Builder
	switch Classify(err) {
	case Timeout:
		fmt.Fprintf(&b, "⏱️  Connection timeout while %s\n\n", context)
		b.WriteString("The server took too long to respond. This could mean:\n")
		b.WriteString("  • Slow internet connection\n")
		b.WriteString("  • Server is under heavy load\n")
	case DNS:
		fmt.Fprintf(&b, "🌐 Cannot resolve server address while %s\n\n", context)
		fmt.Fprintf(&b, "Unable to look up %s. Check api_url and your DNS settings.\n", host)
	case ConnectionRefused:
		fmt.Fprintf(&b, "🚫 Connection refused while %s\n\n", context)
		fmt.Fprintf(&b, "Nothing is accepting connections at %s. Is the RagFlow backend running?\n", host)
	case TLS:
		fmt.Fprintf(&b, "🔒 Secure connection failed while %s\n\n", context)
		b.WriteString("Check the server certificate, proxy settings and your system clock.\n")
	case Server:
		fmt.Fprintf(&b, "⚠️  Server error while %s\n\n", context)
		b.WriteString("The RagFlow backend reported an internal error. Please try again later.\n")
	default:
		fmt.Fprintf(&b, "❌ Cannot reach %s while %s\n\n", host, context)
		b.WriteString("Check your connection and the configured api_url.\n")
	}
	return b.String()
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded")
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate")
}

// isServerError checks if the error indicates a server-side problem (5xx errors).
func isServerError(errStr string) bool {
	for _, code := range []string{" 500 ", " 502 ", " 503 ", " 504 "} {
		if strings.Contains(errStr+" ", code) {
			return true
		}
	}
	return false
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}
