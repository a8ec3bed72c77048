// Package httperrors provides user-friendly presentation of HTTP and network
// failures. It detects common error classes (timeout, DNS, connection
// refused, TLS, backend 5xx) and prints actionable troubleshooting hints
// instead of raw transport errors.
package httperrors

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// FormatNetworkError presents err to the user in a friendly form and returns
// a wrapped error for logging. The context string describes what the CLI was
// doing, e.g. "logging in".
func FormatNetworkError(err error, context string) error {
	if err == nil {
		return nil
	}

	switch {
	case isTimeout(err):
		pterm.Printf("⏱️  Connection timeout while %s\n", context)
		pterm.Println()
		pterm.Println("The server took too long to respond. Please try again in a few moments.")
	case isDNS(err):
		pterm.Printf("🌐 Cannot resolve server address while %s\n", context)
		pterm.Println()
		pterm.Println("Please check your internet connection and DNS settings.")
	case isConnectionRefused(err):
		pterm.Printf("🚫 Connection refused while %s\n", context)
		pterm.Println()
		pterm.Println("The server is not accepting connections. Please try again later.")
	case isTLS(err):
		pterm.Printf("🔒 Secure connection failed while %s\n", context)
		pterm.Println()
		pterm.Println("Check your system date/time and any network proxy settings.")
	case isServer(err):
		pterm.Printf("⚠️  Server error while %s\n", context)
		pterm.Println()
		pterm.Println("This is not a problem with your setup. Please try again in a few minutes.")
	default:
		pterm.Printf("❌ Cannot reach the BeppoFit service while %s\n", context)
		pterm.Println()
		pterm.Println("Please check your internet connection and firewall settings.")
	}
	pterm.Println()

	return fmt.Errorf("network error: %w", err)
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") || strings.Contains(s, "deadline exceeded")
}

func isDNS(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

func isConnectionRefused(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

func isTLS(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "tls") ||
		strings.Contains(s, "certificate") ||
		strings.Contains(s, "handshake")
}

func isServer(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "status 5") ||
		strings.Contains(s, "internal server error") ||
		strings.Contains(s, "bad gateway") ||
		strings.Contains(s, "service unavailable")
}
