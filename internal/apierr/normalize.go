package apierr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"syscall"
	"time"
)

// Normalize converts a transport failure (no response received) into an
// *Error. The first matching rule wins: timeout, then connectivity, then a
// generic network error. An err that is already an *Error is returned as-is.
func Normalize(err error, timeout time.Duration) *Error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	case isTimeout(err):
		return &Error{
			Kind:    KindTimeout,
			Message: fmt.Sprintf("Request timed out after %dms", timeout.Milliseconds()),
			cause:   err,
		}
	case isConnectivity(err):
		return &Error{
			Kind:    KindConnectivity,
			Message: MsgUnreachable,
			cause:   err,
		}
	default:
		return &Error{
			Kind:    KindNetwork,
			Message: "Network error: " + innermost(err).Error(),
			cause:   err,
		}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func isConnectivity(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	for _, errno := range []syscall.Errno{
		syscall.ECONNREFUSED,
		syscall.ECONNRESET,
		syscall.EHOSTUNREACH,
		syscall.ENETUNREACH,
	} {
		if errors.Is(err, errno) {
			return true
		}
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}

// innermost strips *url.Error wrapping so the message does not repeat the
// request method and URL.
func innermost(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
