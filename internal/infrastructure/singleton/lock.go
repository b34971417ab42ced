package singleton

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strings"
	"syscall"
	"time"
)

// LivenessTimeout timeout of the probe against a running instance
const LivenessTimeout = 2 * time.Second

// ErrPortBusy the port is held by something that is not a healthy instance
var ErrPortBusy = errors.New("port in use by an unresponsive process")

// CheckAndLock reserves port before the server opens its database
// A nil listener with a nil error means another instance already serves the
// port and the caller should exit.
func CheckAndLock(port string) (net.Listener, error) {
	listener, err := net.Listen("tcp", port)
	if err == nil {
		return listener, nil
	}

	if isAddrInUse(err) {
		if isInstanceRunning(port) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %s", ErrPortBusy, port)
	}

	return nil, fmt.Errorf("failed to listen on %s: %w", port, err)
}

// isAddrInUse EADDRINUSE on Unix, WSAEADDRINUSE on Windows
func isAddrInUse(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, syscall.EADDRINUSE) {
		return true
	}

	var sysErr *os.SyscallError
	if errors.As(err, &sysErr) {
		if errno, ok := sysErr.Err.(syscall.Errno); ok && errno == 10048 {
			return true
		}
	}

	msg := err.Error()
	return strings.Contains(msg, "address already in use") ||
		strings.Contains(msg, "Only one usage of each socket address")
}

// isInstanceRunning probes the root route; /health may report a degraded index
func isInstanceRunning(port string) bool {
	client := &http.Client{Timeout: LivenessTimeout}

	host := port
	if strings.HasPrefix(port, ":") {
		host = "localhost" + port
	}
	resp, err := client.Get(fmt.Sprintf("http://%s/", host))
	if err != nil {
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	return resp.StatusCode == http.StatusOK
}
