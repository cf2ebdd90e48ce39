package client

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// tapFlushInterval bounds how long a tap capture sink may buffer before
// flushing to disk.
const tapFlushInterval = 2 * time.Second

// tapPrefix returns the raw CCN_TAP value (a path prefix, not a full
// file name) and whether it is set.
func tapPrefix() (string, bool) {
	v, ok := os.LookupEnv(envTap)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// osGetpid is a thin indirection over os.Getpid kept local to this
// package so LogError's call sites read the same way ccn_perror's
// getpid() call does.
func osGetpid() int { return os.Getpid() }

const (
	// envLocalPort names the environment variable that selects a
	// non-default local socket suffix, same role as CCN_LOCAL_PORT_ENVNAME.
	envLocalPort = "CCN_LOCAL_PORT"
	// defaultLocalSockname is the base Unix socket path a local daemon
	// listens on absent CCN_LOCAL_PORT, matching CCN_DEFAULT_LOCAL_SOCKNAME.
	defaultLocalSockname = "/tmp/.ccnd.sock"
	envTap               = "CCN_TAP"
	envDebug             = "CCN_DEBUG"
)

// ResolveAddress returns the Unix socket path a Handle should dial when
// name is empty, following the CCN_LOCAL_PORT rule verbatim: if
// CCN_LOCAL_PORT is set to a suffix of at most 10 characters, the
// socket path gets that suffix appended; otherwise the bare default
// path is used. A non-empty name is returned unchanged.
func ResolveAddress(name string) string {
	if name != "" {
		return name
	}
	suffix, ok := os.LookupEnv(envLocalPort)
	if !ok || suffix == "" || len(suffix) > 10 {
		return defaultLocalSockname
	}
	return fmt.Sprintf("%s.%s", defaultLocalSockname, suffix)
}

// TapPath returns the CCN_TAP capture file name to open for pid at now,
// and whether CCN_TAP is set at all.
func TapPath(pid int, now time.Time) (string, bool) {
	prefix, ok := os.LookupEnv(envTap)
	if !ok || prefix == "" {
		return "", false
	}
	name := fmt.Sprintf("%s-%d-%d-%d", prefix, pid, now.Unix(), now.Nanosecond()/1000)
	if len(name) >= 255 {
		return "", false
	}
	return name, true
}

// DebugEnabled reports whether CCN_DEBUG is set to a non-empty value,
// the verbose_error flag from ccn_create.
func DebugEnabled() bool {
	v, ok := os.LookupEnv(envDebug)
	return ok && v != ""
}

// debugLevel interprets CCN_DEBUG as an optional numeric verbosity,
// falling back to 1 ("on") for any non-numeric non-empty value.
func debugLevel() int {
	v, ok := os.LookupEnv(envDebug)
	if !ok || v == "" {
		return 0
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return 1
}
