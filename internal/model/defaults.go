package model

import (
	"errors"
	"time"
)

// Shared defaults used by both the server and CLI binaries.
const (
	DefaultLoadAttempts     = 10
	DefaultLoadDelay        = 500 * time.Millisecond
	DefaultAutoSaveInterval = 30 * time.Second
	DefaultNotificationTTL  = 5 * time.Second
	DefaultSidebarVariant   = "demo"
)

// ErrNotReady is returned by a RecordSource that has no data yet.
var ErrNotReady = errors.New("applications not available yet")
