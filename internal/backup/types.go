package backup

import "time"

// Config controls periodic database snapshots.
type Config struct {
	Enabled  bool
	Interval time.Duration
	Dir      string
	KeepLast int
}

// Snapshotter is the store contract the manager needs.
type Snapshotter interface {
	DBPath() string
	SnapshotTo(dstPath string) error
}
