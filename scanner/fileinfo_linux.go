//go:build linux

package scanner

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// OSMetadata reads metadata with statx so the birth time is available on
// filesystems that record it. Files without a birth time fall back to mtime.
type OSMetadata struct{}

// Stat implements MetadataReader
func (OSMetadata) Stat(path string) (FileMetadata, error) {
	var stx unix.Statx_t
	mask := unix.STATX_SIZE | unix.STATX_BTIME | unix.STATX_MTIME
	if err := unix.Statx(unix.AT_FDCWD, path, unix.AT_STATX_SYNC_AS_STAT, mask, &stx); err != nil {
		return FileMetadata{}, fmt.Errorf("cannot stat file %s: %w", path, err)
	}

	ts := stx.Mtime
	if stx.Mask&unix.STATX_BTIME != 0 {
		ts = stx.Btime
	}
	return FileMetadata{
		Size:      int64(stx.Size),
		CreatedAt: time.Unix(ts.Sec, int64(ts.Nsec)),
	}, nil
}
