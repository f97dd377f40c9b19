package engine

import (
	"os"
	"syscall"
)

// sysInode extracts the platform inode number from a FileInfo when the
// underlying syscall stat structure exposes one.
func sysInode(info os.FileInfo) (uint64, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return stat.Ino, true
}
