//go:build linux

package watcher

import (
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Magic numbers from statfs(2).
const (
	nfsSuperMagic  = 0x6969
	smbSuperMagic  = 0x517B
	cifsMagic      = 0xFF534D42
	smb2Magic      = 0xFE534D42
	fuseSuperMagic = 0x65735546
)

// DetectFilesystemType classifies the filesystem holding path. The parent
// directory is inspected so that a not-yet-created file still resolves.
func DetectFilesystemType(path string) FilesystemType {
	var st unix.Statfs_t
	if err := unix.Statfs(filepath.Dir(path), &st); err != nil {
		return FSTypeUnknown
	}
	switch uint32(st.Type) {
	case nfsSuperMagic:
		return FSTypeNFS
	case smbSuperMagic, cifsMagic, smb2Magic:
		return FSTypeSMB
	case fuseSuperMagic:
		return FSTypeFUSE
	default:
		return FSTypeLocal
	}
}
