package watcher

// FilesystemType is a coarse classification of the filesystem holding the
// watched file. Network filesystems often drop inotify events, so they are
// polled instead.
type FilesystemType int

const (
	FSTypeUnknown FilesystemType = iota
	FSTypeLocal
	FSTypeNFS
	FSTypeSMB
	FSTypeFUSE
)

func (t FilesystemType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeNFS:
		return "nfs"
	case FSTypeSMB:
		return "smb"
	case FSTypeFUSE:
		return "fuse"
	default:
		return "unknown"
	}
}

func isRemoteFilesystem(t FilesystemType) bool {
	switch t {
	case FSTypeNFS, FSTypeSMB, FSTypeFUSE:
		return true
	default:
		return false
	}
}
