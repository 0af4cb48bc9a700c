package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// fsTypeFunc reports the filesystem name for an existing path.
type fsTypeFunc func(path string) (string, error)

// remoteFilesystems lists filesystems on which SQLite locking is unreliable.
var remoteFilesystems = map[string]bool{
	"afpfs":  true,
	"cifs":   true,
	"nfs":    true,
	"nfs4":   true,
	"smbfs":  true,
	"smb2":   true,
	"webdav": true,
}

// ErrRemoteFilesystem is returned when the local database would live on a network share.
var ErrRemoteFilesystem = errors.New("sqlite database on network filesystem")

func checkLocalFilesystem(path string) error {
	return checkLocalFilesystemWith(path, filesystemType)
}

func checkLocalFilesystemWith(path string, fsType fsTypeFunc) error {
	if path == "" {
		return fmt.Errorf("sqlite path is empty")
	}

	existing, err := closestExisting(path)
	if err != nil {
		return fmt.Errorf("resolve %q: %w", path, err)
	}

	name, err := fsType(existing)
	if err != nil {
		return fmt.Errorf("detect filesystem for %q: %w", existing, err)
	}
	if isRemote(name) {
		return fmt.Errorf("%w: %q is on %s; set store.local.path to a local disk", ErrRemoteFilesystem, path, name)
	}
	return nil
}

// closestExisting walks up from path until it finds something that exists.
func closestExisting(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}
	for dir := abs; ; {
		_, err := os.Stat(dir)
		switch {
		case err == nil:
			return dir, nil
		case !errors.Is(err, os.ErrNotExist):
			return "", fmt.Errorf("stat %q: %w", dir, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no existing parent for %q", abs)
		}
		dir = parent
	}
}

func isRemote(fsName string) bool {
	return remoteFilesystems[strings.ToLower(strings.TrimSpace(fsName))]
}
