//go:build !darwin && !linux

package storage

// filesystemType reports an unknown local filesystem where statfs is unavailable.
func filesystemType(string) (string, error) {
	return "unknown", nil
}
