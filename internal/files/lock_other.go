//go:build !unix

package files

import "os"

// Advisory locking is only implemented for unix; elsewhere the lock file is
// created but provides no exclusion.
func lockFile(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDWR|os.O_CREATE, filePermissions)
}

func unlockFile(file *os.File) error {
	return file.Close()
}
