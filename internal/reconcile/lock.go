package reconcile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"talkmatch/internal/services"
)

// acquireLock takes the run lock without blocking. The returned func
// releases it.
func acquireLock(path string) (func(), error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, services.Wrap(services.ErrStorage, "reconcile", "lock", "create lock directory", err)
	}
	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrStorage, "reconcile", "lock", path, err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrBusy, "reconcile", "lock", "another reconciliation run holds "+path, nil)
	}
	return func() { _ = lock.Unlock() }, nil
}
