// Package lock serialises invitation writes per workspace. Local locks
// cover one process; Redis locks cover every replica sharing the Redis.
package lock

import (
	"context"
	"errors"
)

// ErrNotAcquired is returned when ctx ends before the lock is taken.
var ErrNotAcquired = errors.New("lock: not acquired")

// Locker acquires an exclusive lock on key. The returned func releases it
// and is safe to call more than once.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// WorkspaceKey is the lock key of a workspace's seat count.
func WorkspaceKey(workspaceID string) string {
	return "crm:lock:workspace:" + workspaceID
}
