package proclock

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"greenlight/internal/services"
)

// Guard holds an acquired per-production lease until released.
type Guard struct {
	lock *flock.Flock
}

// Acquire takes the lease for a production without blocking. A held lease
// surfaces as a retryable conflict: at most one gate run or transition may be
// in flight per production.
func Acquire(dir, briefID string) (*Guard, error) {
	briefID = strings.TrimSpace(briefID)
	if briefID == "" {
		return nil, services.Wrap(services.ErrValidation, "proclock", "acquire", "brief id is required", nil)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure lock directory: %w", err)
	}

	lock := flock.New(filepath.Join(dir, sanitize(briefID)+".lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire production lease: %w", err)
	}
	if !locked {
		return nil, services.Wrap(services.ErrConflict, "proclock", "acquire", fmt.Sprintf("gate run already in flight for %s", briefID), nil)
	}
	return &Guard{lock: lock}, nil
}

// Release frees the lease. Safe to call on a nil guard.
func (g *Guard) Release() error {
	if g == nil || g.lock == nil {
		return nil
	}
	return g.lock.Unlock()
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
