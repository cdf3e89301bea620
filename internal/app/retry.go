package app

import "time"

const (
	retryAttempts = 3
	retryBackoff  = 50 * time.Millisecond
)

// withRetry re-runs fn on transient store errors (SQLite reports lock
// contention as plain errors). Domain rejections are not retried.
func withRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt < retryAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if IsNotFound(err) || IsInvariant(err) {
			return err
		}
		time.Sleep(retryBackoff)
	}
	return err
}
