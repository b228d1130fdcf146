package errors

import "errors"

// ErrOptimisticLock the record was modified by another operation since it was read
var ErrOptimisticLock = errors.New("record was modified by another operation, reload and retry")

// ErrLockNotObtained a named lock is held elsewhere and could not be acquired in time
var ErrLockNotObtained = errors.New("lock is held by another operation")
