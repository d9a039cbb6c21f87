package dict

import "errors"

// Sentinel errors for the dictionary's recoverable error taxonomy
// (spec.md §7). OutOfMemory and BadIterator are programmer errors and
// are raised as panics, not returned, matching the original's abort
// semantics.
var (
	// ErrKeyExists is returned by Add when the key is already present.
	ErrKeyExists = errors.New("dict: key already exists")
	// ErrKeyNotFound is returned by Delete when the key is absent
	// (Unlink returns a nil entry instead).
	ErrKeyNotFound = errors.New("dict: key not found")
	// ErrOutOfPolicy is returned by TryExpand when type.ExpandAllowed
	// denies growth.
	ErrOutOfPolicy = errors.New("dict: expand denied by policy")
)

// ErrBadIterator is the panic value for an unsafe iterator released
// after its fingerprint no longer matches the dictionary's state —
// evidence of mutation during unsafe iteration. It is fatal by design
// (spec.md §7): callers must use a safe iterator if they need to mutate
// while iterating.
var ErrBadIterator = errors.New("dict: unsafe iterator fingerprint mismatch (mutated during iteration)")
