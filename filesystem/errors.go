package filesystem

import "errors"

// Error kinds reported by the store. All of them are recoverable and
// surface synchronously at the failing call; an operation that fails with
// any of these leaves the tree unchanged.
//
// Match with errors.Is; values returned from the store wrap these with the
// offending name or path.
var (
	// ErrNotFound means a named path segment or child does not exist
	ErrNotFound = errors.New("not found")

	// ErrWrongType means the node exists but is not the variant the
	// operation requires (file vs folder)
	ErrWrongType = errors.New("wrong node type")

	// ErrNoParent means ".." was resolved against the root folder
	ErrNoParent = errors.New("root has no parent")

	// ErrNameCollision means an insert hit an existing name while the
	// target folder's policy is RejectWithError
	ErrNameCollision = errors.New("name already exists")

	// ErrTypeMismatch means an Overwrite insert hit an existing name of
	// the other variant; overwrite never changes a name's variant
	ErrTypeMismatch = errors.New("existing node has different type")
)
