// Package vstore holds the public request types shared between the
// entrypoints (cli, definition-file loaders) and the filesystem core.
//
// The store itself lives in the filesystem package: an in-process tree of
// named nodes where files hold string content and folders hold uniquely
// named children. Nothing is persisted; all state is resident in memory for
// the lifetime of the process.
package vstore
