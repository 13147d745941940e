package requests

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brettbedarf/vstore"
)

func writeDefFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestGetNodeType(t *testing.T) {
	typ, err := GetNodeType([]byte(`{"type":"file","path":"/a"}`))
	require.NoError(t, err)
	assert.Equal(t, vstore.FileNodeType, typ)

	typ, err = GetNodeType([]byte(`{"type":"folder","path":"/a"}`))
	require.NoError(t, err)
	assert.Equal(t, vstore.FolderNodeType, typ)

	_, err = GetNodeType([]byte(`not json`))
	assert.Error(t, err)
}

func TestUnmarshalFileRequest(t *testing.T) {
	req, err := UnmarshalFileRequest([]byte(`{"type":"file","path":"/docs/readme","content":"hello"}`))
	require.NoError(t, err)

	assert.Equal(t, "/docs/readme", req.Path)
	assert.Equal(t, vstore.FileNodeType, req.Type)
	assert.Equal(t, "hello", req.Content)
	// Missing UUIDs are assigned at the decode layer
	assert.NotEmpty(t, req.UUID)
}

func TestUnmarshalFileRequest_ExplicitUUID(t *testing.T) {
	req, err := UnmarshalFileRequest([]byte(`{"type":"file","path":"/a","uuid":"fixed-id"}`))
	require.NoError(t, err)
	assert.Equal(t, "fixed-id", req.UUID)
	assert.Equal(t, "", req.Content, "missing content defaults to empty")
}

func TestUnmarshalFolderRequest(t *testing.T) {
	req, err := UnmarshalFolderRequest([]byte(`{"type":"folder","path":"/docs","policy":"overwrite"}`))
	require.NoError(t, err)

	assert.Equal(t, "/docs", req.Path)
	assert.Equal(t, "overwrite", req.Policy)
	assert.NotEmpty(t, req.UUID)
}

func TestDecodeNodeFile_JSON(t *testing.T) {
	path := writeDefFile(t, "nodes.json", `[
		{"type": "folder", "path": "/docs", "policy": "overwrite"},
		{"type": "file", "path": "/docs/readme", "content": "hello"},
		{"type": "file", "path": "/notes"}
	]`)

	defs, err := DecodeNodeFile(path)
	require.NoError(t, err)

	require.Len(t, defs.Folders, 1)
	assert.Equal(t, "/docs", defs.Folders[0].Path)
	assert.Equal(t, "overwrite", defs.Folders[0].Policy)

	require.Len(t, defs.Files, 2)
	assert.Equal(t, "hello", defs.Files[0].Content)
	assert.Equal(t, "/notes", defs.Files[1].Path)
}

func TestDecodeNodeFile_YAML(t *testing.T) {
	path := writeDefFile(t, "nodes.yaml", `
- type: folder
  path: /docs
  policy: overwrite
- type: file
  path: /docs/readme
  content: hello
`)

	defs, err := DecodeNodeFile(path)
	require.NoError(t, err)

	require.Len(t, defs.Folders, 1)
	assert.Equal(t, "/docs", defs.Folders[0].Path)
	assert.Equal(t, "overwrite", defs.Folders[0].Policy)

	require.Len(t, defs.Files, 1)
	assert.Equal(t, "/docs/readme", defs.Files[0].Path)
	assert.Equal(t, "hello", defs.Files[0].Content)
	assert.NotEmpty(t, defs.Files[0].UUID)
}

func TestDecodeNodeFile_UnknownType(t *testing.T) {
	path := writeDefFile(t, "nodes.json", `[{"type": "symlink", "path": "/a"}]`)

	_, err := DecodeNodeFile(path)
	assert.ErrorContains(t, err, "unknown node type")
}

func TestDecodeNodeFile_UnknownExtension(t *testing.T) {
	path := writeDefFile(t, "nodes.toml", `whatever`)

	_, err := DecodeNodeFile(path)
	assert.ErrorContains(t, err, "unknown node definition file extension")
}

func TestDecodeNodeFile_MissingFile(t *testing.T) {
	_, err := DecodeNodeFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
