package vstore

// NodeCreateRequestType discriminates node definition entries
type NodeCreateRequestType string

const (
	FileNodeType   NodeCreateRequestType = "file"
	FolderNodeType NodeCreateRequestType = "folder"
)

// NodeCreateRequest represents user input for node creation. It should be
// passed from entrypoints (i.e. cli, definition file loaders) to the
// filesystem Add* methods
type NodeCreateRequest struct {
	// Path is the full target path of the node; missing ancestor folders
	// are created by the loader
	Path string
	Type NodeCreateRequestType
	// UUID to enable linking at request time; assigned when not supplied
	UUID string
}

// NodeRequestor is implemented by all node request types
type NodeRequestor interface {
	GetType() NodeCreateRequestType
	GetPath() string
}

func (r *NodeCreateRequest) GetType() NodeCreateRequestType {
	return r.Type
}

func (r *NodeCreateRequest) GetPath() string {
	return r.Path
}

type FileCreateRequest struct {
	NodeCreateRequest
	Content string
}

type FolderCreateRequest struct {
	NodeCreateRequest
	// Policy is the collision policy name for the new folder
	// ("reject" or "overwrite"); empty uses the configured default
	Policy string
}
