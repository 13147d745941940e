package requests

import (
	"github.com/brettbedarf/vstore"
)

// NodeRequestDTO is the JSON/YAML representation of [vstore.NodeCreateRequest]
type NodeRequestDTO struct {
	Path string                       `json:"path" yaml:"path"`
	Type vstore.NodeCreateRequestType `json:"type" yaml:"type"`
	UUID *string                      `json:"uuid,omitempty" yaml:"uuid,omitempty"` // Optional UUID to enable linking at request time
}

// FileRequestDTO is the JSON/YAML representation of [vstore.FileCreateRequest]
type FileRequestDTO struct {
	NodeRequestDTO `yaml:",inline"`
	Content *string `json:"content,omitempty" yaml:"content,omitempty"` // File payload (Default empty)
}

// FolderRequestDTO is the JSON/YAML representation of [vstore.FolderCreateRequest]
type FolderRequestDTO struct {
	NodeRequestDTO `yaml:",inline"`
	// Policy names the folder's collision policy ("reject" or
	// "overwrite"); unset folders use the configured default
	Policy *string `json:"policy,omitempty" yaml:"policy,omitempty"`
}
