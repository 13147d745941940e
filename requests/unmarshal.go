package requests

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/vstore"
)

// NodeDefs holds the decoded entries of a node definition file, split by
// variant the way the loaders consume them (folders before files)
type NodeDefs struct {
	Folders []*vstore.FolderCreateRequest
	Files   []*vstore.FileCreateRequest
}

// GetNodeType extracts the node type from JSON without full unmarshaling
func GetNodeType(data []byte) (vstore.NodeCreateRequestType, error) {
	var meta struct {
		Type vstore.NodeCreateRequestType `json:"type"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", err
	}
	return meta.Type, nil
}

// UnmarshalFileRequest handles file-specific unmarshaling with content
func UnmarshalFileRequest(data []byte) (*vstore.FileCreateRequest, error) {
	var dto FileRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}
	return convertFileDTO(dto), nil
}

// UnmarshalFolderRequest handles explicit folder unmarshaling (no content)
func UnmarshalFolderRequest(data []byte) (*vstore.FolderCreateRequest, error) {
	var dto FolderRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}
	return convertFolderDTO(dto), nil
}

// DecodeNodeFile reads a whole node definition file. The format is picked
// by extension: .json expects a JSON array of request objects, .yaml/.yml a
// YAML sequence. Entries with an unknown type fail the decode.
func DecodeNodeFile(path string) (*NodeDefs, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".json":
		return decodeJSONDefs(data)
	case ".yaml", ".yml":
		return decodeYAMLDefs(data)
	default:
		return nil, fmt.Errorf("unknown node definition file extension: %s", path)
	}
}

func decodeJSONDefs(data []byte) (*NodeDefs, error) {
	var rawNodes []json.RawMessage
	if err := json.Unmarshal(data, &rawNodes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal node definitions: %w", err)
	}

	defs := &NodeDefs{}
	for i, raw := range rawNodes {
		nodeType, err := GetNodeType(raw)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		switch nodeType {
		case vstore.FileNodeType:
			req, err := UnmarshalFileRequest(raw)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			defs.Files = append(defs.Files, req)
		case vstore.FolderNodeType:
			req, err := UnmarshalFolderRequest(raw)
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			defs.Folders = append(defs.Folders, req)
		default:
			return nil, fmt.Errorf("entry %d: unknown node type %q", i, nodeType)
		}
	}

	return defs, nil
}

func decodeYAMLDefs(data []byte) (*NodeDefs, error) {
	var rawNodes []yaml.Node
	if err := yaml.Unmarshal(data, &rawNodes); err != nil {
		return nil, fmt.Errorf("failed to unmarshal node definitions: %w", err)
	}

	defs := &NodeDefs{}
	for i, raw := range rawNodes {
		var meta struct {
			Type vstore.NodeCreateRequestType `yaml:"type"`
		}
		if err := raw.Decode(&meta); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}

		switch meta.Type {
		case vstore.FileNodeType:
			var dto FileRequestDTO
			if err := raw.Decode(&dto); err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			defs.Files = append(defs.Files, convertFileDTO(dto))
		case vstore.FolderNodeType:
			var dto FolderRequestDTO
			if err := raw.Decode(&dto); err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			defs.Folders = append(defs.Folders, convertFolderDTO(dto))
		default:
			return nil, fmt.Errorf("entry %d: unknown node type %q", i, meta.Type)
		}
	}

	return defs, nil
}

// Conversion logic with defaults applied in the unmarshaling layer

func convertNodeDTO(dto NodeRequestDTO) vstore.NodeCreateRequest {
	return vstore.NodeCreateRequest{
		Path: dto.Path,
		Type: dto.Type,
		UUID: valueOrDefault(dto.UUID, uuid.New().String()),
	}
}

func convertFileDTO(dto FileRequestDTO) *vstore.FileCreateRequest {
	return &vstore.FileCreateRequest{
		NodeCreateRequest: convertNodeDTO(dto.NodeRequestDTO),
		Content:           valueOrDefault(dto.Content, ""),
	}
}

func convertFolderDTO(dto FolderRequestDTO) *vstore.FolderCreateRequest {
	return &vstore.FolderCreateRequest{
		NodeCreateRequest: convertNodeDTO(dto.NodeRequestDTO),
		Policy:            valueOrDefault(dto.Policy, ""),
	}
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
