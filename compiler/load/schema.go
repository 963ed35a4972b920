// Package load defines the declaration structures emitted by the schema
// parser and consumed by the compiler/gen package. A File is one compiled
// interface-description unit: its package path, messages, enums, services
// and the optional per-file metadata annotation. The structures here are
// plain data and perform no resolution on their own.
package load

import (
	"encoding/json"
	"fmt"
	"slices"
)

// File represents one declaration file that was compiled from an
// interface-description schema. Only files targeted for generation are
// loaded, not their transitive imports.
type File struct {
	Name     string     `json:"name,omitempty"`
	Package  string     `json:"package,omitempty"`
	Messages []*Message `json:"messages,omitempty"`
	Enums    []*Enum    `json:"enums,omitempty"`
	Services []*Service `json:"services,omitempty"`
	Metadata *Metadata  `json:"metadata,omitempty"`
}

// Metadata is the optional per-file annotation carrying an explicit,
// human-assigned product identity. It is distinct from the structural
// package path and overrides it field-by-field where non-empty.
type Metadata struct {
	PackageName      string   `json:"package_name,omitempty"`
	PackageNamespace []string `json:"package_namespace,omitempty"`
	ProductName      string   `json:"product_name,omitempty"`
	ProductURL       string   `json:"product_url,omitempty"`
}

// IsZero reports whether every metadata field is empty.
func (m *Metadata) IsZero() bool {
	if m == nil {
		return true
	}
	return m.PackageName == "" && len(m.PackageNamespace) == 0 &&
		m.ProductName == "" && m.ProductURL == ""
}

// Equal reports whether the two metadata records carry the same values.
func (m *Metadata) Equal(o *Metadata) bool {
	if m == nil || o == nil {
		return m == o
	}
	return m.PackageName == o.PackageName &&
		slices.Equal(m.PackageNamespace, o.PackageNamespace) &&
		m.ProductName == o.ProductName &&
		m.ProductURL == o.ProductURL
}

// Message represents a message declaration.
type Message struct {
	Name   string   `json:"name,omitempty"`
	Doc    string   `json:"doc,omitempty"`
	Fields []*Field `json:"fields,omitempty"`
}

// Field represents a field declaration inside a message. TypeName holds
// either a scalar kind or the qualified path of a message/enum type; the
// parser resolves cross-file references before emitting it.
type Field struct {
	Name     string `json:"name,omitempty"`
	Number   int    `json:"number,omitempty"`
	TypeName string `json:"type,omitempty"`
	Repeated bool   `json:"repeated,omitempty"`
	Optional bool   `json:"optional,omitempty"`
	Doc      string `json:"doc,omitempty"`
}

// Enum represents an enum declaration.
type Enum struct {
	Name   string       `json:"name,omitempty"`
	Doc    string       `json:"doc,omitempty"`
	Values []*EnumValue `json:"values,omitempty"`
}

// EnumValue represents a single value of an enum declaration.
type EnumValue struct {
	Name   string `json:"name,omitempty"`
	Number int    `json:"number,omitempty"`
	Doc    string `json:"doc,omitempty"`
}

// Service represents a service declaration together with its
// service-level annotations.
type Service struct {
	Name        string    `json:"name,omitempty"`
	Doc         string    `json:"doc,omitempty"`
	DefaultHost string    `json:"default_host,omitempty"`
	Scopes      []string  `json:"oauth_scopes,omitempty"`
	Methods     []*Method `json:"methods,omitempty"`
}

// Method represents an RPC declaration. RequestType and ResponseType hold
// qualified message paths that the graph builder resolves against the
// message index.
type Method struct {
	Name         string         `json:"name,omitempty"`
	Doc          string         `json:"doc,omitempty"`
	RequestType  string         `json:"request_type,omitempty"`
	ResponseType string         `json:"response_type,omitempty"`
	HTTP         *HTTPRule      `json:"http,omitempty"`
	Signatures   [][]string     `json:"signatures,omitempty"`
	Operation    *OperationInfo `json:"operation,omitempty"`
}

// HTTPRule is the HTTP binding annotation of a method. At most one of the
// verb fields is set.
type HTTPRule struct {
	Get    string `json:"get,omitempty"`
	Post   string `json:"post,omitempty"`
	Put    string `json:"put,omitempty"`
	Delete string `json:"delete,omitempty"`
	Patch  string `json:"patch,omitempty"`
	Body   string `json:"body,omitempty"`
}

// OperationInfo is the long-running-operation annotation of a method.
// Both fields hold qualified message paths.
type OperationInfo struct {
	PayloadType  string `json:"payload_type,omitempty"`
	MetadataType string `json:"metadata_type,omitempty"`
}

// MarshalFile encodes a declaration file into JSON that can be decoded
// back into the File objects declared above.
func MarshalFile(f *File) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("load: cannot marshal a nil file")
	}
	return json.Marshal(f)
}

// UnmarshalFile decodes the given buffer to a loaded declaration file.
func UnmarshalFile(buf []byte) (*File, error) {
	f := &File{}
	if err := json.Unmarshal(buf, f); err != nil {
		return nil, err
	}
	if f.Package == "" {
		return nil, fmt.Errorf("load: file %q has no package", f.Name)
	}
	return f, nil
}
