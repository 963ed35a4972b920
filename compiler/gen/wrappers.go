package gen

import (
	"regexp"
	"slices"
	"strings"

	"github.com/descware/apigen/compiler/load"
)

// PlaceholderHost is returned by Service.Host when the default-host
// annotation is unset. It is deliberately not a valid hostname so that
// renderers can detect and flag it instead of silently emitting an
// empty string.
const PlaceholderHost = "<<< SERVICE ADDRESS >>>"

// fieldHeaderRegexp extracts the {identifier}= variables of a GET path
// template, e.g. "parent" out of "/v1/{parent=projects/*}/items".
var fieldHeaderRegexp = regexp.MustCompile(`\{([a-z][\w.]*)=`)

// The following types wrap the raw declarations loaded from the schema
// parser and carry the derived properties used by the renderer. Each
// wrapper embeds its declaration, so every raw attribute stays reachable
// through the entity (the wrapper is a superset view). Wrappers are
// built once per generation pass and never mutated afterwards.
type (
	// Address is the fully-qualified location of a declaration: the
	// dot-split schema package of its defining file plus the
	// generated-code module derived from that file.
	Address struct {
		// Package holds the schema package segments of the defining file.
		Package []string
		// Module is the generated-code module name of the defining file.
		Module string
	}

	// Meta carries the parser-resolved documentation and addressing
	// shared by every entity kind.
	Meta struct {
		// Doc is the leading documentation of the declaration.
		Doc string
		// Address locates the declaration in the schema.
		Address Address
	}

	// Field wraps a field declaration. It has no children.
	Field struct {
		*load.Field
		Meta Meta
	}

	// EnumValue wraps a single enum-value declaration.
	EnumValue struct {
		*load.EnumValue
		Meta Meta
	}

	// EnumType wraps an enum declaration and owns its values in
	// declaration order.
	EnumType struct {
		*load.Enum
		Meta Meta
		// Values holds the wrapped values in declaration order.
		Values []*EnumValue
		values map[string]*EnumValue
	}

	// MessageType wraps a message declaration and owns its fields in
	// declaration order. A message is defined once and the same
	// *MessageType is shared by every method that references it.
	MessageType struct {
		*load.Message
		Meta Meta
		// Fields holds the wrapped fields in declaration order.
		Fields []*Field
		fields map[string]*Field
		cfg    *Config
	}

	// Method wraps an RPC declaration together with its resolved
	// request/response types and, for long-running methods, the
	// operation payload and metadata types.
	Method struct {
		*load.Method
		Meta Meta
		// Request and Response reference the shared message entities.
		Request  *MessageType
		Response *MessageType
		// LROPayload and LROMetadata are set only for methods carrying
		// a long-running-operation annotation.
		LROPayload  *MessageType
		LROMetadata *MessageType
	}

	// Service wraps a service declaration and owns its methods in
	// declaration order.
	Service struct {
		*load.Service
		Meta Meta
		// Methods holds the wrapped methods in declaration order.
		Methods []*Method
		methods map[string]*Method
	}

	// ModuleRef identifies a generated-code module by the schema package
	// that declares it and the module name itself.
	ModuleRef struct {
		Package string
		Module  string
	}
)

// String returns the dotted schema package of the address.
func (a Address) String() string {
	return strings.Join(a.Package, ".")
}

// NewField wraps a field declaration.
func NewField(def *load.Field, meta Meta) *Field {
	return &Field{Field: def, Meta: meta}
}

// NewEnumValue wraps an enum-value declaration.
func NewEnumValue(def *load.EnumValue, meta Meta) *EnumValue {
	return &EnumValue{EnumValue: def, Meta: meta}
}

// NewEnumType wraps an enum declaration and its values.
func NewEnumType(def *load.Enum, meta Meta) *EnumType {
	e := &EnumType{
		Enum:   def,
		Meta:   meta,
		Values: make([]*EnumValue, 0, len(def.Values)),
		values: make(map[string]*EnumValue, len(def.Values)),
	}
	for _, v := range def.Values {
		ev := NewEnumValue(v, Meta{Doc: v.Doc, Address: meta.Address})
		e.Values = append(e.Values, ev)
		e.values[ev.Name] = ev
	}
	return e
}

// Value returns the enum value with the given declared name.
func (e *EnumType) Value(name string) (*EnumValue, bool) {
	v, ok := e.values[name]
	return v, ok
}

// QualifiedPath returns the fully qualified schema-level path of the
// enum, used for cross-referencing and documentation.
func (e *EnumType) QualifiedPath() string {
	return qualifiedPath(e.Meta.Address, e.Name)
}

// NewMessageType wraps a message declaration and its fields.
func NewMessageType(c *Config, def *load.Message, meta Meta) *MessageType {
	m := &MessageType{
		Message: def,
		Meta:    meta,
		Fields:  make([]*Field, 0, len(def.Fields)),
		fields:  make(map[string]*Field, len(def.Fields)),
		cfg:     c,
	}
	for _, f := range def.Fields {
		mf := NewField(f, Meta{Doc: f.Doc, Address: meta.Address})
		m.Fields = append(m.Fields, mf)
		m.fields[mf.Name] = mf
	}
	return m
}

// Field returns the field with the given declared name.
func (m *MessageType) Field(name string) (*Field, bool) {
	f, ok := m.fields[name]
	return f, ok
}

// ModuleReference returns the generated-code module name for the file
// defining this message, e.g. "library_pb".
func (m *MessageType) ModuleReference() string {
	suffix := DefaultModuleSuffix
	if m.cfg != nil && m.cfg.ModuleSuffix != "" {
		suffix = m.cfg.ModuleSuffix
	}
	return m.Meta.Address.Module + suffix
}

// QualifiedPath returns the fully qualified schema-level path of the
// message, used for cross-referencing and documentation.
func (m *MessageType) QualifiedPath() string {
	return qualifiedPath(m.Meta.Address, m.Name)
}

func qualifiedPath(addr Address, name string) string {
	if pkg := addr.String(); pkg != "" {
		return pkg + "." + name
	}
	return name
}

// NewMethod wraps an RPC declaration with its resolved message types.
// The lroPayload and lroMetadata arguments are nil for unary methods.
func NewMethod(def *load.Method, meta Meta, request, response, lroPayload, lroMetadata *MessageType) *Method {
	return &Method{
		Method:      def,
		Meta:        meta,
		Request:     request,
		Response:    response,
		LROPayload:  lroPayload,
		LROMetadata: lroMetadata,
	}
}

// FieldHeaders returns the request fields whose values are extracted
// from the URL path template of the method's HTTP GET binding. Only GET
// bindings are inspected; methods without one yield no headers.
func (m *Method) FieldHeaders() []string {
	if m.HTTP == nil || m.HTTP.Get == "" {
		return nil
	}
	matches := fieldHeaderRegexp.FindAllStringSubmatch(m.HTTP.Get, -1)
	if len(matches) == 0 {
		return nil
	}
	headers := make([]string, 0, len(matches))
	for _, match := range matches {
		headers = append(headers, match[1])
	}
	return headers
}

// Signature returns the method-signature annotation: a sequence of
// parameter groupings, nil if the annotation is absent.
func (m *Method) Signature() [][]string {
	return m.Signatures
}

// NewService wraps a service declaration and its methods.
func NewService(def *load.Service, meta Meta, methods []*Method) *Service {
	s := &Service{
		Service: def,
		Meta:    meta,
		Methods: methods,
		methods: make(map[string]*Method, len(methods)),
	}
	for _, m := range methods {
		s.methods[m.Name] = m
	}
	return s
}

// Method returns the method with the given declared name.
func (s *Service) Method(name string) (*Method, bool) {
	m, ok := s.methods[name]
	return m, ok
}

// Host returns the hostname of the service with no protocol and no
// trailing slash. If the default-host annotation is unset, it returns
// PlaceholderHost.
func (s *Service) Host() string {
	if s.DefaultHost != "" {
		return s.DefaultHost
	}
	return PlaceholderHost
}

// OAuthScopes returns the scope strings of the OAuth annotation, in
// declaration order. Nil if the annotation is absent.
func (s *Service) OAuthScopes() []string {
	return s.Scopes
}

// ModuleIdentifier returns the service name in ecosystem-safe
// snake_case form.
func (s *Service) ModuleIdentifier() string {
	return snake(s.Name)
}

// ReferencedModules returns the (package, module) pair of every message
// referenced by the service's methods: requests, responses and, where
// present, operation payload and metadata types. The result is
// deduplicated and sorted by package then module, so import statements
// rendered from it are stable regardless of declaration order.
func (s *Service) ReferencedModules() []ModuleRef {
	seen := make(map[ModuleRef]struct{})
	add := func(m *MessageType) {
		if m == nil {
			return
		}
		seen[ModuleRef{Package: m.Meta.Address.String(), Module: m.ModuleReference()}] = struct{}{}
	}
	for _, m := range s.Methods {
		add(m.Request)
		add(m.Response)
		add(m.LROPayload)
		add(m.LROMetadata)
	}
	refs := make([]ModuleRef, 0, len(seen))
	for ref := range seen {
		refs = append(refs, ref)
	}
	slices.SortFunc(refs, func(a, b ModuleRef) int {
		if c := strings.Compare(a.Package, b.Package); c != 0 {
			return c
		}
		return strings.Compare(a.Module, b.Module)
	})
	return refs
}

// HasLRO reports whether any method of the service is long-running.
func (s *Service) HasLRO() bool {
	for _, m := range s.Methods {
		if m.LROPayload != nil {
			return true
		}
	}
	return false
}

// HasFieldHeaders reports whether any method of the service carries
// field headers.
func (s *Service) HasFieldHeaders() bool {
	for _, m := range s.Methods {
		if len(m.FieldHeaders()) > 0 {
			return true
		}
	}
	return false
}
