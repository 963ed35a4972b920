package gen

import (
	"path"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/descware/apigen/compiler/load"
)

// API is the normalized object graph handed to the renderer: the
// resolved naming plus every service, message and enum wrapped with its
// derived properties. Messages and enums are indexed once by qualified
// path and shared by reference, so a message referenced by many methods
// stays a single logical entity.
type API struct {
	// Naming is the resolved identity of the API.
	Naming *Naming
	// Messages holds the message entities keyed by qualified path.
	Messages map[string]*MessageType
	// Enums holds the enum entities keyed by qualified path.
	Enums map[string]*EnumType
	// Services holds the service entities keyed by declared name.
	Services map[string]*Service

	cfg *Config
}

// NewAPI builds the entity graph for one generation pass over the given
// declaration files. Naming resolution runs first and any naming failure
// aborts the pass before a single entity is built. Per-file message and
// enum wrapping then runs on a bounded worker pool; services are wired
// last, once the full message index exists, since methods may reference
// messages declared in other files.
func NewAPI(files []*load.File, opts ...Option) (*API, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	// Naming must be resolved and frozen before any entity derivation,
	// since derived module identifiers depend on it.
	naming, err := NewNaming(files)
	if err != nil {
		return nil, err
	}
	api := &API{
		Naming:   naming,
		Messages: make(map[string]*MessageType),
		Enums:    make(map[string]*EnumType),
		Services: make(map[string]*Service),
		cfg:      cfg,
	}
	// Each worker writes only its own slot, so the wrapping needs no
	// locking; the merge below is sequential and file-ordered.
	type entities struct {
		messages []*MessageType
		enums    []*EnumType
	}
	results := make([]entities, len(files))
	g := new(errgroup.Group)
	g.SetLimit(cfg.Workers)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			addr := fileAddress(f)
			res := entities{
				messages: make([]*MessageType, 0, len(f.Messages)),
				enums:    make([]*EnumType, 0, len(f.Enums)),
			}
			for _, md := range f.Messages {
				res.messages = append(res.messages, NewMessageType(cfg, md, Meta{Doc: md.Doc, Address: addr}))
			}
			for _, ed := range f.Enums {
				res.enums = append(res.enums, NewEnumType(ed, Meta{Doc: ed.Doc, Address: addr}))
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, res := range results {
		for _, m := range res.messages {
			api.Messages[m.QualifiedPath()] = m
		}
		for _, e := range res.enums {
			api.Enums[e.QualifiedPath()] = e
		}
	}
	for _, f := range files {
		addr := fileAddress(f)
		for _, sd := range f.Services {
			svc, err := api.buildService(sd, addr)
			if err != nil {
				return nil, err
			}
			api.Services[svc.Name] = svc
		}
	}
	return api, nil
}

// Message returns the message entity with the given qualified path.
func (a *API) Message(path string) (*MessageType, bool) {
	m, ok := a.Messages[path]
	return m, ok
}

// Enum returns the enum entity with the given qualified path.
func (a *API) Enum(path string) (*EnumType, bool) {
	e, ok := a.Enums[path]
	return e, ok
}

// Service returns the service entity with the given declared name.
func (a *API) Service(name string) (*Service, bool) {
	s, ok := a.Services[name]
	return s, ok
}

// ServiceNames returns the sorted names of all services, for stable
// iteration by the renderer.
func (a *API) ServiceNames() []string {
	names := make([]string, 0, len(a.Services))
	for name := range a.Services {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MessagePaths returns the sorted qualified paths of all messages.
func (a *API) MessagePaths() []string {
	paths := make([]string, 0, len(a.Messages))
	for p := range a.Messages {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

// EnumPaths returns the sorted qualified paths of all enums.
func (a *API) EnumPaths() []string {
	paths := make([]string, 0, len(a.Enums))
	for p := range a.Enums {
		paths = append(paths, p)
	}
	slices.Sort(paths)
	return paths
}

func (a *API) buildService(def *load.Service, addr Address) (*Service, error) {
	methods := make([]*Method, 0, len(def.Methods))
	for _, md := range def.Methods {
		m, err := a.buildMethod(md, addr)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return NewService(def, Meta{Doc: def.Doc, Address: addr}, methods), nil
}

func (a *API) buildMethod(def *load.Method, addr Address) (*Method, error) {
	request, err := a.resolveMessage(def.Name, def.RequestType)
	if err != nil {
		return nil, err
	}
	response, err := a.resolveMessage(def.Name, def.ResponseType)
	if err != nil {
		return nil, err
	}
	var payload, metadata *MessageType
	if op := def.Operation; op != nil {
		if op.PayloadType != "" {
			if payload, err = a.resolveMessage(def.Name, op.PayloadType); err != nil {
				return nil, err
			}
		}
		if op.MetadataType != "" {
			if metadata, err = a.resolveMessage(def.Name, op.MetadataType); err != nil {
				return nil, err
			}
		}
	}
	return NewMethod(def, Meta{Doc: def.Doc, Address: addr}, request, response, payload, metadata), nil
}

func (a *API) resolveMessage(method, name string) (*MessageType, error) {
	m, ok := a.Messages[name]
	if !ok {
		return nil, NewUnknownTypeError(method, name)
	}
	return m, nil
}

// fileAddress derives the entity address shared by every declaration of
// a file: the dot-split package path plus the module stem of the file
// name, e.g. "library.proto" -> "library".
func fileAddress(f *load.File) Address {
	var pkg []string
	if f.Package != "" {
		pkg = strings.Split(f.Package, ".")
	}
	return Address{Package: pkg, Module: moduleStem(f.Name)}
}

func moduleStem(name string) string {
	base := path.Base(name)
	if base == "." || base == "/" {
		return ""
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return moduleName(base)
}
