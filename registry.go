package iobject

import "sync"

// TypeDef is the registered validator/parser for a single type name
// (§4.5). Parse validates node against memberDef's constraints and
// returns the typed value; index is the element's position when parsing
// inside an array or collection, or -1 otherwise.
type TypeDef interface {
	TypeName() string
	Parse(node Node, def *MemberDef, defs *Definitions, index int) (any, *CodecError)
}

// DefaultFunc computes a fresh default value on demand, e.g. "now" for
// datetime-family members (§4.5, adapted from the teacher's default
// function registry).
type DefaultFunc func(args ...string) (any, error)

// TypeRegistry is the process-wide type-name -> TypeDef dispatch table.
// Registration happens once at startup; later reads are lock-free in
// spirit, but the map is still guarded so tests may Register/Unregister
// for isolation (§4.5, §5, §9) without racing a concurrent reader.
type TypeRegistry struct {
	mu           sync.RWMutex
	types        map[string]TypeDef
	defaultFuncs map[string]DefaultFunc
}

var globalRegistry = NewTypeRegistry()

// NewTypeRegistry returns an empty registry. Most callers use the
// package-level DefaultRegistry instead of constructing their own.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{
		types:        make(map[string]TypeDef),
		defaultFuncs: make(map[string]DefaultFunc),
	}
}

// DefaultRegistry returns the process-wide registry, pre-populated with
// the builtin types (string, number, int family, bool, datetime family,
// binary, array, object, any, decimal, bigint, plus email/url).
func DefaultRegistry() *TypeRegistry {
	return globalRegistry
}

// Register adds or replaces the TypeDef for its TypeName().
func (r *TypeRegistry) Register(def TypeDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types[def.TypeName()] = def
}

// MustRegister panics if name is already registered; useful during
// package init to catch accidental duplicate registrations early.
func (r *TypeRegistry) MustRegister(def TypeDef) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[def.TypeName()]; exists {
		panic("iobject: type already registered: " + def.TypeName())
	}
	r.types[def.TypeName()] = def
}

// Unregister removes a type, permitted for test isolation per §4.5.
func (r *TypeRegistry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.types, name)
}

// Get returns the TypeDef for name, and whether it was found.
func (r *TypeRegistry) Get(name string) (TypeDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.types[name]
	return d, ok
}

// RegisterDefaultFunc registers a named default-value function, callable
// from a MemberDef's Default string (e.g. "now").
func (r *TypeRegistry) RegisterDefaultFunc(name string, fn DefaultFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultFuncs[name] = fn
}

func (r *TypeRegistry) getDefaultFunc(name string) (DefaultFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.defaultFuncs[name]
	return fn, ok
}

func init() {
	for _, def := range []TypeDef{
		newStringTypeDef("string"),
		newStringTypeDef("email"),
		newStringTypeDef("url"),
		newNumberTypeDef(),
		newIntTypeDef("byte", -1<<7, 1<<7-1),
		newIntTypeDef("int16", -1<<15, 1<<15-1),
		newIntTypeDef("int32", -1<<31, 1<<31-1),
		newIntTypeDef("int", minPlatformInt, maxPlatformInt),
		newBoolTypeDef(),
		newDateTimeTypeDef("datetime"),
		newDateTimeTypeDef("date"),
		newDateTimeTypeDef("time"),
		newBinaryTypeDef(),
		newArrayTypeDef(),
		newObjectTypeDef(),
		newAnyTypeDef(),
		newDecimalTypeDef(),
		newBigIntTypeDef(),
	} {
		globalRegistry.Register(def)
	}
	globalRegistry.RegisterDefaultFunc("now", defaultNowFunc)
}
