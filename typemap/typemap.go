package typemap

import (
	"fmt"
	"regexp"
	"sort"
	"sync"
)

// Context is handed to validators. It identifies the pattern a value has been
// matched by.
type Context interface {
	Expression() string
}

// Validator checks a matched value and converts it. Returning an error which
// matches ErrValidation rejects the value; every other error is considered a
// defect and will be propagated to the caller of Match.
type Validator func(ctx Context, value string) (interface{}, error)

// TypeMap is a named value type.
type TypeMap struct {
	Name     string    // unique key within a registry
	Fragment string    // regexp fragment without capturing groups
	Validate Validator // may be nil: value is used as is
}

// Apply validates and converts value. A nil type map or a type map without a
// validator returns value unchanged.
func (tm *TypeMap) Apply(ctx Context, value string) (interface{}, error) {
	if tm == nil || tm.Validate == nil {
		return value, nil
	}
	return tm.Validate(ctx, value)
}

func (tm *TypeMap) String() string {
	return fmt.Sprintf("@%s<%s>", tm.Name, tm.Fragment)
}

// validName is what an expression accepts as a type reference.
var validName = regexp.MustCompile(`^[\w+-]+$`)

// Registry is a table of type maps, keyed by name.
type Registry struct {
	mx    sync.RWMutex
	types map[string]*TypeMap
}

// NewRegistry creates a registry pre-filled with the built-in numeric types.
func NewRegistry() *Registry {
	reg := &Registry{}
	reg.Reset()
	return reg
}

// NewEmptyRegistry creates a registry without any type maps.
func NewEmptyRegistry() *Registry {
	return &Registry{types: make(map[string]*TypeMap)}
}

var defaultRegistry *Registry
var setupOnce sync.Once

// Default returns the process-wide registry. It is created on first use and
// seeded with the built-in types.
// (Concurrency-safe).
func Default() *Registry {
	setupOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register adds a type map or replaces an existing one with the same name.
// Replacing is legal, but will be flagged by the tracer.
//
// fragment must be a valid regexp without capturing groups. validate may be nil.
func (reg *Registry) Register(name, fragment string, validate Validator) error {
	if !validName.MatchString(name) {
		return fmt.Errorf("%w: '%s'", ErrInvalidName, name)
	}
	re, err := regexp.Compile(fragment)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCapturingFragment, name, err)
	}
	if re.NumSubexp() > 0 {
		return fmt.Errorf("%w: %s: fragment must not contain capturing groups", ErrCapturingFragment, name)
	}
	reg.mx.Lock()
	defer reg.mx.Unlock()
	if reg.types == nil {
		reg.types = make(map[string]*TypeMap)
	}
	if _, exists := reg.types[name]; exists {
		tracer().Infof("redefining type map '%s'", name)
	}
	reg.types[name] = &TypeMap{Name: name, Fragment: fragment, Validate: validate}
	tracer().Debugf("registered type map %s = %s", name, fragment)
	return nil
}

// MustRegister is like Register, but panics on error.
func (reg *Registry) MustRegister(name, fragment string, validate Validator) {
	if err := reg.Register(name, fragment, validate); err != nil {
		panic(err.Error())
	}
}

// Lookup finds a type map by name.
func (reg *Registry) Lookup(name string) (*TypeMap, bool) {
	reg.mx.RLock()
	defer reg.mx.RUnlock()
	tm, ok := reg.types[name]
	return tm, ok
}

// Names returns the names of all registered type maps, sorted.
func (reg *Registry) Names() []string {
	reg.mx.RLock()
	defer reg.mx.RUnlock()
	names := make([]string, 0, len(reg.types))
	for name := range reg.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset drops all type maps and re-installs the built-in ones.
func (reg *Registry) Reset() {
	reg.mx.Lock()
	reg.types = make(map[string]*TypeMap)
	reg.mx.Unlock()
	installBuiltins(reg)
}
