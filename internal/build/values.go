package build

import (
	"fmt"
	"sort"
	"sync"

	"git.home.luguber.info/inful/gitstamp/internal/foundation/errors"
)

// Rebuild names what must be rebuilt when a value changes.
const (
	RebuildHTML = "html"
	RebuildEnv  = "env"
)

// ConfigValue is an option declared by an extension.
type ConfigValue struct {
	Name    string
	Default any
	Rebuild string
}

// Values resolves extension options against the raw configuration file
// keys. A declared value resolves to the file's value when present and to
// its default otherwise.
type Values struct {
	mu    sync.RWMutex
	raw   map[string]any
	defs  map[string]ConfigValue
	order []string
}

// NewValues creates a registry over the configuration file's non-schema keys.
func NewValues(raw map[string]any) *Values {
	copied := make(map[string]any, len(raw))
	for k, v := range raw {
		copied[k] = v
	}
	return &Values{raw: copied, defs: make(map[string]ConfigValue)}
}

// Add declares an option. Declaring the same name twice is an error.
func (v *Values) Add(name string, def any, rebuild string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if _, exists := v.defs[name]; exists {
		return errors.WrapError(fmt.Errorf("%w: %s", ErrValueDeclared, name), errors.CategoryInternal, "duplicate configuration value").
			WithContext("name", name).
			Fatal().
			Build()
	}
	v.defs[name] = ConfigValue{Name: name, Default: def, Rebuild: rebuild}
	v.order = append(v.order, name)
	return nil
}

// Get returns the resolved value. ok is false for undeclared names.
func (v *Values) Get(name string) (value any, ok bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	def, declared := v.defs[name]
	if !declared {
		return nil, false
	}
	if raw, set := v.raw[name]; set {
		return raw, true
	}
	return def.Default, true
}

// String returns a declared value that must be a string.
func (v *Values) String(name string) (string, error) {
	value, ok := v.Get(name)
	if !ok {
		return "", errors.WrapError(fmt.Errorf("%w: %s", ErrValueNotDeclared, name), errors.CategoryInternal, "unknown configuration value").
			WithContext("name", name).
			Build()
	}
	s, ok := value.(string)
	if !ok {
		return "", errors.ValidationError(fmt.Sprintf("configuration value %s must be a string, got %T", name, value)).
			WithContext("name", name).
			UserAction().
			Build()
	}
	return s, nil
}

// Declared returns the declared options in declaration order.
func (v *Values) Declared() []ConfigValue {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]ConfigValue, 0, len(v.order))
	for _, name := range v.order {
		out = append(out, v.defs[name])
	}
	return out
}

// Defaults returns the default of every declared option.
func (v *Values) Defaults() map[string]any {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make(map[string]any, len(v.defs))
	for name, def := range v.defs {
		out[name] = def.Default
	}
	return out
}

// Unknown returns the configuration file keys no extension declared, sorted.
func (v *Values) Unknown() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var out []string
	for name := range v.raw {
		if _, declared := v.defs[name]; !declared {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
