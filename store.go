package formula

import (
	"fmt"
	"io"
	"math/big"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Storage provides the values of variables during evaluation. Value returns
// the value of the named variable; what happens for unknown names is up to
// the implementation. The returned value is not modified by evaluation.
//
// Evaluation reads from the storage synchronously. A storage that is modified
// while an evaluation uses it may give inconsistent results even if it is
// synchronized internally.
type Storage interface {
	Value(name string) (*big.Float, error)
}

// StorageFunc adapts a function to a Storage.
type StorageFunc func(name string) (*big.Float, error)

// Value calls f(name).
func (f StorageFunc) Value(name string) (*big.Float, error) {
	return f(name)
}

// zero is the value of every variable in Zero.
var zero = new(big.Float)

// Zero is a storage in which every variable is zero.
var Zero Storage = StorageFunc(func(string) (*big.Float, error) { return zero, nil })

// Store is a Storage holding variable values by name. A Store is safe for
// concurrent use.
type Store struct {
	mu   sync.RWMutex
	vals map[string]*big.Float
	// dflt is the value of unknown variables, or nil for an error.
	dflt *big.Float
}

// NewStore creates an empty store. Unknown variables produce *NameError.
func NewStore() *Store {
	return &Store{vals: make(map[string]*big.Float)}
}

// Set sets the value of a variable. The value is copied. Returns s for
// chaining.
func (s *Store) Set(name string, v *big.Float) *Store {
	v = new(big.Float).Copy(v)
	s.mu.Lock()
	s.vals[name] = v
	s.mu.Unlock()
	return s
}

// SetFloat64 sets the value of a variable from a float64.
func (s *Store) SetFloat64(name string, v float64) *Store {
	return s.Set(name, big.NewFloat(v))
}

// Delete removes a variable.
func (s *Store) Delete(name string) {
	s.mu.Lock()
	delete(s.vals, name)
	s.mu.Unlock()
}

// Default sets the value of variables which are not in the store. Passing
// nil makes unknown variables an error again.
func (s *Store) Default(v *big.Float) *Store {
	if v != nil {
		v = new(big.Float).Copy(v)
	}
	s.mu.Lock()
	s.dflt = v
	s.mu.Unlock()
	return s
}

// Names returns the sorted names of the variables in the store.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.vals))
	for k := range s.vals {
		names = append(names, k)
	}
	s.mu.RUnlock()
	slices.Sort(names)
	return names
}

// Value returns the value of a variable, or the default value if there is no
// such variable. If there is neither, the error is a *NameError.
func (s *Store) Value(name string) (*big.Float, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if v := s.vals[name]; v != nil {
		return v, nil
	}
	if s.dflt != nil {
		return s.dflt, nil
	}
	return nil, &NameError{Name: name}
}

// LoadStore reads variables from a YAML mapping of names to numbers, e.g.
//
//	x: 1.5
//	rate: 0.07
//
// Values are parsed at the given precision; zero selects 64.
func LoadStore(r io.Reader, prec uint) (*Store, error) {
	if prec == 0 {
		prec = defaultPrec
	}
	var m map[string]string
	if err := yaml.NewDecoder(r).Decode(&m); err != nil && err != io.EOF {
		return nil, fmt.Errorf("formula: decoding variables: %w", err)
	}
	s := NewStore()
	for name, text := range m {
		v, _, err := new(big.Float).SetPrec(prec).Parse(strings.TrimSpace(text), 0)
		if err != nil {
			return nil, fmt.Errorf("formula: variable %q: %w", name, err)
		}
		s.vals[name] = v
	}
	return s, nil
}
