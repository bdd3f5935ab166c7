package backend

import (
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/glkit/driver"
)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	// A real driver is preferred; the fake driver is the fallback.
	backendPriority = []string{BackendOpenGL, BackendFake}
)

// Register registers a driver factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Get creates the driver registered under name.
func Get(name string) (driver.Driver, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q is not registered", ErrBackendNotAvailable, name)
	}
	d, err := factory()
	if err != nil {
		return nil, fmt.Errorf("backend %q: %w", name, err)
	}
	return d, nil
}

// Default creates the best available driver based on priority.
// Priority order: opengl > fake, then any other registered backend in
// name order. Factories that fail are skipped; the returned name tells
// which backend was picked.
func Default() (string, driver.Driver, error) {
	names := Available()
	order := make([]string, 0, len(names))
	for _, name := range backendPriority {
		if slices.Contains(names, name) {
			order = append(order, name)
		}
	}
	for _, name := range names {
		if !slices.Contains(order, name) {
			order = append(order, name)
		}
	}

	var errs []error
	for _, name := range order {
		d, err := Get(name)
		if err == nil {
			return name, d, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return "", nil, ErrBackendNotAvailable
	}
	return "", nil, fmt.Errorf("%w: %v", ErrBackendNotAvailable, errs)
}

// MustDefault returns the default driver or panics.
func MustDefault() driver.Driver {
	_, d, err := Default()
	if err != nil {
		panic(err)
	}
	return d
}
