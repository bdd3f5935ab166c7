package backend

import (
	"errors"

	"github.com/gogpu/glkit/driver"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not
	// registered or none of the registered backends could be created.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend name constants.
const (
	// BackendOpenGL is the name of the go-gl driver. It needs a current
	// GL 4.6 core context on the calling thread.
	BackendOpenGL = "opengl"

	// BackendFake is the name of the recording in-memory driver.
	BackendFake = "fake"
)

// Factory creates a driver instance. A factory returns an error when the
// driver cannot run in the current process, for example when no context is
// current.
type Factory func() (driver.Driver, error)
