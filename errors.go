package glkit

import (
	"errors"
	"fmt"

	"github.com/gogpu/glkit/driver"
)

// Asset errors, returned from constructors.
var (
	// ErrCompile is returned when a shader stage fails to compile.
	ErrCompile = errors.New("glkit: shader compilation failed")

	// ErrLink is returned when a program fails to link.
	ErrLink = errors.New("glkit: program link failed")

	// ErrValidate is returned when a linked program fails validation.
	ErrValidate = errors.New("glkit: program validation failed")

	// ErrUnsupportedFormat is returned when a gputypes value has no
	// driver equivalent.
	ErrUnsupportedFormat = errors.New("glkit: unsupported format")
)

// Contract violations. These are raised with panic: they indicate a bug in
// the caller or a driver that broke its contract, not a transient condition.
var (
	// ErrUnknownUniformType means introspection reported a type constant
	// outside the known set.
	ErrUnknownUniformType = errors.New("glkit: unknown uniform type")

	// ErrUniformAlignment means a uniform value type is not a whole number
	// of 4-byte words.
	ErrUniformAlignment = errors.New("glkit: uniform value size is not a multiple of 4 bytes")

	// ErrUniformPayload means a uniform upload supplies fewer bytes than the
	// driver reads for the uniform's declared size.
	ErrUniformPayload = errors.New("glkit: uniform payload shorter than declared size")

	// ErrUniformNotFound means a uniform container field names no active
	// uniform of the program.
	ErrUniformNotFound = errors.New("glkit: uniform not active in program")

	// ErrProgramReleased means a uniform was used after its program was freed.
	ErrProgramReleased = errors.New("glkit: uniform used after its program was released")

	// ErrNotIndexBuffer means a buffer without the element array target was
	// passed where an index buffer is required.
	ErrNotIndexBuffer = errors.New("glkit: buffer is not an element array buffer")

	// ErrHandleReleased means a handle was retained or released after its
	// last owner was gone.
	ErrHandleReleased = errors.New("glkit: handle already released")
)

// CompileError reports a shader stage that failed to compile.
type CompileError struct {
	// Kind is the stage that failed.
	Kind driver.StageKind

	// Log is the driver's info log, bounded by the device's info log limit.
	Log string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("glkit: failed to compile %s shader: %s", e.Kind, e.Log)
}

// Unwrap returns ErrCompile.
func (e *CompileError) Unwrap() error { return ErrCompile }

// LinkError reports a program that failed to link or validate.
type LinkError struct {
	// Status is driver.LinkStatus or driver.ValidateStatus.
	Status driver.Parameter

	// Log is the driver's info log, bounded by the device's info log limit.
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("glkit: check of %s failed for program: %s", e.Status, e.Log)
}

// Unwrap returns ErrValidate for validation failures and ErrLink otherwise.
func (e *LinkError) Unwrap() error {
	if e.Status == driver.ValidateStatus {
		return ErrValidate
	}
	return ErrLink
}
