package glkit

import "log/slog"

// DefaultInfoLogLimit is the byte bound applied to compiler and linker
// logs and to reflected attribute and uniform names.
const DefaultInfoLogLimit = 512

// DeviceOption configures a Device during creation.
// Use functional options to customize Device behavior.
//
// Example:
//
//	// Default device, logging through glkit.Logger()
//	dev := glkit.NewDevice(drv)
//
//	// Dedicated logger and longer compiler logs
//	dev := glkit.NewDevice(drv,
//	    glkit.WithLogger(logger),
//	    glkit.WithInfoLogLimit(4096))
type DeviceOption func(*deviceOptions)

// deviceOptions holds optional configuration for Device creation.
type deviceOptions struct {
	logger       *slog.Logger
	infoLogLimit int
	trackLeaks   bool
}

// defaultOptions returns the default device options.
func defaultOptions() deviceOptions {
	return deviceOptions{
		logger:       nil, // follows the package logger
		infoLogLimit: DefaultInfoLogLimit,
		trackLeaks:   true,
	}
}

// WithLogger sets a logger for the Device instead of the package logger.
// A nil logger restores the package logger.
func WithLogger(l *slog.Logger) DeviceOption {
	return func(o *deviceOptions) {
		o.logger = l
	}
}

// WithInfoLogLimit sets the byte bound for driver info logs and reflected
// names. Values below 1 are ignored.
func WithInfoLogLimit(n int) DeviceOption {
	return func(o *deviceOptions) {
		if n > 0 {
			o.infoLogLimit = n
		}
	}
}

// WithLeakTracking enables or disables reclaiming of objects whose last
// Go reference was dropped without a Release call.
//
// When enabled (the default), such objects are queued when the garbage
// collector finds them and deleted by the next [Device.Collect].
func WithLeakTracking(enabled bool) DeviceOption {
	return func(o *deviceOptions) {
		o.trackLeaks = enabled
	}
}
