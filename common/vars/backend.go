package vars

import (
	"infinitech-web/model"
	"sync/atomic"
)

// backendStatusPtr holds the result of the latest backend health probe.
// Reads are lock-free; the probe replaces the whole value on every run.
var backendStatusPtr atomic.Pointer[model.BackendStatus]

// GetBackendStatus returns a copy of the latest probe result, or the zero
// value if no probe has completed yet.
func GetBackendStatus() model.BackendStatus {
	ptr := backendStatusPtr.Load()
	if ptr == nil {
		return model.BackendStatus{}
	}
	return *ptr
}

// SetBackendStatus atomically replaces the probe result.
func SetBackendStatus(status model.BackendStatus) {
	backendStatusPtr.Store(&status)
}

// ResetBackendStatus clears the probe result.
func ResetBackendStatus() {
	backendStatusPtr.Store(nil)
}
