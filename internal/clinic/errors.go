package clinic

import "errors"

// Typed failure kinds surfaced by the services. Callers classify with
// errors.Is and decide how to recover; nothing here terminates the process.
var (
	ErrUnknownPatient   = errors.New("patient not found")
	ErrUnknownDoctor    = errors.New("doctor not found")
	ErrSlotConflict     = errors.New("doctor already booked for this time")
	ErrNotFound         = errors.New("record not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)
