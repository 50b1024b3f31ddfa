// Package clinic holds the domain records shared across the application:
// the four persisted entities and the per-query view records returned by
// the storage layer.
package clinic

import "time"

// AppointmentDuration is the fixed length of every appointment. It is a
// policy value, not a per-record field.
const AppointmentDuration = 30 * time.Minute

type Owner struct {
	ID       int64
	FullName string
	Phone    string
}

type Patient struct {
	ID      int64
	OwnerID int64
	Name    string
	Species string
}

type Doctor struct {
	ID       int64
	FullName string
}

type Appointment struct {
	ID        int64
	PatientID int64
	DoctorID  int64
	DateTime  time.Time
}

// PatientSummary is a patient row joined with its owner, as shown in the
// patient list and the medical card header.
type PatientSummary struct {
	ID         int64
	Name       string
	Species    string
	OwnerName  string
	OwnerPhone string
}

// AppointmentView is an appointment joined with patient and doctor names.
type AppointmentView struct {
	ID          int64
	PatientName string
	DoctorName  string
	DateTime    time.Time
}

// PatientVisit is one line of a patient's visit history.
type PatientVisit struct {
	AppointmentID int64
	DoctorName    string
	DateTime      time.Time
}
