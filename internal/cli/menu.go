// Package cli is the interactive console: menus, prompts, input validation
// and table rendering. It owns all I/O; the services never read input.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"vetclinic/internal/booking"
	"vetclinic/internal/clinic"
	"vetclinic/internal/registration"
)

const (
	dateFormat     = "02.01.2006"
	timeFormat     = "15:04"
	dateTimeFormat = "02.01.2006 15:04"
)

// PhonePattern is the accepted owner phone shape: +7 and ten digits.
var PhonePattern = regexp.MustCompile(`^\+7\d{10}$`)

type Menu struct {
	in       *bufio.Scanner
	out      io.Writer
	booking  *booking.Service
	registry *registration.Service
	logger   *slog.Logger

	title   *color.Color
	errText *color.Color
	okText  *color.Color
	note    *color.Color
}

func New(bookingSvc *booking.Service, registrySvc *registration.Service, logger *slog.Logger) *Menu {
	return &Menu{
		in:       bufio.NewScanner(os.Stdin),
		out:      os.Stdout,
		booking:  bookingSvc,
		registry: registrySvc,
		logger:   logger,
		title:    color.New(color.FgCyan, color.Bold),
		errText:  color.New(color.FgRed),
		okText:   color.New(color.FgGreen),
		note:     color.New(color.FgBlue),
	}
}

// Run drives the main menu until the user exits or input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		m.title.Fprintln(m.out, "\n=== Veterinary clinic ===")
		fmt.Fprintln(m.out, "1. Register a new patient")
		fmt.Fprintln(m.out, "2. List patients")
		fmt.Fprintln(m.out, "3. Book an appointment")
		fmt.Fprintln(m.out, "4. Upcoming appointments")
		fmt.Fprintln(m.out, "5. Cancel an appointment")
		fmt.Fprintln(m.out, "6. Patient medical card")
		fmt.Fprintln(m.out, "0. Exit")

		choice, ok := m.prompt("Choose an action: ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			m.registerPatient(ctx)
		case "2":
			m.listPatients(ctx)
		case "3":
			m.bookAppointment(ctx)
		case "4":
			m.listUpcoming(ctx)
		case "5":
			m.cancelAppointment(ctx)
		case "6":
			m.medicalCard(ctx)
		case "0":
			return nil
		default:
			m.errText.Fprintln(m.out, "Unknown action, enter a number from the menu.")
		}
	}
}

// registerPatient collects owner and patient details. An empty answer to any
// prompt aborts back to the main menu. The phone is validated against
// PhonePattern, and when the phone already belongs to an owner with a
// different name the user decides whether to reuse that owner or enter
// another phone.
func (m *Menu) registerPatient(ctx context.Context) {
	m.title.Fprintln(m.out, "\nRegister a new patient")
	m.note.Fprintln(m.out, "Leave any field empty to return to the menu.")

	ownerName, ok := m.prompt("Owner full name: ")
	if !ok || ownerName == "" {
		return
	}

	var ownerPhone string
	for {
		phone, ok := m.prompt("Owner phone (+7XXXXXXXXXX): ")
		if !ok || phone == "" {
			return
		}
		if !PhonePattern.MatchString(phone) {
			m.errText.Fprintln(m.out, "Phone must look like +7XXXXXXXXXX.")
			continue
		}

		existing, found, err := m.registry.OwnerByPhone(ctx, phone)
		if err != nil {
			m.fail(err)
			return
		}
		if found && existing.FullName != ownerName {
			m.note.Fprintf(m.out, "This phone belongs to %s.\n", existing.FullName)
			if !m.confirm("Use this owner?") {
				m.note.Fprintln(m.out, "Enter a different phone then.")
				continue
			}
		}
		ownerPhone = phone
		break
	}

	patientName, ok := m.prompt("Animal name: ")
	if !ok || patientName == "" {
		return
	}
	species, ok := m.prompt("Species: ")
	if !ok || species == "" {
		return
	}

	patient, err := m.registry.Register(ctx, ownerName, ownerPhone, patientName, species)
	if err != nil {
		m.fail(err)
		return
	}
	m.okText.Fprintf(m.out, "Patient registered: id %d (%s, %s).\n", patient.ID, patient.Name, patient.Species)
}

func (m *Menu) listPatients(ctx context.Context) {
	patients, err := m.registry.ListPatients(ctx)
	if err != nil {
		m.fail(err)
		return
	}
	if len(patients) == 0 {
		m.note.Fprintln(m.out, "No patients registered yet.")
		return
	}
	m.renderPatients(patients)
}

func (m *Menu) bookAppointment(ctx context.Context) {
	doctors, err := m.booking.Doctors(ctx)
	if err != nil {
		m.fail(err)
		return
	}
	if len(doctors) == 0 {
		m.note.Fprintln(m.out, "No doctors on record.")
		return
	}
	m.renderDoctors(doctors)

	doctorID, ok := m.promptID("Doctor id: ")
	if !ok {
		return
	}
	if !doctorKnown(doctors, doctorID) {
		m.errText.Fprintln(m.out, "No doctor with that id.")
		return
	}

	dates := m.booking.AvailableDates()
	fmt.Fprintln(m.out, "\nAvailable dates:")
	for i, d := range dates {
		fmt.Fprintf(m.out, "%2d. %s\n", i+1, d.Format(dateFormat))
	}
	dayIdx, ok := m.promptChoice("Choose a date (number): ", len(dates))
	if !ok {
		return
	}
	day := dates[dayIdx]

	slots, err := m.booking.AvailableSlots(ctx, doctorID, day)
	if err != nil {
		m.fail(err)
		return
	}
	if len(slots) == 0 {
		m.note.Fprintln(m.out, "No free slots on that day.")
		return
	}
	fmt.Fprintln(m.out, "\nFree slots:")
	for i, s := range slots {
		fmt.Fprintf(m.out, "%2d. %s\n", i+1, s.Format(timeFormat))
	}
	slotIdx, ok := m.promptChoice("Choose a slot (number): ", len(slots))
	if !ok {
		return
	}

	patientID, ok := m.promptID("Patient id: ")
	if !ok {
		return
	}

	appt, err := m.booking.Create(ctx, patientID, doctorID, slots[slotIdx])
	if err != nil {
		m.fail(err)
		return
	}
	m.okText.Fprintf(m.out, "Appointment %d booked for %s.\n", appt.ID, appt.DateTime.Format(dateTimeFormat))
}

func (m *Menu) listUpcoming(ctx context.Context) {
	appts, err := m.booking.ListUpcoming(ctx)
	if err != nil {
		m.fail(err)
		return
	}
	if len(appts) == 0 {
		m.note.Fprintln(m.out, "No upcoming appointments.")
		return
	}
	m.renderUpcoming(appts)
}

func (m *Menu) cancelAppointment(ctx context.Context) {
	id, ok := m.promptID("Appointment id to cancel: ")
	if !ok {
		return
	}
	deleted, err := m.booking.Cancel(ctx, id)
	if err != nil {
		m.fail(err)
		return
	}
	if deleted {
		m.okText.Fprintln(m.out, "Appointment cancelled.")
	} else {
		m.note.Fprintln(m.out, "No appointment with that id.")
	}
}

func (m *Menu) medicalCard(ctx context.Context) {
	id, ok := m.promptID("Patient id: ")
	if !ok {
		return
	}
	card, err := m.registry.PatientCard(ctx, id)
	if err != nil {
		m.fail(err)
		return
	}
	m.title.Fprintf(m.out, "\nMedical card #%d\n", card.ID)
	fmt.Fprintf(m.out, "Patient: %s (%s)\n", card.Name, card.Species)
	fmt.Fprintf(m.out, "Owner:   %s, %s\n", card.OwnerName, card.OwnerPhone)

	visits, err := m.booking.ListForPatient(ctx, id)
	if err != nil {
		m.fail(err)
		return
	}
	if len(visits) == 0 {
		m.note.Fprintln(m.out, "No visits on record.")
		return
	}
	m.renderVisits(visits)
}

func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) promptID(label string) (int64, bool) {
	for {
		raw, ok := m.prompt(label)
		if !ok || raw == "" {
			return 0, false
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			m.errText.Fprintln(m.out, "Enter a positive number.")
			continue
		}
		return id, true
	}
}

// promptChoice reads a 1-based selection and returns it 0-based.
func (m *Menu) promptChoice(label string, n int) (int, bool) {
	for {
		raw, ok := m.prompt(label)
		if !ok || raw == "" {
			return 0, false
		}
		i, err := strconv.Atoi(raw)
		if err != nil || i < 1 || i > n {
			m.errText.Fprintf(m.out, "Enter a number between 1 and %d.\n", n)
			continue
		}
		return i - 1, true
	}
}

func (m *Menu) confirm(label string) bool {
	for {
		raw, ok := m.prompt(label + " (y/n): ")
		if !ok {
			return false
		}
		switch strings.ToLower(raw) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		}
		m.errText.Fprintln(m.out, "Answer y or n.")
	}
}

func (m *Menu) fail(err error) {
	m.errText.Fprintln(m.out, ErrorMessage(err))
	m.logger.Error("operation failed", "err", err)
}

// ErrorMessage turns a service error into a line fit for the terminal.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, clinic.ErrUnknownPatient):
		return "No patient with that id."
	case errors.Is(err, clinic.ErrUnknownDoctor):
		return "No doctor with that id."
	case errors.Is(err, clinic.ErrSlotConflict):
		return "The doctor is already booked for that time, pick another slot."
	case errors.Is(err, clinic.ErrNotFound):
		return "Nothing found for that id."
	case errors.Is(err, clinic.ErrStoreUnavailable):
		return "The clinic database is unavailable, try again later."
	default:
		return "Something went wrong: " + err.Error()
	}
}

func doctorKnown(doctors []clinic.Doctor, id int64) bool {
	for _, d := range doctors {
		if d.ID == id {
			return true
		}
	}
	return false
}
