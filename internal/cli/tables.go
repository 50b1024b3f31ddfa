package cli

import (
	"strconv"

	"github.com/olekukonko/tablewriter"

	"vetclinic/internal/clinic"
)

func (m *Menu) renderPatients(patients []clinic.PatientSummary) {
	t := tablewriter.NewWriter(m.out)
	t.SetHeader([]string{"ID", "Name", "Species", "Owner", "Phone"})
	for _, p := range patients {
		t.Append([]string{
			strconv.FormatInt(p.ID, 10),
			p.Name,
			p.Species,
			p.OwnerName,
			p.OwnerPhone,
		})
	}
	t.Render()
}

func (m *Menu) renderDoctors(doctors []clinic.Doctor) {
	t := tablewriter.NewWriter(m.out)
	t.SetHeader([]string{"ID", "Doctor"})
	for _, d := range doctors {
		t.Append([]string{strconv.FormatInt(d.ID, 10), d.FullName})
	}
	t.Render()
}

func (m *Menu) renderUpcoming(appts []clinic.AppointmentView) {
	t := tablewriter.NewWriter(m.out)
	t.SetHeader([]string{"ID", "Patient", "Doctor", "When"})
	for _, a := range appts {
		t.Append([]string{
			strconv.FormatInt(a.ID, 10),
			a.PatientName,
			a.DoctorName,
			a.DateTime.Format(dateTimeFormat),
		})
	}
	t.Render()
}

func (m *Menu) renderVisits(visits []clinic.PatientVisit) {
	t := tablewriter.NewWriter(m.out)
	t.SetHeader([]string{"ID", "Doctor", "When"})
	for _, v := range visits {
		t.Append([]string{
			strconv.FormatInt(v.AppointmentID, 10),
			v.DoctorName,
			v.DateTime.Format(dateTimeFormat),
		})
	}
	t.Render()
}
