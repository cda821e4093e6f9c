package models

import "time"

// Health records: medications, vaccinations, symptoms, doctor visits.

type Medication struct {
	SyncMeta
	Name   string  `json:"name" validate:"required,max=200"`
	Dose   float64 `json:"dose,omitempty" validate:"omitempty,gte=0"`
	Unit   string  `json:"unit,omitempty" validate:"omitempty,max=20"`
	Route  string  `json:"route,omitempty" validate:"omitempty,oneof=oral topical drops injection other"`
	Reason string  `json:"reason,omitempty"`
	Notes  string  `json:"notes,omitempty"`
}

type MedicationPatch struct {
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Name      *string    `json:"name,omitempty" validate:"omitempty,max=200"`
	Dose      *float64   `json:"dose,omitempty" validate:"omitempty,gte=0"`
	Unit      *string    `json:"unit,omitempty" validate:"omitempty,max=20"`
	Route     *string    `json:"route,omitempty" validate:"omitempty,oneof=oral topical drops injection other"`
	Reason    *string    `json:"reason,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

func (p MedicationPatch) Apply(m *Medication) {
	if p.Timestamp != nil {
		m.Timestamp = *p.Timestamp
	}
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Dose != nil {
		m.Dose = *p.Dose
	}
	if p.Unit != nil {
		m.Unit = *p.Unit
	}
	if p.Route != nil {
		m.Route = *p.Route
	}
	if p.Reason != nil {
		m.Reason = *p.Reason
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
}

type Vaccination struct {
	SyncMeta
	Vaccine string `json:"vaccine" validate:"required,max=200"`
	Dose    string `json:"dose,omitempty" validate:"omitempty,max=50"`
	Site    string `json:"site,omitempty" validate:"omitempty,max=100"`
	LotNo   string `json:"lot_no,omitempty" validate:"omitempty,max=100"`
	Notes   string `json:"notes,omitempty"`
}

type VaccinationPatch struct {
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Vaccine   *string    `json:"vaccine,omitempty" validate:"omitempty,max=200"`
	Dose      *string    `json:"dose,omitempty" validate:"omitempty,max=50"`
	Site      *string    `json:"site,omitempty" validate:"omitempty,max=100"`
	LotNo     *string    `json:"lot_no,omitempty" validate:"omitempty,max=100"`
	Notes     *string    `json:"notes,omitempty"`
}

func (p VaccinationPatch) Apply(v *Vaccination) {
	if p.Timestamp != nil {
		v.Timestamp = *p.Timestamp
	}
	if p.Vaccine != nil {
		v.Vaccine = *p.Vaccine
	}
	if p.Dose != nil {
		v.Dose = *p.Dose
	}
	if p.Site != nil {
		v.Site = *p.Site
	}
	if p.LotNo != nil {
		v.LotNo = *p.LotNo
	}
	if p.Notes != nil {
		v.Notes = *p.Notes
	}
}

type Symptom struct {
	SyncMeta
	Name         string  `json:"name" validate:"required,max=200"`
	Severity     string  `json:"severity,omitempty" validate:"omitempty,oneof=mild moderate severe"`
	TemperatureC float64 `json:"temperature_c,omitempty" validate:"omitempty,gte=0,lte=45"`
	Notes        string  `json:"notes,omitempty"`
}

type SymptomPatch struct {
	Timestamp    *time.Time `json:"timestamp,omitempty"`
	Name         *string    `json:"name,omitempty" validate:"omitempty,max=200"`
	Severity     *string    `json:"severity,omitempty" validate:"omitempty,oneof=mild moderate severe"`
	TemperatureC *float64   `json:"temperature_c,omitempty" validate:"omitempty,gte=0,lte=45"`
	Notes        *string    `json:"notes,omitempty"`
}

func (p SymptomPatch) Apply(s *Symptom) {
	if p.Timestamp != nil {
		s.Timestamp = *p.Timestamp
	}
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Severity != nil {
		s.Severity = *p.Severity
	}
	if p.TemperatureC != nil {
		s.TemperatureC = *p.TemperatureC
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
}

type DoctorVisit struct {
	SyncMeta
	Reason    string `json:"reason" validate:"required,max=500"`
	Doctor    string `json:"doctor,omitempty" validate:"omitempty,max=200"`
	Location  string `json:"location,omitempty" validate:"omitempty,max=200"`
	Diagnosis string `json:"diagnosis,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

type DoctorVisitPatch struct {
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Reason    *string    `json:"reason,omitempty" validate:"omitempty,max=500"`
	Doctor    *string    `json:"doctor,omitempty" validate:"omitempty,max=200"`
	Location  *string    `json:"location,omitempty" validate:"omitempty,max=200"`
	Diagnosis *string    `json:"diagnosis,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

func (p DoctorVisitPatch) Apply(d *DoctorVisit) {
	if p.Timestamp != nil {
		d.Timestamp = *p.Timestamp
	}
	if p.Reason != nil {
		d.Reason = *p.Reason
	}
	if p.Doctor != nil {
		d.Doctor = *p.Doctor
	}
	if p.Location != nil {
		d.Location = *p.Location
	}
	if p.Diagnosis != nil {
		d.Diagnosis = *p.Diagnosis
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
}
