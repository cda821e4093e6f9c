package database

import "hatchling/models"

// childTables is every entity table hanging off babies, and doubles as
// the wipe order prefix (children before parents).
var childTables = []string{
	"feedings", "sleeps", "diapers", "growth_entries",
	"milestones", "memories", "activities", "medications",
	"vaccinations", "symptoms", "doctor_visits", "reminders",
}

// entityTableNames maps the wire entity type to its table, for the
// cross-entity operations (MarkSynced) driven by the sync coordinator.
var entityTableNames = map[string]string{
	"baby":         "babies",
	"feeding":      "feedings",
	"sleep":        "sleeps",
	"diaper":       "diapers",
	"growth":       "growth_entries",
	"milestone":    "milestones",
	"memory":       "memories",
	"activity":     "activities",
	"medication":   "medications",
	"vaccination":  "vaccinations",
	"symptom":      "symptoms",
	"doctor_visit": "doctor_visits",
	"reminder":     "reminders",
}

func tableNameFor(entityType string) (string, bool) {
	name, ok := entityTableNames[entityType]
	return name, ok
}

func allEntityTables() []string {
	return append([]string{"babies"}, childTables...)
}

func wipeOrder() []string {
	return append(append([]string{}, childTables...), "babies", "sync_queue")
}

var Babies = Table[*models.Baby]{
	Name:       "babies",
	EntityType: "baby",
	Columns:    []string{"name", "birth_date", "gender", "photo_url", "notes"},
	Children:   childTables,
	New:        func() *models.Baby { return &models.Baby{} },
	Values: func(b *models.Baby) []any {
		return []any{b.Name, b.BirthDate, b.Gender, b.PhotoURL, b.Notes}
	},
	Dest: func(b *models.Baby) []any {
		return []any{&b.Name, &b.BirthDate, &b.Gender, &b.PhotoURL, &b.Notes}
	},
}

var Feedings = Table[*models.Feeding]{
	Name:       "feedings",
	EntityType: "feeding",
	Columns:    []string{"type", "side", "amount_ml", "duration_min", "notes"},
	New:        func() *models.Feeding { return &models.Feeding{} },
	Values: func(f *models.Feeding) []any {
		return []any{f.Type, f.Side, f.AmountML, f.DurationMin, f.Notes}
	},
	Dest: func(f *models.Feeding) []any {
		return []any{&f.Type, &f.Side, &f.AmountML, &f.DurationMin, &f.Notes}
	},
}

var Sleeps = Table[*models.Sleep]{
	Name:       "sleeps",
	EntityType: "sleep",
	Columns:    []string{"ended_at", "duration_min", "location", "quality", "notes"},
	New:        func() *models.Sleep { return &models.Sleep{} },
	Values: func(s *models.Sleep) []any {
		return []any{s.EndedAt, s.DurationMin, s.Location, s.Quality, s.Notes}
	},
	Dest: func(s *models.Sleep) []any {
		return []any{&s.EndedAt, &s.DurationMin, &s.Location, &s.Quality, &s.Notes}
	},
}

var Diapers = Table[*models.Diaper]{
	Name:       "diapers",
	EntityType: "diaper",
	Columns:    []string{"type", "color", "consistency", "notes"},
	New:        func() *models.Diaper { return &models.Diaper{} },
	Values: func(d *models.Diaper) []any {
		return []any{d.Type, d.Color, d.Consistency, d.Notes}
	},
	Dest: func(d *models.Diaper) []any {
		return []any{&d.Type, &d.Color, &d.Consistency, &d.Notes}
	},
}

var GrowthEntries = Table[*models.Growth]{
	Name:       "growth_entries",
	EntityType: "growth",
	Columns:    []string{"weight_kg", "height_cm", "head_circ_cm", "notes"},
	New:        func() *models.Growth { return &models.Growth{} },
	Values: func(g *models.Growth) []any {
		return []any{g.WeightKG, g.HeightCM, g.HeadCircCM, g.Notes}
	},
	Dest: func(g *models.Growth) []any {
		return []any{&g.WeightKG, &g.HeightCM, &g.HeadCircCM, &g.Notes}
	},
}

var Milestones = Table[*models.Milestone]{
	Name:       "milestones",
	EntityType: "milestone",
	Columns:    []string{"title", "category", "photo_url", "notes"},
	New:        func() *models.Milestone { return &models.Milestone{} },
	Values: func(m *models.Milestone) []any {
		return []any{m.Title, m.Category, m.PhotoURL, m.Notes}
	},
	Dest: func(m *models.Milestone) []any {
		return []any{&m.Title, &m.Category, &m.PhotoURL, &m.Notes}
	},
}

var Memories = Table[*models.Memory]{
	Name:       "memories",
	EntityType: "memory",
	Columns:    []string{"title", "description", "photo_url", "tags"},
	New:        func() *models.Memory { return &models.Memory{} },
	Values: func(m *models.Memory) []any {
		return []any{m.Title, m.Description, m.PhotoURL, m.Tags}
	},
	Dest: func(m *models.Memory) []any {
		return []any{&m.Title, &m.Description, &m.PhotoURL, &m.Tags}
	},
}

var Activities = Table[*models.Activity]{
	Name:       "activities",
	EntityType: "activity",
	Columns:    []string{"type", "duration_min", "notes"},
	New:        func() *models.Activity { return &models.Activity{} },
	Values: func(a *models.Activity) []any {
		return []any{a.Type, a.DurationMin, a.Notes}
	},
	Dest: func(a *models.Activity) []any {
		return []any{&a.Type, &a.DurationMin, &a.Notes}
	},
}

var Medications = Table[*models.Medication]{
	Name:       "medications",
	EntityType: "medication",
	Columns:    []string{"name", "dose", "unit", "route", "reason", "notes"},
	New:        func() *models.Medication { return &models.Medication{} },
	Values: func(m *models.Medication) []any {
		return []any{m.Name, m.Dose, m.Unit, m.Route, m.Reason, m.Notes}
	},
	Dest: func(m *models.Medication) []any {
		return []any{&m.Name, &m.Dose, &m.Unit, &m.Route, &m.Reason, &m.Notes}
	},
}

var Vaccinations = Table[*models.Vaccination]{
	Name:       "vaccinations",
	EntityType: "vaccination",
	Columns:    []string{"vaccine", "dose", "site", "lot_no", "notes"},
	New:        func() *models.Vaccination { return &models.Vaccination{} },
	Values: func(v *models.Vaccination) []any {
		return []any{v.Vaccine, v.Dose, v.Site, v.LotNo, v.Notes}
	},
	Dest: func(v *models.Vaccination) []any {
		return []any{&v.Vaccine, &v.Dose, &v.Site, &v.LotNo, &v.Notes}
	},
}

var Symptoms = Table[*models.Symptom]{
	Name:       "symptoms",
	EntityType: "symptom",
	Columns:    []string{"name", "severity", "temperature_c", "notes"},
	New:        func() *models.Symptom { return &models.Symptom{} },
	Values: func(s *models.Symptom) []any {
		return []any{s.Name, s.Severity, s.TemperatureC, s.Notes}
	},
	Dest: func(s *models.Symptom) []any {
		return []any{&s.Name, &s.Severity, &s.TemperatureC, &s.Notes}
	},
}

var DoctorVisits = Table[*models.DoctorVisit]{
	Name:       "doctor_visits",
	EntityType: "doctor_visit",
	Columns:    []string{"reason", "doctor", "location", "diagnosis", "notes"},
	New:        func() *models.DoctorVisit { return &models.DoctorVisit{} },
	Values: func(d *models.DoctorVisit) []any {
		return []any{d.Reason, d.Doctor, d.Location, d.Diagnosis, d.Notes}
	},
	Dest: func(d *models.DoctorVisit) []any {
		return []any{&d.Reason, &d.Doctor, &d.Location, &d.Diagnosis, &d.Notes}
	},
}

var Reminders = Table[*models.Reminder]{
	Name:       "reminders",
	EntityType: "reminder",
	Columns:    []string{"title", "kind", "due_at", "repeat", "done", "notes"},
	New:        func() *models.Reminder { return &models.Reminder{} },
	Values: func(r *models.Reminder) []any {
		return []any{r.Title, r.Kind, r.DueAt, r.Repeat, r.Done, r.Notes}
	},
	Dest: func(r *models.Reminder) []any {
		return []any{&r.Title, &r.Kind, &r.DueAt, &r.Repeat, &r.Done, &r.Notes}
	},
}
