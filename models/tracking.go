package models

import "time"

// Day-to-day tracking records. The embedded Timestamp is the domain event
// time (when the feeding happened, when sleep started), supplied by the
// caregiver, not the insert time.

type Feeding struct {
	SyncMeta
	Type        string  `json:"type" validate:"required,oneof=breast bottle solid"`
	Side        string  `json:"side,omitempty" validate:"omitempty,oneof=left right both"`
	AmountML    float64 `json:"amount_ml,omitempty" validate:"omitempty,gte=0"`
	DurationMin int     `json:"duration_min,omitempty" validate:"omitempty,gte=0"`
	Notes       string  `json:"notes,omitempty"`
}

type FeedingPatch struct {
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Type        *string    `json:"type,omitempty" validate:"omitempty,oneof=breast bottle solid"`
	Side        *string    `json:"side,omitempty" validate:"omitempty,oneof=left right both"`
	AmountML    *float64   `json:"amount_ml,omitempty" validate:"omitempty,gte=0"`
	DurationMin *int       `json:"duration_min,omitempty" validate:"omitempty,gte=0"`
	Notes       *string    `json:"notes,omitempty"`
}

func (p FeedingPatch) Apply(f *Feeding) {
	if p.Timestamp != nil {
		f.Timestamp = *p.Timestamp
	}
	if p.Type != nil {
		f.Type = *p.Type
	}
	if p.Side != nil {
		f.Side = *p.Side
	}
	if p.AmountML != nil {
		f.AmountML = *p.AmountML
	}
	if p.DurationMin != nil {
		f.DurationMin = *p.DurationMin
	}
	if p.Notes != nil {
		f.Notes = *p.Notes
	}
}

type Sleep struct {
	SyncMeta
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	DurationMin int        `json:"duration_min,omitempty" validate:"omitempty,gte=0"`
	Location    string     `json:"location,omitempty" validate:"omitempty,max=100"`
	Quality     string     `json:"quality,omitempty" validate:"omitempty,oneof=good fair poor"`
	Notes       string     `json:"notes,omitempty"`
}

type SleepPatch struct {
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
	DurationMin *int       `json:"duration_min,omitempty" validate:"omitempty,gte=0"`
	Location    *string    `json:"location,omitempty" validate:"omitempty,max=100"`
	Quality     *string    `json:"quality,omitempty" validate:"omitempty,oneof=good fair poor"`
	Notes       *string    `json:"notes,omitempty"`
}

func (p SleepPatch) Apply(s *Sleep) {
	if p.Timestamp != nil {
		s.Timestamp = *p.Timestamp
	}
	if p.EndedAt != nil {
		s.EndedAt = p.EndedAt
	}
	if p.DurationMin != nil {
		s.DurationMin = *p.DurationMin
	}
	if p.Location != nil {
		s.Location = *p.Location
	}
	if p.Quality != nil {
		s.Quality = *p.Quality
	}
	if p.Notes != nil {
		s.Notes = *p.Notes
	}
}

type Diaper struct {
	SyncMeta
	Type        string `json:"type" validate:"required,oneof=wet dirty mixed dry"`
	Color       string `json:"color,omitempty" validate:"omitempty,max=50"`
	Consistency string `json:"consistency,omitempty" validate:"omitempty,max=50"`
	Notes       string `json:"notes,omitempty"`
}

type DiaperPatch struct {
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Type        *string    `json:"type,omitempty" validate:"omitempty,oneof=wet dirty mixed dry"`
	Color       *string    `json:"color,omitempty" validate:"omitempty,max=50"`
	Consistency *string    `json:"consistency,omitempty" validate:"omitempty,max=50"`
	Notes       *string    `json:"notes,omitempty"`
}

func (p DiaperPatch) Apply(d *Diaper) {
	if p.Timestamp != nil {
		d.Timestamp = *p.Timestamp
	}
	if p.Type != nil {
		d.Type = *p.Type
	}
	if p.Color != nil {
		d.Color = *p.Color
	}
	if p.Consistency != nil {
		d.Consistency = *p.Consistency
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
}

type Growth struct {
	SyncMeta
	WeightKG    float64 `json:"weight_kg,omitempty" validate:"omitempty,gte=0"`
	HeightCM    float64 `json:"height_cm,omitempty" validate:"omitempty,gte=0"`
	HeadCircCM  float64 `json:"head_circ_cm,omitempty" validate:"omitempty,gte=0"`
	Notes       string  `json:"notes,omitempty"`
}

type GrowthPatch struct {
	Timestamp  *time.Time `json:"timestamp,omitempty"`
	WeightKG   *float64   `json:"weight_kg,omitempty" validate:"omitempty,gte=0"`
	HeightCM   *float64   `json:"height_cm,omitempty" validate:"omitempty,gte=0"`
	HeadCircCM *float64   `json:"head_circ_cm,omitempty" validate:"omitempty,gte=0"`
	Notes      *string    `json:"notes,omitempty"`
}

func (p GrowthPatch) Apply(g *Growth) {
	if p.Timestamp != nil {
		g.Timestamp = *p.Timestamp
	}
	if p.WeightKG != nil {
		g.WeightKG = *p.WeightKG
	}
	if p.HeightCM != nil {
		g.HeightCM = *p.HeightCM
	}
	if p.HeadCircCM != nil {
		g.HeadCircCM = *p.HeadCircCM
	}
	if p.Notes != nil {
		g.Notes = *p.Notes
	}
}

type Activity struct {
	SyncMeta
	Type        string `json:"type" validate:"required,oneof=tummy-time bath play walk outdoors reading other"`
	DurationMin int    `json:"duration_min,omitempty" validate:"omitempty,gte=0"`
	Notes       string `json:"notes,omitempty"`
}

type ActivityPatch struct {
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Type        *string    `json:"type,omitempty" validate:"omitempty,oneof=tummy-time bath play walk outdoors reading other"`
	DurationMin *int       `json:"duration_min,omitempty" validate:"omitempty,gte=0"`
	Notes       *string    `json:"notes,omitempty"`
}

func (p ActivityPatch) Apply(a *Activity) {
	if p.Timestamp != nil {
		a.Timestamp = *p.Timestamp
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.DurationMin != nil {
		a.DurationMin = *p.DurationMin
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
}
