package models

// Baby is the tracked subject every other record hangs off. Its ParentID
// scopes it to a caregiver account rather than another row.
type Baby struct {
	SyncMeta
	Name      string `json:"name" validate:"required,max=100"`
	BirthDate string `json:"birth_date" validate:"required,dateformat"`
	Gender    string `json:"gender" validate:"omitempty,oneof=female male other"`
	PhotoURL  string `json:"photo_url,omitempty" validate:"omitempty,url"`
	Notes     string `json:"notes,omitempty"`
}

type BabyPatch struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,max=100"`
	BirthDate *string `json:"birth_date,omitempty" validate:"omitempty,dateformat"`
	Gender    *string `json:"gender,omitempty" validate:"omitempty,oneof=female male other"`
	PhotoURL  *string `json:"photo_url,omitempty"`
	Notes     *string `json:"notes,omitempty"`
}

func (p BabyPatch) Apply(b *Baby) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.BirthDate != nil {
		b.BirthDate = *p.BirthDate
	}
	if p.Gender != nil {
		b.Gender = *p.Gender
	}
	if p.PhotoURL != nil {
		b.PhotoURL = *p.PhotoURL
	}
	if p.Notes != nil {
		b.Notes = *p.Notes
	}
}
