package models

import "time"

// Milestones, memories and reminders.

type Milestone struct {
	SyncMeta
	Title    string `json:"title" validate:"required,max=200"`
	Category string `json:"category,omitempty" validate:"omitempty,oneof=motor language social cognitive other"`
	PhotoURL string `json:"photo_url,omitempty" validate:"omitempty,url"`
	Notes    string `json:"notes,omitempty"`
}

type MilestonePatch struct {
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Title     *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Category  *string    `json:"category,omitempty" validate:"omitempty,oneof=motor language social cognitive other"`
	PhotoURL  *string    `json:"photo_url,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

func (p MilestonePatch) Apply(m *Milestone) {
	if p.Timestamp != nil {
		m.Timestamp = *p.Timestamp
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.PhotoURL != nil {
		m.PhotoURL = *p.PhotoURL
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
}

type Memory struct {
	SyncMeta
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty" validate:"omitempty,url"`
	Tags        string `json:"tags,omitempty" validate:"omitempty,max=500"`
}

type MemoryPatch struct {
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Title       *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string    `json:"description,omitempty"`
	PhotoURL    *string    `json:"photo_url,omitempty"`
	Tags        *string    `json:"tags,omitempty" validate:"omitempty,max=500"`
}

func (p MemoryPatch) Apply(m *Memory) {
	if p.Timestamp != nil {
		m.Timestamp = *p.Timestamp
	}
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Description != nil {
		m.Description = *p.Description
	}
	if p.PhotoURL != nil {
		m.PhotoURL = *p.PhotoURL
	}
	if p.Tags != nil {
		m.Tags = *p.Tags
	}
}

type Reminder struct {
	SyncMeta
	Title  string     `json:"title" validate:"required,max=200"`
	Kind   string     `json:"kind,omitempty" validate:"omitempty,oneof=feeding medication vaccination appointment custom"`
	DueAt  *time.Time `json:"due_at,omitempty"`
	Repeat string     `json:"repeat,omitempty" validate:"omitempty,oneof=none daily weekly monthly"`
	Done   bool       `json:"done"`
	Notes  string     `json:"notes,omitempty"`
}

type ReminderPatch struct {
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Title     *string    `json:"title,omitempty" validate:"omitempty,max=200"`
	Kind      *string    `json:"kind,omitempty" validate:"omitempty,oneof=feeding medication vaccination appointment custom"`
	DueAt     *time.Time `json:"due_at,omitempty"`
	Repeat    *string    `json:"repeat,omitempty" validate:"omitempty,oneof=none daily weekly monthly"`
	Done      *bool      `json:"done,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

func (p ReminderPatch) Apply(r *Reminder) {
	if p.Timestamp != nil {
		r.Timestamp = *p.Timestamp
	}
	if p.Title != nil {
		r.Title = *p.Title
	}
	if p.Kind != nil {
		r.Kind = *p.Kind
	}
	if p.DueAt != nil {
		r.DueAt = p.DueAt
	}
	if p.Repeat != nil {
		r.Repeat = *p.Repeat
	}
	if p.Done != nil {
		r.Done = *p.Done
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
}
