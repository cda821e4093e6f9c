package app

import (
	"log/slog"

	"hatchling/database"
	"hatchling/models"
	"hatchling/validator"
)

// Repos holds one repository per tracked entity kind, all sharing the
// same store and change queue.
type Repos struct {
	Babies       *database.Repository[*models.Baby]
	Feedings     *database.Repository[*models.Feeding]
	Sleeps       *database.Repository[*models.Sleep]
	Diapers      *database.Repository[*models.Diaper]
	Growth       *database.Repository[*models.Growth]
	Milestones   *database.Repository[*models.Milestone]
	Memories     *database.Repository[*models.Memory]
	Activities   *database.Repository[*models.Activity]
	Medications  *database.Repository[*models.Medication]
	Vaccinations *database.Repository[*models.Vaccination]
	Symptoms     *database.Repository[*models.Symptom]
	DoctorVisits *database.Repository[*models.DoctorVisit]
	Reminders    *database.Repository[*models.Reminder]
}

func NewRepos(store *database.Store) *Repos {
	return &Repos{
		Babies:       database.NewRepository(store, database.Babies),
		Feedings:     database.NewRepository(store, database.Feedings),
		Sleeps:       database.NewRepository(store, database.Sleeps),
		Diapers:      database.NewRepository(store, database.Diapers),
		Growth:       database.NewRepository(store, database.GrowthEntries),
		Milestones:   database.NewRepository(store, database.Milestones),
		Memories:     database.NewRepository(store, database.Memories),
		Activities:   database.NewRepository(store, database.Activities),
		Medications:  database.NewRepository(store, database.Medications),
		Vaccinations: database.NewRepository(store, database.Vaccinations),
		Symptoms:     database.NewRepository(store, database.Symptoms),
		DoctorVisits: database.NewRepository(store, database.DoctorVisits),
		Reminders:    database.NewRepository(store, database.Reminders),
	}
}

// App holds all application dependencies
// This struct is the central point for dependency injection
type App struct {
	Store     *database.Store
	Repos     *Repos
	Queue     *database.Queue
	Validator *validator.Validator
	Logger    *slog.Logger
}

// New creates a new App instance with all dependencies
func New(store *database.Store, logger *slog.Logger) *App {
	return &App{
		Store:     store,
		Repos:     NewRepos(store),
		Queue:     database.NewQueue(store),
		Validator: validator.New(),
		Logger:    logger,
	}
}
