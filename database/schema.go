package database

// Every entity table carries the same ten base columns ahead of its
// domain columns. parent_id on child tables references babies(id) with
// ON DELETE CASCADE; the cascade only ever fires during WipeAll, since
// ordinary deletes are soft.
const baseColumns = `
		id TEXT PRIMARY KEY,
		parent_id TEXT NOT NULL,
		actor_id TEXT,
		timestamp DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		synced_at DATETIME,
		is_deleted INTEGER NOT NULL DEFAULT 0,
		local_sync_status TEXT NOT NULL DEFAULT 'pending',
		server_version INTEGER`

var domainColumns = map[string]string{
	"babies": `
		name TEXT NOT NULL,
		birth_date TEXT NOT NULL,
		gender TEXT,
		photo_url TEXT,
		notes TEXT`,
	"feedings": `
		type TEXT NOT NULL,
		side TEXT,
		amount_ml REAL,
		duration_min INTEGER,
		notes TEXT`,
	"sleeps": `
		ended_at DATETIME,
		duration_min INTEGER,
		location TEXT,
		quality TEXT,
		notes TEXT`,
	"diapers": `
		type TEXT NOT NULL,
		color TEXT,
		consistency TEXT,
		notes TEXT`,
	"growth_entries": `
		weight_kg REAL,
		height_cm REAL,
		head_circ_cm REAL,
		notes TEXT`,
	"milestones": `
		title TEXT NOT NULL,
		category TEXT,
		photo_url TEXT,
		notes TEXT`,
	"memories": `
		title TEXT NOT NULL,
		description TEXT,
		photo_url TEXT,
		tags TEXT`,
	"activities": `
		type TEXT NOT NULL,
		duration_min INTEGER,
		notes TEXT`,
	"medications": `
		name TEXT NOT NULL,
		dose REAL,
		unit TEXT,
		route TEXT,
		reason TEXT,
		notes TEXT`,
	"vaccinations": `
		vaccine TEXT NOT NULL,
		dose TEXT,
		site TEXT,
		lot_no TEXT,
		notes TEXT`,
	"symptoms": `
		name TEXT NOT NULL,
		severity TEXT,
		temperature_c REAL,
		notes TEXT`,
	"doctor_visits": `
		reason TEXT NOT NULL,
		doctor TEXT,
		location TEXT,
		diagnosis TEXT,
		notes TEXT`,
	"reminders": `
		title TEXT NOT NULL,
		kind TEXT,
		due_at DATETIME,
		repeat TEXT,
		done INTEGER NOT NULL DEFAULT 0,
		notes TEXT`,
}

const queueTable = `CREATE TABLE IF NOT EXISTS sync_queue (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		entity_type TEXT NOT NULL,
		entity_id TEXT NOT NULL,
		operation TEXT NOT NULL,
		data TEXT NOT NULL,
		timestamp DATETIME NOT NULL,
		actor_id TEXT,
		retry_count INTEGER NOT NULL DEFAULT 0,
		last_error TEXT
	)`

func entityTableDDL(name string) string {
	ddl := "CREATE TABLE IF NOT EXISTS " + name + " (" + baseColumns + "," + domainColumns[name]
	if name != "babies" {
		ddl += `,
		FOREIGN KEY (parent_id) REFERENCES babies(id) ON DELETE CASCADE`
	}
	return ddl + `
	)`
}

func schemaStatements() []string {
	queries := make([]string, 0, 3*len(entityTableNames)+2)

	// Parent table first so child FKs resolve
	queries = append(queries, entityTableDDL("babies"))
	for _, name := range childTables {
		queries = append(queries, entityTableDDL(name))
	}
	queries = append(queries, queueTable)

	// Indexes for performance
	for _, name := range allEntityTables() {
		queries = append(queries,
			"CREATE INDEX IF NOT EXISTS idx_"+name+"_parent_ts ON "+name+"(parent_id, timestamp DESC)",
			"CREATE INDEX IF NOT EXISTS idx_"+name+"_pending ON "+name+"(local_sync_status) WHERE local_sync_status = 'pending'",
		)
	}
	queries = append(queries, "CREATE INDEX IF NOT EXISTS idx_sync_queue_order ON sync_queue(timestamp, seq)")

	return queries
}
