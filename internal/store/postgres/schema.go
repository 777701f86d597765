package postgres

// schema is idempotent; Migrate runs it on startup when store.auto_migrate
// is set. Aggregates other than jobs are stored as JSONB with the columns
// the pipeline filters on pulled out alongside.
const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id                TEXT PRIMARY KEY,
	title             TEXT NOT NULL,
	description       TEXT NOT NULL DEFAULT '',
	company           TEXT NOT NULL DEFAULT '',
	location          TEXT NOT NULL DEFAULT '',
	employment_type   TEXT NOT NULL DEFAULT '',
	experience_level  TEXT NOT NULL DEFAULT '',
	required_skills   TEXT NOT NULL DEFAULT '',
	salary_range      TEXT NOT NULL DEFAULT '',
	posted_by         TEXT NOT NULL DEFAULT '',
	max_candidates    INTEGER NOT NULL DEFAULT 0,
	application_count INTEGER NOT NULL DEFAULT 0 CHECK (application_count >= 0),
	status            TEXT NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL,
	updated_at        TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS applications (
	id         TEXT PRIMARY KEY,
	job_id     TEXT NOT NULL,
	status     TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL,
	data       JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_applications_job_id ON applications (job_id);

CREATE TABLE IF NOT EXISTS shortlisted_candidates (
	id             TEXT PRIMARY KEY,
	application_id TEXT NOT NULL UNIQUE,
	job_id         TEXT NOT NULL,
	rank           INTEGER NOT NULL,
	data           JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_shortlisted_job_id ON shortlisted_candidates (job_id);

CREATE TABLE IF NOT EXISTS interviews (
	id                       TEXT PRIMARY KEY,
	shortlisted_candidate_id TEXT NOT NULL,
	application_id           TEXT NOT NULL,
	interview_round          TEXT NOT NULL,
	status                   TEXT NOT NULL DEFAULT '',
	decision                 TEXT NOT NULL DEFAULT '',
	created_at               TIMESTAMPTZ NOT NULL,
	data                     JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_interviews_candidate ON interviews (shortlisted_candidate_id);
CREATE INDEX IF NOT EXISTS idx_interviews_round_decision ON interviews (interview_round, decision);
ALTER TABLE interviews ADD COLUMN IF NOT EXISTS status TEXT NOT NULL DEFAULT '';
CREATE UNIQUE INDEX IF NOT EXISTS uq_interviews_active ON interviews (shortlisted_candidate_id)
	WHERE status IN ('SCHEDULED', 'RESCHEDULED');

CREATE TABLE IF NOT EXISTS offer_letters (
	id             TEXT PRIMARY KEY,
	application_id TEXT NOT NULL UNIQUE,
	status         TEXT NOT NULL,
	generated_at   TIMESTAMPTZ NOT NULL,
	data           JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_offer_letters_status ON offer_letters (status);

CREATE TABLE IF NOT EXISTS onboardings (
	id              TEXT PRIMARY KEY,
	candidate_id    TEXT NOT NULL UNIQUE,
	offer_letter_id TEXT NOT NULL UNIQUE,
	data            JSONB NOT NULL
);
`
