package store

// Timestamps are stored as Unix milliseconds so both drivers scan them the
// same way. JSON payloads are stored as text.

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS questions (
		id              TEXT PRIMARY KEY,
		content_hash    TEXT NOT NULL UNIQUE,
		stimulus        TEXT NOT NULL,
		question_stem   TEXT NOT NULL,
		options         TEXT NOT NULL,
		correct_answer  TEXT,
		source_type     TEXT NOT NULL,
		answer_conflict BOOLEAN NOT NULL DEFAULT 0,
		source_id       TEXT,
		created_at      INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS analyses (
		id          TEXT PRIMARY KEY,
		question_id TEXT NOT NULL UNIQUE REFERENCES questions(id) ON DELETE CASCADE,
		method      TEXT NOT NULL,
		diagram     TEXT NOT NULL,
		steps       TEXT NOT NULL,
		summary     TEXT,
		skill_point TEXT,
		takeaway    TEXT,
		created_at  INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS option_analyses (
		id            TEXT PRIMARY KEY,
		question_id   TEXT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		option_letter TEXT NOT NULL,
		is_correct    BOOLEAN NOT NULL,
		content_brief TEXT,
		why_correct   TEXT,
		error         TEXT,
		UNIQUE (question_id, option_letter)
	)`,
	`CREATE TABLE IF NOT EXISTS attempts (
		id                  TEXT PRIMARY KEY,
		user_id             TEXT NOT NULL,
		question_id         TEXT NOT NULL,
		user_choice         TEXT NOT NULL,
		is_correct          BOOLEAN NOT NULL,
		error_type          TEXT,
		user_difficulty     INTEGER,
		alt_choice          TEXT,
		alt_rationale_tag   TEXT,
		alt_rationale_text  TEXT,
		user_correct_answer TEXT,
		user_note           TEXT,
		created_at          INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS attempts_user_created ON attempts (user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS llm_events (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp     INTEGER NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		latency_ms    INTEGER NOT NULL,
		success       BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS questions (
		id              TEXT PRIMARY KEY,
		content_hash    TEXT NOT NULL UNIQUE,
		stimulus        TEXT NOT NULL,
		question_stem   TEXT NOT NULL,
		options         TEXT NOT NULL,
		correct_answer  TEXT,
		source_type     TEXT NOT NULL,
		answer_conflict BOOLEAN NOT NULL DEFAULT FALSE,
		source_id       TEXT,
		created_at      BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS analyses (
		id          TEXT PRIMARY KEY,
		question_id TEXT NOT NULL UNIQUE REFERENCES questions(id) ON DELETE CASCADE,
		method      TEXT NOT NULL,
		diagram     TEXT NOT NULL,
		steps       TEXT NOT NULL,
		summary     TEXT,
		skill_point TEXT,
		takeaway    TEXT,
		created_at  BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS option_analyses (
		id            TEXT PRIMARY KEY,
		question_id   TEXT NOT NULL REFERENCES questions(id) ON DELETE CASCADE,
		option_letter TEXT NOT NULL,
		is_correct    BOOLEAN NOT NULL,
		content_brief TEXT,
		why_correct   TEXT,
		error         TEXT,
		UNIQUE (question_id, option_letter)
	)`,
	`CREATE TABLE IF NOT EXISTS attempts (
		id                  TEXT PRIMARY KEY,
		user_id             TEXT NOT NULL,
		question_id         TEXT NOT NULL,
		user_choice         TEXT NOT NULL,
		is_correct          BOOLEAN NOT NULL,
		error_type          TEXT,
		user_difficulty     INTEGER,
		alt_choice          TEXT,
		alt_rationale_tag   TEXT,
		alt_rationale_text  TEXT,
		user_correct_answer TEXT,
		user_note           TEXT,
		created_at          BIGINT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS attempts_user_created ON attempts (user_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS llm_events (
		id            BIGSERIAL PRIMARY KEY,
		timestamp     BIGINT NOT NULL,
		provider      TEXT NOT NULL,
		model         TEXT NOT NULL,
		purpose       TEXT NOT NULL,
		input_tokens  INTEGER NOT NULL,
		output_tokens INTEGER NOT NULL,
		latency_ms    BIGINT NOT NULL,
		success       BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body  TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,
}
