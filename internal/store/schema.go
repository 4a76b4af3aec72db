package store

import "strings"

const schema = `
CREATE TABLE IF NOT EXISTS profiles (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL,
    username TEXT UNIQUE,
    full_name TEXT,
    plan TEXT NOT NULL DEFAULT 'free',
    is_premium BOOLEAN NOT NULL DEFAULT FALSE,
    plan_expires_at {{timestamp}},
    created_at {{timestamp}} NOT NULL,
    updated_at {{timestamp}} NOT NULL
);

CREATE TABLE IF NOT EXISTS api_keys (
    key_hash TEXT PRIMARY KEY,
    account_id TEXT NOT NULL REFERENCES profiles(id),
    created_at {{timestamp}} NOT NULL,
    last_used {{timestamp}}
);
CREATE INDEX IF NOT EXISTS idx_api_keys_account ON api_keys(account_id);

CREATE TABLE IF NOT EXISTS habits (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    name TEXT NOT NULL,
    icon_key TEXT,
    best_streak INTEGER NOT NULL DEFAULT 0,
    is_deleted BOOLEAN NOT NULL DEFAULT FALSE,
    created_at {{timestamp}} NOT NULL,
    updated_at {{timestamp}} NOT NULL,
    deleted_at {{timestamp}}
);
CREATE INDEX IF NOT EXISTS idx_habits_user ON habits(user_id);

CREATE TABLE IF NOT EXISTS habit_logs (
    habit_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    log_date TEXT NOT NULL,
    status TEXT NOT NULL CHECK(status IN ('completed', 'failed')),
    PRIMARY KEY (habit_id, log_date)
);
CREATE INDEX IF NOT EXISTS idx_habit_logs_user ON habit_logs(user_id);

CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    title TEXT NOT NULL,
    content TEXT NOT NULL,
    color TEXT,
    created_at {{timestamp}} NOT NULL,
    updated_at {{timestamp}} NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_notes_user ON notes(user_id);

CREATE TABLE IF NOT EXISTS todos (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    type TEXT NOT NULL CHECK(type IN ('task', 'yearly', 'monthly')),
    title TEXT NOT NULL,
    is_completed BOOLEAN NOT NULL DEFAULT FALSE,
    background_color TEXT,
    created_at {{timestamp}} NOT NULL,
    updated_at {{timestamp}} NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_todos_user ON todos(user_id, type);

CREATE TABLE IF NOT EXISTS shelf_items (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    shelf TEXT NOT NULL CHECK(shelf IN ('reading', 'watch')),
    title TEXT NOT NULL,
    author TEXT NOT NULL DEFAULT '',
    actor_actress TEXT NOT NULL DEFAULT '',
    director TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    status TEXT NOT NULL,
    background_color TEXT,
    created_at {{timestamp}} NOT NULL,
    updated_at {{timestamp}} NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_shelf_items_user ON shelf_items(user_id, shelf, status);

CREATE TABLE IF NOT EXISTS journal_entries (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    entry_date TEXT NOT NULL,
    thoughts TEXT NOT NULL DEFAULT '',
    good_things TEXT NOT NULL DEFAULT '',
    bad_things TEXT NOT NULL DEFAULT '',
    lessons TEXT NOT NULL DEFAULT '',
    dreams TEXT NOT NULL DEFAULT '',
    mood TEXT,
    created_at {{timestamp}} NOT NULL,
    updated_at {{timestamp}} NOT NULL,
    UNIQUE (user_id, entry_date)
);

CREATE TABLE IF NOT EXISTS source_dumps (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    title TEXT NOT NULL,
    links TEXT NOT NULL DEFAULT '',
    text_content TEXT NOT NULL DEFAULT '',
    screenshots TEXT NOT NULL DEFAULT '[]',
    background_color TEXT,
    created_at {{timestamp}} NOT NULL,
    updated_at {{timestamp}} NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_source_dumps_user ON source_dumps(user_id);

CREATE TABLE IF NOT EXISTS pomodoro_settings (
    user_id TEXT PRIMARY KEY,
    pomodoro_minutes INTEGER NOT NULL DEFAULT 20,
    short_break_minutes INTEGER NOT NULL DEFAULT 5,
    long_break_minutes INTEGER NOT NULL DEFAULT 15,
    long_break_after_sessions INTEGER NOT NULL DEFAULT 2,
    play_sound BOOLEAN NOT NULL DEFAULT TRUE,
    updated_at {{timestamp}} NOT NULL
);

CREATE TABLE IF NOT EXISTS pomodoro_sessions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    mode TEXT NOT NULL CHECK(mode IN ('pomodoro', 'short_break', 'long_break')),
    started_at {{timestamp}} NOT NULL,
    ended_at {{timestamp}} NOT NULL,
    duration_seconds INTEGER NOT NULL,
    completed BOOLEAN NOT NULL DEFAULT TRUE,
    created_at {{timestamp}} NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pomodoro_sessions_user ON pomodoro_sessions(user_id, mode, ended_at);

CREATE TABLE IF NOT EXISTS feedback (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES profiles(id),
    message TEXT NOT NULL,
    created_at {{timestamp}} NOT NULL
);

CREATE TABLE IF NOT EXISTS activity_log (
    id {{serial}},
    account_id TEXT NOT NULL,
    activity_type TEXT NOT NULL,
    summary TEXT NOT NULL,
    details TEXT NOT NULL DEFAULT '',
    created_at {{timestamp}} NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activity_account ON activity_log(account_id, created_at);

CREATE TABLE IF NOT EXISTS guest_storage (
    storage_key TEXT PRIMARY KEY,
    value TEXT NOT NULL,
    updated_at {{timestamp}} NOT NULL
);
`

func schemaFor(driver string) string {
	r := strings.NewReplacer(
		"{{timestamp}}", "TIMESTAMP",
		"{{serial}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
	)
	if driver == DriverPostgres {
		r = strings.NewReplacer(
			"{{timestamp}}", "TIMESTAMPTZ",
			"{{serial}}", "BIGSERIAL PRIMARY KEY",
		)
	}
	return r.Replace(schema)
}
