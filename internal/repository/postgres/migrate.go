package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is the full relational schema. Cascade rules: deleting a category
// removes its events; deleting an event removes its images and RSVP rows;
// deleting a user removes their RSVPs and organized events. The
// (event_id, user_id) unique constraint resolves duplicate RSVP submissions
// at the data layer.
const schema = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;

CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	salt          TEXT NOT NULL,
	first_name    TEXT NOT NULL DEFAULT '',
	last_name     TEXT NOT NULL DEFAULT '',
	phone         TEXT NOT NULL DEFAULT '',
	is_active     BOOLEAN NOT NULL DEFAULT FALSE,
	is_staff      BOOLEAN NOT NULL DEFAULT FALSE,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS groups (
	id   UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS user_groups (
	user_id  UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	group_id UUID NOT NULL REFERENCES groups (id) ON DELETE CASCADE,
	PRIMARY KEY (user_id, group_id)
);

CREATE TABLE IF NOT EXISTS categories (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS events (
	id           UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name         TEXT NOT NULL,
	description  TEXT NOT NULL DEFAULT '',
	event_date   DATE NOT NULL,
	event_time   TEXT NOT NULL DEFAULT '',
	location     TEXT NOT NULL,
	category_id  UUID REFERENCES categories (id) ON DELETE CASCADE,
	organizer_id UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_events_event_date ON events (event_date);
CREATE INDEX IF NOT EXISTS idx_events_organizer ON events (organizer_id);

CREATE TABLE IF NOT EXISTS event_images (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	event_id    UUID NOT NULL REFERENCES events (id) ON DELETE CASCADE,
	storage_key TEXT NOT NULL,
	url         TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_event_images_event ON event_images (event_id);

CREATE TABLE IF NOT EXISTS rsvps (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	event_id   UUID NOT NULL REFERENCES events (id) ON DELETE CASCADE,
	user_id    UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT rsvps_event_user_key UNIQUE (event_id, user_id)
);

CREATE TABLE IF NOT EXISTS activation_tokens (
	id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id     UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
	token_hash  TEXT NOT NULL,
	expires_at  TIMESTAMPTZ NOT NULL,
	consumed_at TIMESTAMPTZ
);

INSERT INTO groups (name) VALUES ('Admin'), ('Organizer'), ('User')
ON CONFLICT (name) DO NOTHING;
`

// Migrate creates missing tables and seeds the built-in groups. It is safe
// to run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
