package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"
)

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist. Money columns are cents.
// {{INT}} and {{BOOL}} are replaced per dialect.
// IMPORTANT: tables must be created in foreign key order.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    is_admin {{BOOL}} NOT NULL DEFAULT {{FALSE}},
    created_at {{INT}} NOT NULL,
    updated_at {{INT}} NOT NULL
);

CREATE TABLE IF NOT EXISTS groups (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at {{INT}} NOT NULL
);

CREATE TABLE IF NOT EXISTS group_members (
    group_id TEXT NOT NULL,
    user_id TEXT NOT NULL,
    role TEXT NOT NULL CHECK (role IN ('owner', 'editor', 'viewer')),
    joined_at {{INT}} NOT NULL,
    PRIMARY KEY (group_id, user_id),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS player_aliases (
    group_id TEXT NOT NULL,
    player_name TEXT NOT NULL,
    user_id TEXT NOT NULL,
    created_at {{INT}} NOT NULL,
    PRIMARY KEY (group_id, player_name),
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE,
    FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS poker_tables (
    id TEXT PRIMARY KEY,
    group_id TEXT NOT NULL,
    name TEXT NOT NULL,
    small_blind {{INT}} NOT NULL,
    big_blind {{INT}} NOT NULL,
    minimum_buy_in {{INT}} NOT NULL,
    location TEXT NOT NULL DEFAULT '',
    is_active {{BOOL}} NOT NULL DEFAULT {{TRUE}},
    food_player_id TEXT,
    game_date {{INT}} NOT NULL,
    created_at {{INT}} NOT NULL,
    FOREIGN KEY (group_id) REFERENCES groups(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS players (
    id TEXT PRIMARY KEY,
    table_id TEXT NOT NULL,
    name TEXT NOT NULL,
    nickname TEXT NOT NULL DEFAULT '',
    active {{BOOL}} NOT NULL DEFAULT {{TRUE}},
    chips {{INT}} NOT NULL DEFAULT 0,
    created_at {{INT}} NOT NULL,
    FOREIGN KEY (table_id) REFERENCES poker_tables(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS buy_ins (
    id TEXT PRIMARY KEY,
    player_id TEXT NOT NULL,
    amount {{INT}} NOT NULL CHECK (amount > 0),
    created_at {{INT}} NOT NULL,
    FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS cash_outs (
    id TEXT PRIMARY KEY,
    player_id TEXT NOT NULL,
    amount {{INT}} NOT NULL CHECK (amount >= 0),
    created_at {{INT}} NOT NULL,
    FOREIGN KEY (player_id) REFERENCES players(id) ON DELETE CASCADE
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_players_table_name ON players(table_id, lower(name), lower(nickname));
CREATE INDEX IF NOT EXISTS idx_group_members_user_id ON group_members(user_id);
CREATE INDEX IF NOT EXISTS idx_poker_tables_group_id ON poker_tables(group_id);
CREATE INDEX IF NOT EXISTS idx_players_table_id ON players(table_id);
CREATE INDEX IF NOT EXISTS idx_buy_ins_player_id ON buy_ins(player_id);
CREATE INDEX IF NOT EXISTS idx_cash_outs_player_id ON cash_outs(player_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB, dialect Dialect) error {
	var r *strings.Replacer
	switch dialect {
	case SQLite:
		r = strings.NewReplacer("{{INT}}", "INTEGER", "{{BOOL}}", "INTEGER", "{{TRUE}}", "1", "{{FALSE}}", "0")
	case Postgres:
		r = strings.NewReplacer("{{INT}}", "BIGINT", "{{BOOL}}", "BOOLEAN", "{{TRUE}}", "TRUE", "{{FALSE}}", "FALSE")
	default:
		return fmt.Errorf("unsupported database dialect %q", dialect)
	}

	for _, stmt := range strings.Split(r.Replace(schema), ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply %q: %w", firstLine(stmt), err)
		}
	}
	return nil
}

func firstLine(stmt string) string {
	stmt = strings.TrimSpace(stmt)
	if i := strings.IndexByte(stmt, '\n'); i >= 0 {
		return stmt[:i]
	}
	return stmt
}
