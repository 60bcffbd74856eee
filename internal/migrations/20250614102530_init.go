package migrations

import (
	"database/sql"

	"github.com/pressly/goose/v3"
)

func init() {
	goose.AddMigration(upInit, downInit)
}

func upInit(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE failed_posts (
		id SERIAL PRIMARY KEY,
		url VARCHAR NOT NULL,
		reason VARCHAR,
		created_at TIMESTAMP NOT NULL DEFAULT NOW()
	);
	CREATE UNIQUE INDEX failed_posts_url_idx ON failed_posts (url);
	`)
	if err != nil {
		return err
	}
	return nil
}

func downInit(tx *sql.Tx) error {
	_, err := tx.Exec(`
	DROP TABLE failed_posts;
	`)
	if err != nil {
		return err
	}
	return nil
}
