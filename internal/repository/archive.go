package repository

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"catalogscraper/internal/model"
)

// Archive mirrors merged records into Postgres so the latest scraped state of
// every product survives daily-file rotation.
type Archive struct {
	DB *sql.DB
}

func (r *Archive) Save(p model.Product) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return err
	}

	var exists bool
	err = r.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM product_archive WHERE product_id = $1)", p.ID).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		_, err = r.DB.Exec(`
			UPDATE product_archive
			SET permalink = $1, payload = $2, scraped_at = $3
			WHERE product_id = $4
		`, p.Permalink, payload, time.Now().UTC(), p.ID)
	} else {
		_, err = r.DB.Exec(`
			INSERT INTO product_archive
			(id, product_id, permalink, payload, scraped_at)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New().String(), p.ID, p.Permalink, payload, time.Now().UTC())
	}

	return err
}
