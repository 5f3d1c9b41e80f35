package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/csg33k/salesproj/internal/domain"
)

// Directory reads representatives from the local SQLite lookup table.
type Directory struct {
	db *sql.DB
}

// New opens the SQLite database. Schema migrations are managed by dbmate;
// run `dbmate up` before starting the server.
func New(dsn string) (*Directory, error) {
	db, err := sql.Open("sqlite3", dsn+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	return &Directory{db: db}, nil
}

func (d *Directory) Close() error {
	return d.db.Close()
}

// LoadRepresentatives returns active representatives in selector order.
func (d *Directory) LoadRepresentatives(ctx context.Context) ([]domain.Representative, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, name
		FROM representatives
		WHERE active = 1
		ORDER BY sort_order, id`)
	if err != nil {
		return nil, fmt.Errorf("query representatives: %w", err)
	}
	defer rows.Close()

	var out []domain.Representative
	for rows.Next() {
		var r domain.Representative
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, fmt.Errorf("scan representative: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate representatives: %w", err)
	}
	return out, nil
}
