package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/lib/pq"

	"github.com/fr4nk3nst1ner/salarysim/internal/logger"
	"github.com/fr4nk3nst1ner/salarysim/internal/models"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// OpenPostgres opens a connection pool for the given DSN and verifies it.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return db, nil
}

// LoadPostgres reads every row of table. Rows with an unknown remote ratio or
// a negative salary are skipped, the same as the file loaders do.
func LoadPostgres(ctx context.Context, db *sql.DB, table string, log logger.Logger) ([]models.SalaryRecord, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}

	query := fmt.Sprintf(
		"SELECT job_title, experience_level, remote_ratio, salary FROM %s",
		table,
	)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var records []models.SalaryRecord
	skipped := 0
	for rows.Next() {
		var rec models.SalaryRecord
		if err := rows.Scan(&rec.JobTitle, &rec.ExperienceLevel, &rec.RemoteRatio, &rec.Salary); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		if _, err := models.RemoteCategoryFromRatio(rec.RemoteRatio); err != nil || rec.Salary < 0 {
			skipped++
			continue
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}

	if skipped > 0 {
		log.Warn("skipped invalid rows", map[string]interface{}{"source": "postgres", "table": table, "skipped": skipped})
	}
	log.Info("dataset loaded", map[string]interface{}{"source": "postgres", "table": table, "records": len(records)})

	return records, nil
}
