package infra

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/baechuer/real-time-ressys/services/listing-service/internal/domain"
	pg "github.com/baechuer/real-time-ressys/services/listing-service/internal/infrastructure/db/postgres"
)

//go:embed schema.sql
var schema string

// Postgres is a throwaway database with the listing schema applied.
type Postgres struct {
	Container *postgres.PostgresContainer
	DB        *sql.DB
	DSN       string
}

func StartPostgres(ctx context.Context, driver string) (*Postgres, error) {
	c, err := postgres.Run(ctx, "postgres:17",
		postgres.WithDatabase("listing"),
		postgres.WithUsername("listing"),
		postgres.WithPassword("listing"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start postgres: %w", err)
	}

	dsn, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("connection string: %w", err)
	}

	db, err := pg.Open(ctx, dsn, pg.PoolConfig{Driver: driver, MaxOpenConns: 5, MaxIdleConns: 2})
	if err != nil {
		_ = c.Terminate(ctx)
		return nil, err
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		_ = c.Terminate(ctx)
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Postgres{Container: c, DB: db, DSN: dsn}, nil
}

func (p *Postgres) Close(ctx context.Context) error {
	_ = p.DB.Close()
	return p.Container.Terminate(ctx)
}

func (p *Postgres) Reset(ctx context.Context) error {
	_, err := p.DB.ExecContext(ctx, `TRUNCATE TABLE eventregistration, eventview, event`)
	return err
}

func (p *Postgres) InsertEvent(ctx context.Context, e *domain.Event) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO event (id, name, summary, description, start_date, end_date, photo_url,
			location_city, location_uf, event_type, pricing_type, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ID, e.Name, e.Summary, e.Description, e.StartDate, e.EndDate, e.PhotoURL,
		e.City, e.Region, string(e.Modality), string(e.Pricing), e.Category,
	)
	return err
}

func (p *Postgres) AddViews(ctx context.Context, eventID string, n int) error {
	for i := 0; i < n; i++ {
		if _, err := p.DB.ExecContext(ctx,
			`INSERT INTO eventview (id, event_id) VALUES ($1, $2)`, uuid.NewString(), eventID); err != nil {
			return err
		}
	}
	return nil
}

func (p *Postgres) AddRegistrations(ctx context.Context, eventID string, n int) error {
	for i := 0; i < n; i++ {
		if _, err := p.DB.ExecContext(ctx,
			`INSERT INTO eventregistration (id, event_id) VALUES ($1, $2)`, uuid.NewString(), eventID); err != nil {
			return err
		}
	}
	return nil
}
