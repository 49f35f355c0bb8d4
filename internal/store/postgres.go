package store

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"

	"github.com/example/fare-engine/internal/models"
)

// PostgresArchive persists notification records when PG_DSN is configured.
type PostgresArchive struct {
	db *sql.DB
}

func NewPostgresArchive(dsn string) (*PostgresArchive, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	// quick ping
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &PostgresArchive{db: db}, nil
}

func (p *PostgresArchive) SaveNotification(n models.Notification) error {
	_, err := p.db.Exec(`INSERT INTO notifications(ride_id, driver_id, pickup, destination, category, surge, total_fare, estimated_profit, points_earned, compatibility_score, status, created_at, expires_at)
		VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		n.RideID, n.DriverID, n.Pickup, n.Destination, string(n.Classification.Category),
		n.Classification.Surge, n.Fare.TotalFare, n.Fare.EstimatedProfit, n.Fare.PointsEarned,
		n.Compatibility.Score, string(n.Status), n.CreatedAt, n.ExpiresAt)
	return err
}

func (p *PostgresArchive) UpdateStatus(rideID string, status models.Status) error {
	_, err := p.db.Exec(`UPDATE notifications SET status=$1, updated_at=$2 WHERE ride_id=$3`,
		string(status), time.Now(), rideID)
	return err
}

func (p *PostgresArchive) Close() error { return p.db.Close() }
