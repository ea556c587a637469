package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"PawMatch/internal/domain/models"
	"PawMatch/pkg/logger"
)

// PostgresStore implements repository.DataStore over the marketplace
// Postgres database.
type PostgresStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// PostgresConfig holds connection settings for the marketplace database.
type PostgresConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewPostgresStore opens a connection pool and verifies connectivity.
func NewPostgresStore(cfg PostgresConfig, log *logger.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return &PostgresStore{db: db, logger: log.With("postgres_store")}, nil
}

// GetSitter loads a sitter record with its reviews and completed bookings.
func (s *PostgresStore) GetSitter(ctx context.Context, id string) (*models.SitterRecord, error) {
	const q = `
		SELECT id, name, bio, response_time_hours, completion_rate,
		       verification_status, background_checked, insured, certifications,
		       experience_years, on_time_rate, cancellation_rate,
		       communication_score, emergency_contacts, hourly_rate,
		       open_hour, close_hour
		FROM sitters
		WHERE id = $1`

	rec := &models.SitterRecord{}
	var certs pq.StringArray
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&rec.ID, &rec.Name, &rec.Bio, &rec.ResponseTimeHours, &rec.CompletionRate,
		&rec.VerificationStatus, &rec.BackgroundChecked, &rec.Insured, &certs,
		&rec.ExperienceYears, &rec.OnTimeRate, &rec.CancellationRate,
		&rec.CommunicationScore, &rec.EmergencyContacts, &rec.HourlyRate,
		&rec.OpenHour, &rec.CloseHour,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query sitter %s: %w", id, err)
	}
	rec.Certifications = certs

	if rec.Reviews, err = s.reviewsForSitter(ctx, id); err != nil {
		return nil, err
	}
	if rec.CompletedBookings, err = s.completedForSitter(ctx, id); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *PostgresStore) reviewsForSitter(ctx context.Context, sitterID string) ([]models.Review, error) {
	const q = `
		SELECT text, rating, created_at
		FROM reviews
		WHERE sitter_id = $1
		ORDER BY created_at DESC
		LIMIT 200`

	rows, err := s.db.QueryContext(ctx, q, sitterID)
	if err != nil {
		return nil, fmt.Errorf("query reviews for %s: %w", sitterID, err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.Text, &r.Rating, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *PostgresStore) completedForSitter(ctx context.Context, sitterID string) ([]models.CompletedBooking, error) {
	const q = `
		SELECT start_time, end_time, COALESCE(rating, 0), status = 'COMPLETED'
		FROM bookings
		WHERE sitter_id = $1 AND status = 'COMPLETED'
		ORDER BY start_time DESC
		LIMIT 500`

	rows, err := s.db.QueryContext(ctx, q, sitterID)
	if err != nil {
		return nil, fmt.Errorf("query completed bookings for %s: %w", sitterID, err)
	}
	defer rows.Close()

	var out []models.CompletedBooking
	for rows.Next() {
		var cb models.CompletedBooking
		if err := rows.Scan(&cb.StartTime, &cb.EndTime, &cb.Rating, &cb.Success); err != nil {
			return nil, fmt.Errorf("scan completed booking: %w", err)
		}
		out = append(out, cb)
	}
	return out, rows.Err()
}

// GetBooking loads one booking by id.
func (s *PostgresStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	const q = `
		SELECT id, owner_id, sitter_id, pet_ids, start_time, end_time, status,
		       hourly_rate, total_amount, special_instructions, created_at, updated_at
		FROM bookings
		WHERE id = $1`

	b := &models.Booking{}
	var petIDs pq.StringArray
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.OwnerID, &b.SitterID, &petIDs, &b.StartTime, &b.EndTime, &b.Status,
		&b.HourlyRate, &b.TotalAmount, &b.SpecialInstructions, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query booking %s: %w", id, err)
	}
	b.PetIDs = petIDs
	return b, nil
}

// GetBookingsForSitter returns bookings overlapping [from, to) for a sitter.
func (s *PostgresStore) GetBookingsForSitter(ctx context.Context, sitterID string, from, to time.Time) ([]*models.Booking, error) {
	const q = `
		SELECT id, owner_id, sitter_id, pet_ids, start_time, end_time, status,
		       hourly_rate, total_amount, special_instructions, created_at, updated_at
		FROM bookings
		WHERE sitter_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time`

	rows, err := s.db.QueryContext(ctx, q, sitterID, from, to)
	if err != nil {
		return nil, fmt.Errorf("query bookings for %s: %w", sitterID, err)
	}
	defer rows.Close()

	var bookings []*models.Booking
	for rows.Next() {
		b := &models.Booking{}
		var petIDs pq.StringArray
		if err := rows.Scan(
			&b.ID, &b.OwnerID, &b.SitterID, &petIDs, &b.StartTime, &b.EndTime, &b.Status,
			&b.HourlyRate, &b.TotalAmount, &b.SpecialInstructions, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		b.PetIDs = petIDs
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// CreateBooking inserts a new booking row.
func (s *PostgresStore) CreateBooking(ctx context.Context, b *models.Booking) error {
	const q = `
		INSERT INTO bookings (id, owner_id, sitter_id, pet_ids, start_time, end_time,
		                      status, hourly_rate, total_amount, special_instructions,
		                      created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := s.db.ExecContext(ctx, q,
		b.ID, b.OwnerID, b.SitterID, pq.Array(b.PetIDs), b.StartTime, b.EndTime,
		b.Status, b.HourlyRate, b.TotalAmount, b.SpecialInstructions,
		b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert booking %s: %w", b.ID, err)
	}
	return nil
}

// UpdateBookingStatus moves a booking to the given status.
func (s *PostgresStore) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) error {
	const q = `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	res, err := s.db.ExecContext(ctx, q, id, status)
	if err != nil {
		return fmt.Errorf("update booking %s status: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// GetPet loads one pet profile.
func (s *PostgresStore) GetPet(ctx context.Context, id string) (*models.PetProfile, error) {
	const q = `
		SELECT id, owner_id, name, species,
		       morning_start, morning_end, morning_confidence,
		       afternoon_start, afternoon_end, afternoon_confidence,
		       evening_start, evening_end, evening_confidence,
		       feeding_hours
		FROM pets
		WHERE id = $1`

	p := &models.PetProfile{}
	var feeding pq.Int64Array
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&p.ID, &p.OwnerID, &p.Name, &p.Species,
		&p.Morning.StartHour, &p.Morning.EndHour, &p.Morning.Confidence,
		&p.Afternoon.StartHour, &p.Afternoon.EndHour, &p.Afternoon.Confidence,
		&p.Evening.StartHour, &p.Evening.EndHour, &p.Evening.Confidence,
		&feeding,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query pet %s: %w", id, err)
	}
	p.FeedingHours = make([]int, len(feeding))
	for i, h := range feeding {
		p.FeedingHours[i] = int(h)
	}
	return p, nil
}

// GetPetsByOwner returns all pets belonging to an owner.
func (s *PostgresStore) GetPetsByOwner(ctx context.Context, ownerID string) ([]*models.PetProfile, error) {
	const q = `
		SELECT id, owner_id, name, species,
		       morning_start, morning_end, morning_confidence,
		       afternoon_start, afternoon_end, afternoon_confidence,
		       evening_start, evening_end, evening_confidence,
		       feeding_hours
		FROM pets
		WHERE owner_id = $1
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("query pets for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	var pets []*models.PetProfile
	for rows.Next() {
		p := &models.PetProfile{}
		var feeding pq.Int64Array
		if err := rows.Scan(
			&p.ID, &p.OwnerID, &p.Name, &p.Species,
			&p.Morning.StartHour, &p.Morning.EndHour, &p.Morning.Confidence,
			&p.Afternoon.StartHour, &p.Afternoon.EndHour, &p.Afternoon.Confidence,
			&p.Evening.StartHour, &p.Evening.EndHour, &p.Evening.Confidence,
			&feeding,
		); err != nil {
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		p.FeedingHours = make([]int, len(feeding))
		for i, h := range feeding {
			p.FeedingHours[i] = int(h)
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}

// Health pings the database.
func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
