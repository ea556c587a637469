package repository

import (
	"context"
	"fmt"
	"time"

	"PawMatch/internal/domain/models"
	"PawMatch/pkg/clickhouse"
	"PawMatch/pkg/logger"
)

const schemaTimeout = 15 * time.Second

// BookingOutcomeSchema creates the append-only outcome table.
var BookingOutcomeSchema = []string{
	`CREATE TABLE IF NOT EXISTS booking_outcomes (
		pet_id         String,
		sitter_id      String,
		date           Date,
		start_hour     UInt8,
		day_of_week    UInt8,
		duration_hours Float64,
		rating         Float64,
		success        UInt8
	) ENGINE = MergeTree()
	ORDER BY (pet_id, sitter_id, date)`,
}

// ClickHouseHistory implements repository.BookingHistory over ClickHouse.
// Rows are append-only and never updated.
type ClickHouseHistory struct {
	client *clickhouse.Client
	logger *logger.Logger
}

// NewClickHouseHistory wraps an existing client and ensures the schema.
func NewClickHouseHistory(client *clickhouse.Client, log *logger.Logger) (*ClickHouseHistory, error) {
	ctx, cancel := context.WithTimeout(context.Background(), schemaTimeout)
	defer cancel()
	if err := client.InitSchema(ctx, BookingOutcomeSchema); err != nil {
		return nil, fmt.Errorf("init outcome schema: %w", err)
	}
	return &ClickHouseHistory{client: client, logger: log.With("booking_history")}, nil
}

// Record appends one outcome row.
func (h *ClickHouseHistory) Record(ctx context.Context, o *models.BookingOutcome) error {
	const q = `
		INSERT INTO booking_outcomes
			(pet_id, sitter_id, date, start_hour, day_of_week, duration_hours, rating, success)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	success := uint8(0)
	if o.Success {
		success = 1
	}
	_, err := h.client.DB().ExecContext(ctx, q,
		o.PetID, o.SitterID, o.Date, uint8(o.StartHour), uint8(o.DayOfWeek),
		o.DurationHours, o.Rating, success,
	)
	if err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}
	return nil
}

// ForPair returns the most recent outcomes for a pet and sitter pair.
func (h *ClickHouseHistory) ForPair(ctx context.Context, petID, sitterID string, limit int) ([]*models.BookingOutcome, error) {
	const q = `
		SELECT pet_id, sitter_id, date, start_hour, day_of_week, duration_hours, rating, success
		FROM booking_outcomes
		WHERE pet_id = ? AND sitter_id = ?
		ORDER BY date DESC
		LIMIT ?`

	rows, err := h.client.DB().QueryContext(ctx, q, petID, sitterID, limit)
	if err != nil {
		return nil, fmt.Errorf("query outcomes for %s/%s: %w", petID, sitterID, err)
	}
	defer rows.Close()

	var outcomes []*models.BookingOutcome
	for rows.Next() {
		o := &models.BookingOutcome{}
		var startHour, dayOfWeek, success uint8
		if err := rows.Scan(
			&o.PetID, &o.SitterID, &o.Date, &startHour, &dayOfWeek,
			&o.DurationHours, &o.Rating, &success,
		); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		o.StartHour = int(startHour)
		o.DayOfWeek = int(dayOfWeek)
		o.Success = success == 1
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

// Health pings ClickHouse.
func (h *ClickHouseHistory) Health(ctx context.Context) error {
	return h.client.Health(ctx)
}

// Close closes the underlying client.
func (h *ClickHouseHistory) Close() error {
	return h.client.Close()
}
