package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/saiprannav/weatherdesk/internal/models"
)

const recordColumns = `id, location_name, latitude, longitude, timestamp,
	temperature, feels_like, humidity, wind_speed, condition,
	date_range_start, date_range_end`

// SaveWeatherRecord inserts a record and fills in its assigned ID.
func (s *Store) SaveWeatherRecord(rec *models.WeatherRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	res, err := s.db.Exec(`
		INSERT INTO weather_records
			(location_name, latitude, longitude, timestamp, temperature,
			 feels_like, humidity, wind_speed, condition, date_range_start, date_range_end)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.LocationName,
		rec.Latitude,
		rec.Longitude,
		rec.Timestamp,
		rec.Temperature,
		rec.FeelsLike,
		rec.Humidity,
		rec.WindSpeed,
		rec.Condition,
		rec.DateRangeStart,
		rec.DateRangeEnd,
	)
	if err != nil {
		return fmt.Errorf("saving weather record: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	rec.ID = id

	return nil
}

// SaveForecastBatch inserts a set of forecast records together with the
// search's history entry in one transaction. A failure partway through
// rolls back everything already inserted.
func (s *Store) SaveForecastBatch(records []models.WeatherRecord, entry *models.LocationSearch) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning forecast batch: %w", err)
	}
	defer tx.Rollback()

	for i := range records {
		rec := &records[i]
		if rec.Timestamp.IsZero() {
			rec.Timestamp = time.Now().UTC()
		}
		res, err := tx.Exec(`
			INSERT INTO weather_records
				(location_name, latitude, longitude, timestamp, temperature,
				 feels_like, humidity, wind_speed, condition, date_range_start, date_range_end)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.LocationName,
			rec.Latitude,
			rec.Longitude,
			rec.Timestamp,
			rec.Temperature,
			rec.FeelsLike,
			rec.Humidity,
			rec.WindSpeed,
			rec.Condition,
			rec.DateRangeStart,
			rec.DateRangeEnd,
		)
		if err != nil {
			return fmt.Errorf("saving forecast record: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("getting last insert id: %w", err)
		}
		rec.ID = id
	}

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	res, err := tx.Exec(`
		INSERT INTO location_history (query, resolved_name, latitude, longitude, timestamp)
		VALUES (?, ?, ?, ?, ?)`,
		entry.Query,
		entry.ResolvedName,
		entry.Latitude,
		entry.Longitude,
		entry.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("saving location history: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	entry.ID = id

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing forecast batch: %w", err)
	}
	return nil
}

// WeatherHistory returns records for a location name, newest first.
func (s *Store) WeatherHistory(locationName string, limit int) ([]models.WeatherRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT `+recordColumns+`
		FROM weather_records
		WHERE location_name = ?
		ORDER BY timestamp DESC
		LIMIT ?`, locationName, limit)
	if err != nil {
		return nil, fmt.Errorf("querying weather history: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ListWeatherRecords returns all records, newest first.
func (s *Store) ListWeatherRecords(limit int) ([]models.WeatherRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.Query(`
		SELECT `+recordColumns+`
		FROM weather_records
		ORDER BY timestamp DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying weather records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// GetWeatherRecord fetches one record by ID.
func (s *Store) GetWeatherRecord(id int64) (*models.WeatherRecord, error) {
	row := s.db.QueryRow(`
		SELECT `+recordColumns+`
		FROM weather_records
		WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying weather record: %w", err)
	}
	return rec, nil
}

// UpdateWeatherRecord applies an edit to a stored record. Only the fields
// set in the update are changed.
func (s *Store) UpdateWeatherRecord(id int64, upd models.RecordUpdate) error {
	if upd.Temperature == nil && upd.Condition == nil {
		return nil
	}

	query := "UPDATE weather_records SET "
	var args []any
	if upd.Temperature != nil {
		query += "temperature = ?"
		args = append(args, *upd.Temperature)
	}
	if upd.Condition != nil {
		if len(args) > 0 {
			query += ", "
		}
		query += "condition = ?"
		args = append(args, *upd.Condition)
	}
	query += " WHERE id = ?"
	args = append(args, id)

	res, err := s.db.Exec(query, args...)
	if err != nil {
		return fmt.Errorf("updating weather record: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteWeatherRecord removes a record by ID.
func (s *Store) DeleteWeatherRecord(id int64) error {
	res, err := s.db.Exec("DELETE FROM weather_records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting weather record: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*models.WeatherRecord, error) {
	var rec models.WeatherRecord
	var feelsLike, windSpeed sql.NullFloat64
	var humidity sql.NullInt64
	var condition sql.NullString
	var rangeStart, rangeEnd sql.NullTime

	err := row.Scan(
		&rec.ID,
		&rec.LocationName,
		&rec.Latitude,
		&rec.Longitude,
		&rec.Timestamp,
		&rec.Temperature,
		&feelsLike,
		&humidity,
		&windSpeed,
		&condition,
		&rangeStart,
		&rangeEnd,
	)
	if err != nil {
		return nil, err
	}

	if feelsLike.Valid {
		rec.FeelsLike = &feelsLike.Float64
	}
	if humidity.Valid {
		h := int(humidity.Int64)
		rec.Humidity = &h
	}
	if windSpeed.Valid {
		rec.WindSpeed = &windSpeed.Float64
	}
	rec.Condition = condition.String
	if rangeStart.Valid {
		rec.DateRangeStart = &rangeStart.Time
	}
	if rangeEnd.Valid {
		rec.DateRangeEnd = &rangeEnd.Time
	}

	return &rec, nil
}

func scanRecords(rows *sql.Rows) ([]models.WeatherRecord, error) {
	var records []models.WeatherRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning weather record: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}
