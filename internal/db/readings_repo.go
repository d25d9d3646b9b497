package db

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/SistemasVox/clima-udi/internal/types"
)

// readingColumns is the shared projection for station observation rows.
// The `medicoes` table keeps the collector's original INMET column names;
// `medicao_real` is a DB-generated timestamp combining dt_medicao and
// hr_medicao, so rows order correctly even when the collector backfills.
// Rain is coalesced in SQL because a dry tipping bucket reports NULL, and
// "no tips" must classify as SEM_CHUVA rather than skip the rain domain.
const readingColumns = `tem_ins, tem_sen, umd_ins, pre_ins, ven_vel, ven_raj,
	COALESCE(chuva, 0) AS chuva, rad_glo, medicao_real`

// nearWindow bounds the nearest-reading search. Anything farther than this
// from the requested instant is not an acceptable stand-in for it; callers
// treat absence as "history unavailable" and skip the dependent rules.
const nearWindow = 45 * time.Minute

// ReadingRepository reads the observations the ingest collector writes.
// It never writes; the collector owns the table.
type ReadingRepository struct {
	db DBTX
}

// NewReadingRepository creates a ReadingRepository backed by the given
// database connection.
func NewReadingRepository(db DBTX) *ReadingRepository {
	return &ReadingRepository{db: db}
}

// Latest returns the most recent observation. An empty table is fatal for
// the caller, so absence maps to data_no_recent_reading instead of nil.
func (r *ReadingRepository) Latest(ctx context.Context) (*types.Reading, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+readingColumns+`
		 FROM medicoes
		 ORDER BY medicao_real DESC
		 LIMIT 1`,
	)

	reading, err := scanReading(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.NewAppError(types.ErrCodeDataNoRecentReading,
				"no observations in the readings store", types.ErrNotFound)
		}
		return nil, types.NewAppError(types.ErrCodeInternalDB,
			"failed to load latest observation", err)
	}
	return reading, nil
}

// Near returns the observation closest to target, searching only within
// ±45 minutes so a sparse table cannot alias "one hour ago" to some much
// newer or older row. Returns nil without error when the window is empty.
func (r *ReadingRepository) Near(ctx context.Context, target time.Time) (*types.Reading, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+readingColumns+`
		 FROM medicoes
		 WHERE medicao_real BETWEEN $1 - INTERVAL '45 minutes' AND $1 + INTERVAL '45 minutes'
		 ORDER BY ABS(EXTRACT(EPOCH FROM (medicao_real - $1)))
		 LIMIT 1`,
		target,
	)

	reading, err := scanReading(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, types.NewAppError(types.ErrCodeInternalDB,
			"failed to load observation near target instant", err)
	}
	return reading, nil
}

// AccumulatedRain sums the rain gauge over the trailing window.
func (r *ReadingRepository) AccumulatedRain(ctx context.Context, since time.Time) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(chuva), 0)
		 FROM medicoes
		 WHERE medicao_real >= $1`,
		since,
	).Scan(&total)
	if err != nil {
		return 0, types.NewAppError(types.ErrCodeInternalDB,
			"failed to accumulate rain", err)
	}
	return total, nil
}

// DaySummary aggregates the daylight rows (radiation above zero) of the
// given local calendar date. Returns nil without error when the date has no
// daylight rows yet.
func (r *ReadingRepository) DaySummary(ctx context.Context, day time.Time) (*types.AggregateSummary, error) {
	var (
		tempMin, tempMax, humidityMin, radMax, gustMax *float64
		rainTotal                                      float64
		start, end                                     *time.Time
	)

	err := r.db.QueryRow(ctx,
		`SELECT MIN(tem_ins), MAX(tem_ins), MIN(umd_ins), MAX(rad_glo),
		        MAX(ven_raj), COALESCE(SUM(chuva), 0),
		        MIN(medicao_real), MAX(medicao_real)
		 FROM medicoes
		 WHERE medicao_real::date = $1::date
		   AND rad_glo > 0`,
		day.Format("2006-01-02"),
	).Scan(&tempMin, &tempMax, &humidityMin, &radMax, &gustMax, &rainTotal, &start, &end)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB,
			"failed to summarize daylight rows", err)
	}
	if start == nil || end == nil {
		return nil, nil
	}

	return &types.AggregateSummary{
		Start:        *start,
		End:          *end,
		TempMin:      tempMin,
		TempMax:      tempMax,
		HumidityMin:  humidityMin,
		RadiationMax: radMax,
		GustMax:      gustMax,
		RainTotal:    rainTotal,
	}, nil
}

// NightSummary aggregates everything after the last daylight row. Returns
// nil without error when the table has never seen daylight or the night has
// produced no rows yet.
func (r *ReadingRepository) NightSummary(ctx context.Context) (*types.AggregateSummary, error) {
	var lastDaylight *time.Time
	err := r.db.QueryRow(ctx,
		`SELECT MAX(medicao_real)
		 FROM medicoes
		 WHERE rad_glo > 0`,
	).Scan(&lastDaylight)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB,
			"failed to locate last daylight row", err)
	}
	if lastDaylight == nil {
		return nil, nil
	}

	var (
		tempMin, tempMax, humidityAvg, gustMax *float64
		rainTotal                              float64
		start, end                             *time.Time
	)
	err = r.db.QueryRow(ctx,
		`SELECT MIN(tem_ins), MAX(tem_ins), AVG(umd_ins),
		        MAX(ven_raj), COALESCE(SUM(chuva), 0),
		        MIN(medicao_real), MAX(medicao_real)
		 FROM medicoes
		 WHERE medicao_real > $1
		   AND COALESCE(rad_glo, 0) <= 0`,
		*lastDaylight,
	).Scan(&tempMin, &tempMax, &humidityAvg, &gustMax, &rainTotal, &start, &end)
	if err != nil {
		return nil, types.NewAppError(types.ErrCodeInternalDB,
			"failed to summarize night rows", err)
	}
	if start == nil || end == nil {
		return nil, nil
	}

	return &types.AggregateSummary{
		Start:       *start,
		End:         *end,
		TempMin:     tempMin,
		TempMax:     tempMax,
		HumidityAvg: humidityAvg,
		GustMax:     gustMax,
		RainTotal:   rainTotal,
	}, nil
}

// PeakRadiationHour returns the local hour of the strongest radiation row
// of the given date, for the UV advisory line. Best effort: nil when the
// date has no radiation rows.
func (r *ReadingRepository) PeakRadiationHour(ctx context.Context, day time.Time) (*int, error) {
	var at time.Time
	err := r.db.QueryRow(ctx,
		`SELECT medicao_real
		 FROM medicoes
		 WHERE medicao_real::date = $1::date
		   AND rad_glo IS NOT NULL
		 ORDER BY rad_glo DESC
		 LIMIT 1`,
		day.Format("2006-01-02"),
	).Scan(&at)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, types.NewAppError(types.ErrCodeInternalDB,
			"failed to find peak radiation hour", err)
	}

	hour := at.Hour()
	return &hour, nil
}

// scanReading hydrates one observation row.
func scanReading(row pgx.Row) (*types.Reading, error) {
	var r types.Reading
	err := row.Scan(
		&r.Temperature,
		&r.ApparentTemperature,
		&r.Humidity,
		&r.Pressure,
		&r.WindSpeed,
		&r.WindGust,
		&r.Rain,
		&r.SolarRadiation,
		&r.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
