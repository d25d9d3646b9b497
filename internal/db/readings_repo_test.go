package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/SistemasVox/clima-udi/internal/types"
)

// --- Mock DBTX ---

type mockDBTX struct {
	mock.Mock
}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgconn.CommandTag), args.Error(1)
}

func (m *mockDBTX) Query(ctx context.Context, sql string, arguments ...any) (pgx.Rows, error) {
	args := m.Called(ctx, sql, arguments)
	if r := args.Get(0); r != nil {
		return r.(pgx.Rows), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, arguments ...any) pgx.Row {
	args := m.Called(ctx, sql, arguments)
	return args.Get(0).(pgx.Row)
}

// --- Mock Row ---

type mockRow struct {
	scanErr error
	scanFn  func(dest ...any) error
}

func (r *mockRow) Scan(dest ...any) error {
	if r.scanFn != nil {
		return r.scanFn(dest...)
	}
	return r.scanErr
}

func fptr(v float64) *float64 { return &v }

// setF writes v through a **float64 scan destination.
func setF(dest any, v float64) {
	*(dest.(**float64)) = fptr(v)
}

// --- ReadingRepository Tests ---

func TestReadingRepository_Latest_Success(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewReadingRepository(dbx)

	measured := time.Date(2025, 8, 20, 14, 0, 0, 0, time.UTC)
	dbx.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFn: func(dest ...any) error {
			setF(dest[0], 28.4) // tem_ins
			setF(dest[1], 30.1) // tem_sen
			setF(dest[2], 45.0) // umd_ins
			setF(dest[3], 1013.2)
			setF(dest[4], 2.5)
			setF(dest[5], 6.1)
			setF(dest[6], 0.0)
			setF(dest[7], 2100.0)
			*(dest[8].(*time.Time)) = measured
			return nil
		}})

	reading, err := repo.Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, reading)

	assert.Equal(t, 28.4, *reading.Temperature)
	assert.Equal(t, 30.1, *reading.ApparentTemperature)
	assert.Equal(t, 45.0, *reading.Humidity)
	assert.Equal(t, 1013.2, *reading.Pressure)
	assert.Equal(t, measured, reading.Timestamp)
	dbx.AssertExpectations(t)
}

func TestReadingRepository_Latest_NullSensors(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewReadingRepository(dbx)

	dbx.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFn: func(dest ...any) error {
			// Only the timestamp and temperature survive this row; every
			// other sensor missed its cycle and stays nil.
			setF(dest[0], 21.0)
			*(dest[8].(*time.Time)) = time.Date(2025, 8, 20, 3, 0, 0, 0, time.UTC)
			return nil
		}})

	reading, err := repo.Latest(context.Background())
	require.NoError(t, err)

	assert.NotNil(t, reading.Temperature)
	assert.Nil(t, reading.Humidity)
	assert.Nil(t, reading.Pressure)
	assert.Nil(t, reading.SolarRadiation)
}

func TestReadingRepository_Latest_EmptyTable(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewReadingRepository(dbx)

	dbx.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanErr: pgx.ErrNoRows})

	_, err := repo.Latest(context.Background())
	require.Error(t, err)

	assert.Equal(t, types.ErrCodeDataNoRecentReading, types.CodeOf(err))
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestReadingRepository_Latest_DBError(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewReadingRepository(dbx)

	dbx.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanErr: errors.New("connection reset")})

	_, err := repo.Latest(context.Background())
	require.Error(t, err)
	assert.Equal(t, types.ErrCodeInternalDB, types.CodeOf(err))
}

func TestReadingRepository_Near_WindowEmpty(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewReadingRepository(dbx)

	dbx.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanErr: pgx.ErrNoRows})

	reading, err := repo.Near(context.Background(), time.Now())
	require.NoError(t, err, "an empty window is a normal outcome, not an error")
	assert.Nil(t, reading)
}

func TestReadingRepository_AccumulatedRain(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewReadingRepository(dbx)

	dbx.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFn: func(dest ...any) error {
			*(dest[0].(*float64)) = 37.5
			return nil
		}})

	total, err := repo.AccumulatedRain(context.Background(), time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 37.5, total)
}

func TestReadingRepository_DaySummary_NoDaylightRows(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewReadingRepository(dbx)

	// Aggregates over zero rows come back as one all-NULL row, not ErrNoRows.
	dbx.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFn: func(dest ...any) error {
			*(dest[5].(*float64)) = 0 // COALESCE(SUM(chuva), 0)
			return nil
		}})

	summary, err := repo.DaySummary(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestReadingRepository_DaySummary_Success(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewReadingRepository(dbx)

	start := time.Date(2025, 8, 20, 6, 0, 0, 0, time.UTC)
	end := time.Date(2025, 8, 20, 18, 0, 0, 0, time.UTC)
	dbx.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFn: func(dest ...any) error {
			setF(dest[0], 17.2) // min temp
			setF(dest[1], 31.8) // max temp
			setF(dest[2], 28.0) // min humidity
			setF(dest[3], 3120.0)
			setF(dest[4], 12.4)
			*(dest[5].(*float64)) = 0.0
			*(dest[6].(**time.Time)) = &start
			*(dest[7].(**time.Time)) = &end
			return nil
		}})

	summary, err := repo.DaySummary(context.Background(), start)
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, 17.2, *summary.TempMin)
	assert.Equal(t, 31.8, *summary.TempMax)
	assert.Equal(t, 3120.0, *summary.RadiationMax)
	assert.Equal(t, 12*time.Hour, summary.Duration())
}

func TestReadingRepository_NightSummary_NeverSeenDaylight(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewReadingRepository(dbx)

	dbx.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFn: func(dest ...any) error {
			return nil // MAX(medicao_real) over empty set scans as nil
		}}).Once()

	summary, err := repo.NightSummary(context.Background())
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestReadingRepository_NightSummary_Success(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewReadingRepository(dbx)

	sunset := time.Date(2025, 8, 19, 18, 0, 0, 0, time.UTC)
	nightStart := sunset.Add(time.Hour)
	nightEnd := time.Date(2025, 8, 20, 5, 0, 0, 0, time.UTC)

	dbx.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFn: func(dest ...any) error {
			*(dest[0].(**time.Time)) = &sunset
			return nil
		}}).Once()
	dbx.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFn: func(dest ...any) error {
			setF(dest[0], 14.1)
			setF(dest[1], 22.7)
			setF(dest[2], 81.3)
			setF(dest[3], 8.9)
			*(dest[4].(*float64)) = 2.5
			*(dest[5].(**time.Time)) = &nightStart
			*(dest[6].(**time.Time)) = &nightEnd
			return nil
		}}).Once()

	summary, err := repo.NightSummary(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, 14.1, *summary.TempMin)
	assert.Equal(t, 81.3, *summary.HumidityAvg)
	assert.Equal(t, 2.5, summary.RainTotal)
	assert.Equal(t, nightStart, summary.Start)
	dbx.AssertExpectations(t)
}

func TestReadingRepository_PeakRadiationHour(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewReadingRepository(dbx)

	dbx.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanFn: func(dest ...any) error {
			*(dest[0].(*time.Time)) = time.Date(2025, 8, 20, 12, 0, 0, 0, time.UTC)
			return nil
		}})

	hour, err := repo.PeakRadiationHour(context.Background(), time.Now())
	require.NoError(t, err)
	require.NotNil(t, hour)
	assert.Equal(t, 12, *hour)
}

func TestReadingRepository_PeakRadiationHour_NoRows(t *testing.T) {
	dbx := new(mockDBTX)
	repo := NewReadingRepository(dbx)

	dbx.On("QueryRow", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
		Return(&mockRow{scanErr: pgx.ErrNoRows})

	hour, err := repo.PeakRadiationHour(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Nil(t, hour)
}
