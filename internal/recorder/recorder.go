// Package recorder persists observation sessions to SQLite so runs can be
// inspected and replayed offline. The schema is managed with golang-migrate
// from migrations embedded in the binary.
package recorder

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/arena.observer/internal/monitoring"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// NoRobot marks a tick that carried no robot, stored as NULL.
const NoRobot = -1

// SessionID identifies one recorded run.
type SessionID string

// SessionMeta describes the sensor layout of a session.
type SessionMeta struct {
	Started     time.Time
	Version     string
	Angles      []float64
	LowerFilter string
	UpperFilter string
}

// TickRecord is one robot's row for one tick. Skipped ticks carry no
// vectors.
type TickRecord struct {
	Seq     uint64
	Outcome string
	RobotID int
	Lower   []float32
	Upper   []float32
	Action  int
	Capture time.Duration
	Observe time.Duration
	Brain   time.Duration
}

// Recorder writes sessions and ticks. It is safe for concurrent use.
type Recorder struct {
	db *sql.DB
}

// Open opens or creates the database at path and migrates it to the latest
// schema.
func Open(path string) (*Recorder, error) {
	// Pragmas go in the DSN so every pooled connection gets them.
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open recorder database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open recorder database %s: %w", path, err)
	}

	r := &Recorder{db: db}
	if err := r.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *Recorder) migrateUp() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	m.Log = migrateLogger{}
	// m is not closed: that would close r.db.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// SchemaVersion returns the applied migration version.
func (r *Recorder) SchemaVersion() (uint, error) {
	var v uint
	err := r.db.QueryRow(`SELECT version FROM schema_migrations LIMIT 1`).Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...interface{}) {
	monitoring.Logf("[migrate] "+format, v...)
}

func (migrateLogger) Verbose() bool { return false }

// Close closes the database.
func (r *Recorder) Close() error { return r.db.Close() }

// StartSession stores meta under a new random id.
func (r *Recorder) StartSession(meta SessionMeta) (SessionID, error) {
	angles, err := json.Marshal(meta.Angles)
	if err != nil {
		return "", fmt.Errorf("failed to encode angles: %w", err)
	}
	if meta.Started.IsZero() {
		meta.Started = time.Now()
	}
	id := SessionID(uuid.NewString())
	_, err = r.db.Exec(`
		INSERT INTO sessions (session_id, started_unix_nanos, version, angles_json, lower_filter, upper_filter)
		VALUES (?, ?, ?, ?, ?, ?)`,
		string(id), meta.Started.UnixNano(), meta.Version, string(angles), meta.LowerFilter, meta.UpperFilter)
	if err != nil {
		return "", fmt.Errorf("failed to insert session: %w", err)
	}
	monitoring.Logf("[recorder] session %s started", id)
	return id, nil
}

// Session loads the metadata of id.
func (r *Recorder) Session(id SessionID) (SessionMeta, error) {
	var (
		meta    SessionMeta
		started int64
		angles  string
	)
	err := r.db.QueryRow(`
		SELECT started_unix_nanos, version, angles_json, lower_filter, upper_filter
		FROM sessions WHERE session_id = ?`, string(id)).
		Scan(&started, &meta.Version, &angles, &meta.LowerFilter, &meta.UpperFilter)
	if err != nil {
		return SessionMeta{}, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	meta.Started = time.Unix(0, started)
	if err := json.Unmarshal([]byte(angles), &meta.Angles); err != nil {
		return SessionMeta{}, fmt.Errorf("failed to decode angles: %w", err)
	}
	return meta, nil
}

// RecordTick appends one tick row.
func (r *Recorder) RecordTick(id SessionID, t TickRecord) error {
	lower, err := encodeVector(t.Lower)
	if err != nil {
		return err
	}
	upper, err := encodeVector(t.Upper)
	if err != nil {
		return err
	}
	var robot sql.NullInt64
	if t.RobotID != NoRobot {
		robot = sql.NullInt64{Int64: int64(t.RobotID), Valid: true}
	}
	_, err = r.db.Exec(`
		INSERT INTO ticks (session_id, seq, outcome, robot_id, lower_json, upper_json, action, capture_ns, observe_ns, brain_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(id), int64(t.Seq), t.Outcome, robot, lower, upper, t.Action,
		t.Capture.Nanoseconds(), t.Observe.Nanoseconds(), t.Brain.Nanoseconds())
	if err != nil {
		return fmt.Errorf("failed to insert tick %d: %w", t.Seq, err)
	}
	return nil
}

// Ticks returns the ticks of id in recording order.
func (r *Recorder) Ticks(id SessionID) ([]TickRecord, error) {
	rows, err := r.db.Query(`
		SELECT seq, outcome, robot_id, lower_json, upper_json, action, capture_ns, observe_ns, brain_ns
		FROM ticks WHERE session_id = ? ORDER BY seq, rowid`, string(id))
	if err != nil {
		return nil, fmt.Errorf("failed to query ticks: %w", err)
	}
	defer rows.Close()

	var out []TickRecord
	for rows.Next() {
		var (
			t                        TickRecord
			seq                      int64
			robot                    sql.NullInt64
			lower, upper             sql.NullString
			capture, observe, brainD int64
		)
		if err := rows.Scan(&seq, &t.Outcome, &robot, &lower, &upper, &t.Action, &capture, &observe, &brainD); err != nil {
			return nil, fmt.Errorf("failed to scan tick: %w", err)
		}
		t.Seq = uint64(seq)
		t.RobotID = NoRobot
		if robot.Valid {
			t.RobotID = int(robot.Int64)
		}
		if t.Lower, err = decodeVector(lower); err != nil {
			return nil, err
		}
		if t.Upper, err = decodeVector(upper); err != nil {
			return nil, err
		}
		t.Capture, t.Observe, t.Brain = time.Duration(capture), time.Duration(observe), time.Duration(brainD)
		out = append(out, t)
	}
	return out, rows.Err()
}

func encodeVector(v []float32) (sql.NullString, error) {
	if v == nil {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode vector: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeVector(s sql.NullString) ([]float32, error) {
	if !s.Valid {
		return nil, nil
	}
	var v []float32
	if err := json.Unmarshal([]byte(s.String), &v); err != nil {
		return nil, fmt.Errorf("failed to decode vector: %w", err)
	}
	return v, nil
}
