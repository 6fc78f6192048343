package roadgraph

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/lintang-b-s/Navigatorx/pkg/openlr"
)

// SQLiteRoadInfo is an openlr.RoadInfo backed by a SQLite table mapping
// feature id to functional road class, the way FeaturesRoadGraph's
// companion RoadInfoGetter reads road metadata out of band from
// geometry.
type SQLiteRoadInfo struct {
	db *sql.DB
}

// OpenSQLiteRoadInfo opens (or creates) the road_info table at path.
func OpenSQLiteRoadInfo(path string) (*SQLiteRoadInfo, error) {
	db, err := sql.Open("sqlite", path+"?_journal=WAL&_fk=1")
	if err != nil {
		return nil, fmt.Errorf("opening road info database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging road info database: %w", err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS road_info (
			feature_id INTEGER PRIMARY KEY,
			frc        INTEGER NOT NULL
		)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating road_info table: %w", err)
	}

	return &SQLiteRoadInfo{db: db}, nil
}

// Close releases the underlying database handle.
func (r *SQLiteRoadInfo) Close() error {
	return r.db.Close()
}

// Put upserts a feature's functional road class, for ingestion.
func (r *SQLiteRoadInfo) Put(featureID int64, frc openlr.FunctionalRoadClass) error {
	const stmt = `
		INSERT INTO road_info (feature_id, frc) VALUES (?, ?)
		ON CONFLICT(feature_id) DO UPDATE SET frc = excluded.frc`
	_, err := r.db.Exec(stmt, featureID, int(frc))
	if err != nil {
		return fmt.Errorf("upserting road_info for feature %d: %w", featureID, err)
	}
	return nil
}

// Get implements openlr.RoadInfo.
func (r *SQLiteRoadInfo) Get(featureID int64) (openlr.RoadInfoEntry, error) {
	var frc int
	err := r.db.QueryRow(`SELECT frc FROM road_info WHERE feature_id = ?`, featureID).Scan(&frc)
	if err == sql.ErrNoRows {
		return openlr.RoadInfoEntry{}, fmt.Errorf("no road info for feature %d", featureID)
	}
	if err != nil {
		return openlr.RoadInfoEntry{}, fmt.Errorf("querying road_info for feature %d: %w", featureID, err)
	}
	return openlr.RoadInfoEntry{FRC: openlr.FunctionalRoadClass(frc)}, nil
}
