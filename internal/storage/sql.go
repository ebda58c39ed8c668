package storage

const (
	initSchemaSQL = `
CREATE TABLE IF NOT EXISTS sessions (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    start_time DATETIME NOT NULL,
    source     TEXT     NOT NULL
);

CREATE TABLE IF NOT EXISTS records (
    id                INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id        INTEGER NOT NULL REFERENCES sessions (id),
    timestamp_ns      INTEGER NOT NULL,
    utc_offset        INTEGER NOT NULL,
    wind_speed        REAL    NOT NULL,
    wind_direction    REAL    NOT NULL,
    air_temperature   REAL    NOT NULL,
    nacelle_direction REAL    NOT NULL,
    active_power      REAL    NOT NULL,
    pitch_angle       REAL    NOT NULL
);`

	initIndexesSQL = `
CREATE INDEX IF NOT EXISTS idx_records_session_time ON records (session_id, timestamp_ns, id);`

	insertSessionSQL = `
INSERT INTO sessions (
                      start_time,
                      source)
VALUES (CURRENT_TIMESTAMP, ?)`

	selectSessionSQL = `
SELECT
    s.id,
    s.start_time,
    s.source,
    (SELECT COUNT(*) FROM records r WHERE r.session_id = s.id)
FROM sessions s
WHERE
    s.id = ?`

	selectLatestSessionSQL = `
SELECT
    s.id,
    s.start_time,
    s.source,
    (SELECT COUNT(*) FROM records r WHERE r.session_id = s.id)
FROM sessions s
ORDER BY s.id DESC
LIMIT 1`

	insertRecordsSQL = `
INSERT INTO records (session_id,
                     timestamp_ns,
                     utc_offset,
                     wind_speed,
                     wind_direction,
                     air_temperature,
                     nacelle_direction,
                     active_power,
                     pitch_angle)
VALUES `

	recordValuesPlaceholder = "(?, ?, ?, ?, ?, ?, ?, ?, ?)"
	recordValuesCount       = 9

	// Records are ordered by instant, then by insertion order for equal instants
	selectRecordsSQL = `
SELECT
    timestamp_ns,
    utc_offset,
    wind_speed,
    wind_direction,
    air_temperature,
    nacelle_direction,
    active_power,
    pitch_angle
FROM records
WHERE
    session_id = ?
    AND (? IS NULL OR timestamp_ns >= ?)
    AND (? IS NULL OR timestamp_ns < ?)
ORDER BY timestamp_ns, id`
)
