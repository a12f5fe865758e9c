// Package mysql is the MySQL-backed Store, keeping tracks and their
// hash entries in two tables with a cascading foreign key, following
// the same schema shape as the reference database layer this system
// was grounded on.
package mysql

import (
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"

	"audioid/internal/model"
	"audioid/internal/store"
)

// Store is a MySQL-backed store.Store.
type Store struct {
	db *sql.DB
}

// Open opens a connection pool against dsn (a go-sql-driver/mysql DSN,
// e.g. "user:pass@tcp(host:3306)/dbname?parseTime=true").
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "opening mysql connection pool")
	}
	return &Store{db: db}, nil
}

var _ store.Store = (*Store)(nil)

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Setup() error {
	_, err := s.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			%s MEDIUMINT UNSIGNED NOT NULL AUTO_INCREMENT,
			%s VARCHAR(250) NOT NULL,
			%s TINYINT NOT NULL DEFAULT 0,
			%s BINARY(20) NOT NULL,
			%s INT NOT NULL DEFAULT 0,
			%s VARCHAR(64) DEFAULT 'Unknown',
			%s FLOAT DEFAULT 0,
			%s VARCHAR(64) DEFAULT 'Unknown',
			%s VARCHAR(64) DEFAULT 'Unknown',
			%s VARCHAR(64) DEFAULT 'Unknown',
			%s DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			%s DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			PRIMARY KEY (%s)
		) ENGINE=INNODB;`,
		store.TracksTable,
		store.ColTrackID, store.ColName, store.ColFingerprinted, store.ColFileSHA1,
		store.ColTotalHashes, store.ColPublisher, store.ColLength, store.ColSinger,
		store.ColAlbum, store.ColPublicTime, store.ColDateCreated, store.ColDateModified,
		store.ColTrackID,
	))
	if err != nil {
		return errors.Wrap(err, "creating tracks table")
	}

	_, err = s.db.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			%s BINARY(10) NOT NULL,
			%s MEDIUMINT UNSIGNED NOT NULL,
			%s INT UNSIGNED NOT NULL,
			INDEX ix_hash (%s),
			UNIQUE KEY uq_track_offset_hash (%s, %s, %s),
			FOREIGN KEY (%s) REFERENCES %s(%s) ON DELETE CASCADE
		) ENGINE=INNODB;`,
		store.FingerprintsTable,
		store.ColHash, store.ColTrackID, store.ColOffset,
		store.ColHash,
		store.ColTrackID, store.ColOffset, store.ColHash,
		store.ColTrackID, store.TracksTable, store.ColTrackID,
	))
	if err != nil {
		return errors.Wrap(err, "creating fingerprints table")
	}

	return nil
}

func (s *Store) InsertTrack(t model.Track) (uint32, error) {
	res, err := s.db.Exec(fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s) VALUES (?, UNHEX(?), ?, ?, ?, ?, ?, ?)`,
		store.TracksTable, store.ColName, store.ColFileSHA1, store.ColTotalHashes,
		store.ColPublisher, store.ColLength, store.ColSinger, store.ColAlbum, store.ColPublicTime,
	), t.Name, fmt.Sprintf("%x", t.FileSHA1), t.TotalHashes, t.Publisher, t.LengthSeconds, t.Singer, t.Album, t.PublicTime)
	if err != nil {
		return 0, errors.Wrap(err, "inserting track")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "reading inserted track id")
	}
	return uint32(id), nil
}

func (s *Store) InsertHashes(trackID uint32, entries []model.HashEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "beginning hash insert transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(fmt.Sprintf(
		`INSERT IGNORE INTO %s (%s, %s, %s) VALUES (?, UNHEX(?), ?)`,
		store.FingerprintsTable, store.ColTrackID, store.ColHash, store.ColOffset,
	))
	if err != nil {
		return errors.Wrap(err, "preparing hash insert")
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(trackID, fmt.Sprintf("%x", e.Hash), e.Offset); err != nil {
			return errors.Wrap(err, "inserting hash entry")
		}
	}

	return errors.Wrap(tx.Commit(), "committing hash insert transaction")
}

func (s *Store) SetTrackFingerprinted(trackID uint32) error {
	_, err := s.db.Exec(fmt.Sprintf(
		`UPDATE %s SET %s = 1 WHERE %s = ?`,
		store.TracksTable, store.ColFingerprinted, store.ColTrackID,
	), trackID)
	return errors.Wrap(err, "marking track fingerprinted")
}

func (s *Store) DeleteUnfingerprinted() error {
	_, err := s.db.Exec(fmt.Sprintf(
		`DELETE FROM %s WHERE %s = 0`, store.TracksTable, store.ColFingerprinted,
	))
	return errors.Wrap(err, "deleting unfingerprinted tracks")
}

func (s *Store) DeleteTracksByID(ids []uint32) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders, args := inClause(ids)
	_, err := s.db.Exec(fmt.Sprintf(
		`DELETE FROM %s WHERE %s IN (%s)`, store.TracksTable, store.ColTrackID, placeholders,
	), args...)
	return errors.Wrap(err, "deleting tracks")
}

func (s *Store) GetTracks() ([]model.Track, error) {
	rows, err := s.db.Query(fmt.Sprintf(
		`SELECT %s, %s, %s, %s, %s, %s, HEX(%s), %s, %s
		 FROM %s WHERE %s = 1`,
		store.ColTrackID, store.ColName, store.ColPublisher, store.ColLength,
		store.ColSinger, store.ColAlbum, store.ColFileSHA1, store.ColPublicTime,
		store.ColTotalHashes, store.TracksTable, store.ColFingerprinted,
	))
	if err != nil {
		return nil, errors.Wrap(err, "querying fingerprinted tracks")
	}
	defer rows.Close()

	return scanTracks(rows, true)
}

func (s *Store) GetTracksByIDs(ids []uint32) ([]model.Track, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders, args := inClause(ids)
	rows, err := s.db.Query(fmt.Sprintf(
		`SELECT %s, %s, %s, %s, %s, %s, HEX(%s), %s, %s
		 FROM %s WHERE %s IN (%s)`,
		store.ColTrackID, store.ColName, store.ColPublisher, store.ColLength,
		store.ColSinger, store.ColAlbum, store.ColFileSHA1, store.ColPublicTime,
		store.ColTotalHashes, store.TracksTable, store.ColTrackID, placeholders,
	), args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying tracks by id")
	}
	defer rows.Close()

	return scanTracks(rows, false)
}

func scanTracks(rows *sql.Rows, fingerprinted bool) ([]model.Track, error) {
	var out []model.Track
	for rows.Next() {
		var t model.Track
		var hexHash string
		if err := rows.Scan(&t.ID, &t.Name, &t.Publisher, &t.LengthSeconds, &t.Singer, &t.Album, &hexHash, &t.PublicTime, &t.TotalHashes); err != nil {
			return nil, errors.Wrap(err, "scanning track row")
		}
		copyHexHash(t.FileSHA1[:], hexHash)
		t.Fingerprinted = fingerprinted
		out = append(out, t)
	}
	return out, errors.Wrap(rows.Err(), "iterating track rows")
}

func (s *Store) NumFingerprints() (int, error) {
	var n int
	err := s.db.QueryRow(fmt.Sprintf(`SELECT COUNT(*) FROM %s`, store.FingerprintsTable)).Scan(&n)
	return n, errors.Wrap(err, "counting fingerprints")
}

func (s *Store) NumFingerprintedTracks() (int, error) {
	var n int
	err := s.db.QueryRow(fmt.Sprintf(
		`SELECT COUNT(*) FROM %s WHERE %s = 1`, store.TracksTable, store.ColFingerprinted,
	)).Scan(&n)
	return n, errors.Wrap(err, "counting fingerprinted tracks")
}

func (s *Store) ReturnMatches(queryHashes map[[10]byte]uint32) ([]model.MatchRecord, map[uint32]int, error) {
	var matches []model.MatchRecord
	seenByTrack := make(map[uint32]map[[10]byte]bool)

	for _, chunk := range store.ChunkHashes(queryHashes) {
		placeholders := make([]string, len(chunk))
		args := make([]any, len(chunk))
		for i, h := range chunk {
			placeholders[i] = "UNHEX(?)"
			args[i] = fmt.Sprintf("%x", h)
		}

		rows, err := s.db.Query(fmt.Sprintf(
			`SELECT HEX(%s), %s, %s FROM %s WHERE %s IN (%s)`,
			store.ColHash, store.ColTrackID, store.ColOffset, store.FingerprintsTable,
			store.ColHash, strings.Join(placeholders, ", "),
		), args...)
		if err != nil {
			return nil, nil, errors.Wrap(err, "querying fingerprint matches")
		}

		err = func() error {
			defer rows.Close()
			for rows.Next() {
				var hexHash string
				var trackID uint32
				var offset uint32
				if err := rows.Scan(&hexHash, &trackID, &offset); err != nil {
					return errors.Wrap(err, "scanning match row")
				}

				var hash [10]byte
				copyHexHash(hash[:], hexHash)
				queryOffset := queryHashes[hash]

				matches = append(matches, model.MatchRecord{
					TrackID: trackID,
					Delta:   int64(offset) - int64(queryOffset),
				})

				if seenByTrack[trackID] == nil {
					seenByTrack[trackID] = make(map[[10]byte]bool)
				}
				seenByTrack[trackID][hash] = true
			}
			return rows.Err()
		}()
		if err != nil {
			return nil, nil, err
		}
	}

	counts := make(map[uint32]int, len(seenByTrack))
	for trackID, hashes := range seenByTrack {
		counts[trackID] = len(hashes)
	}

	return matches, counts, nil
}

func inClause(ids []uint32) (string, []any) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}
	return strings.Join(placeholders, ", "), args
}

func copyHexHash(dst []byte, hexHash string) {
	decoded, err := hex.DecodeString(hexHash)
	if err != nil {
		return
	}
	copy(dst, decoded)
}
