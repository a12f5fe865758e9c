// Package store defines the Store contract: the schema, invariants and
// query surface that the ingest pipeline writes into and the matcher
// reads from. internal/store/mysql, internal/store/postgres and
// internal/store/memory each implement this interface.
package store

import "audioid/internal/model"

// MatchChunkSize is the number of hashes sent per ReturnMatches IN
// clause, fixed at 900: comfortably under MySQL's placeholder
// practicalities and well under Postgres's 65535-parameter hard limit,
// leaving room for any other bind parameters in the same statement.
const MatchChunkSize = 900

// Store is the persistence contract every backend must satisfy.
// Implementations must keep the triple (track_id, offset, hash)
// unique (duplicate inserts are silently dropped), and must cascade a
// track deletion to its hash entries.
type Store interface {
	// Setup idempotently creates the schema, including an index on hash.
	Setup() error

	// InsertTrack inserts a new track row with Fingerprinted=false and
	// returns the assigned track ID.
	InsertTrack(t model.Track) (uint32, error)

	// InsertHashes bulk-inserts hash entries for trackID. Duplicate
	// (track_id, offset, hash) triples are dropped, not errored.
	InsertHashes(trackID uint32, hashes []model.HashEntry) error

	// SetTrackFingerprinted flips a track's Fingerprinted flag to true.
	SetTrackFingerprinted(trackID uint32) error

	// DeleteUnfingerprinted removes every track with Fingerprinted=false
	// — the orphans left by an ingest that crashed between InsertTrack
	// and SetTrackFingerprinted.
	DeleteUnfingerprinted() error

	// DeleteTracksByID removes the given tracks; their hash entries
	// cascade-delete with them.
	DeleteTracksByID(ids []uint32) error

	// GetTracks returns every track with Fingerprinted=true.
	GetTracks() ([]model.Track, error)

	// GetTracksByIDs returns the tracks matching ids, in any order,
	// regardless of their Fingerprinted flag.
	GetTracksByIDs(ids []uint32) ([]model.Track, error)

	// NumFingerprints returns the total count of stored hash entries.
	NumFingerprints() (int, error)

	// NumFingerprintedTracks returns the count of tracks with
	// Fingerprinted=true.
	NumFingerprintedTracks() (int, error)

	// ReturnMatches looks up every stored (track_id, offset) row whose
	// hash is a key of queryHashes (the SQL backends batch this lookup
	// at MatchChunkSize). It returns one MatchRecord per matching row —
	// Delta is stored offset minus the query offset for that hash — and
	// a per-track count of distinct query hashes that matched at least
	// one row for that track.
	ReturnMatches(queryHashes map[[10]byte]uint32) ([]model.MatchRecord, map[uint32]int, error)

	// Close releases any resources (connection pools, etc).
	Close() error
}

// ChunkHashes splits hashes into slices of at most MatchChunkSize keys,
// the batching the mysql and postgres ReturnMatches use to keep a single
// SQL statement's IN clause bounded. The memory backend does not chunk.
func ChunkHashes(hashes map[[10]byte]uint32) [][][10]byte {
	keys := make([][10]byte, 0, len(hashes))
	for h := range hashes {
		keys = append(keys, h)
	}

	var chunks [][][10]byte
	for i := 0; i < len(keys); i += MatchChunkSize {
		end := i + MatchChunkSize
		if end > len(keys) {
			end = len(keys)
		}
		chunks = append(chunks, keys[i:end])
	}

	return chunks
}
