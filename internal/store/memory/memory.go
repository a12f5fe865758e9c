// Package memory is an in-process Store, used by the test suites for
// the ingest and match packages and by the CLI when the config selects
// database type "memory" or no config file is given —
// it needs no live database, making the recognizer runnable without
// MySQL or Postgres configured for local development.
package memory

import (
	"sort"
	"sync"

	"audioid/internal/model"
	"audioid/internal/store"
)

type hashKey struct {
	trackID uint32
	offset  uint32
	hash    [10]byte
}

// Store is a goroutine-safe, in-memory implementation of store.Store.
type Store struct {
	mu        sync.Mutex
	tracks    map[uint32]model.Track
	hashes    map[hashKey]struct{}
	byHash    map[[10]byte][]model.HashEntry // for ReturnMatches; hashEntry.Offset + owning track via reverse index
	hashOwner map[[10]byte][]uint32          // parallel to byHash, same index: owning track id
	nextID    uint32
}

// New returns an empty memory Store.
func New() *Store {
	return &Store{
		tracks:    make(map[uint32]model.Track),
		hashes:    make(map[hashKey]struct{}),
		byHash:    make(map[[10]byte][]model.HashEntry),
		hashOwner: make(map[[10]byte][]uint32),
	}
}

var _ store.Store = (*Store)(nil)

func (s *Store) Setup() error { return nil }
func (s *Store) Close() error { return nil }

func (s *Store) InsertTrack(t model.Track) (uint32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	t.ID = id
	t.Fingerprinted = false
	s.tracks[id] = t
	return id, nil
}

func (s *Store) InsertHashes(trackID uint32, entries []model.HashEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		key := hashKey{trackID: trackID, offset: e.Offset, hash: e.Hash}
		if _, exists := s.hashes[key]; exists {
			continue
		}
		s.hashes[key] = struct{}{}
		s.byHash[e.Hash] = append(s.byHash[e.Hash], e)
		s.hashOwner[e.Hash] = append(s.hashOwner[e.Hash], trackID)
	}
	return nil
}

func (s *Store) SetTrackFingerprinted(trackID uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tracks[trackID]
	if !ok {
		return nil
	}
	t.Fingerprinted = true
	s.tracks[trackID] = t
	return nil
}

func (s *Store) DeleteUnfingerprinted() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var orphans []uint32
	for id, t := range s.tracks {
		if !t.Fingerprinted {
			orphans = append(orphans, id)
		}
	}
	s.deleteLocked(orphans)
	return nil
}

func (s *Store) DeleteTracksByID(ids []uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deleteLocked(ids)
	return nil
}

// deleteLocked removes tracks and cascades to their hash entries.
// Callers must hold s.mu.
func (s *Store) deleteLocked(ids []uint32) {
	toDelete := make(map[uint32]bool, len(ids))
	for _, id := range ids {
		toDelete[id] = true
		delete(s.tracks, id)
	}

	for key := range s.hashes {
		if toDelete[key.trackID] {
			delete(s.hashes, key)
		}
	}

	for hash, owners := range s.hashOwner {
		filteredOwners := owners[:0]
		filteredEntries := s.byHash[hash][:0]
		for i, owner := range owners {
			if !toDelete[owner] {
				filteredOwners = append(filteredOwners, owner)
				filteredEntries = append(filteredEntries, s.byHash[hash][i])
			}
		}
		s.hashOwner[hash] = filteredOwners
		s.byHash[hash] = filteredEntries
	}
}

func (s *Store) GetTracks() ([]model.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Track
	for _, t := range s.tracks {
		if t.Fingerprinted {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) GetTracksByIDs(ids []uint32) ([]model.Track, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []model.Track
	for _, id := range ids {
		if t, ok := s.tracks[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *Store) NumFingerprints() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hashes), nil
}

func (s *Store) NumFingerprintedTracks() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tracks {
		if t.Fingerprinted {
			n++
		}
	}
	return n, nil
}

func (s *Store) ReturnMatches(queryHashes map[[10]byte]uint32) ([]model.MatchRecord, map[uint32]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matches []model.MatchRecord
	seenByTrack := make(map[uint32]map[[10]byte]bool)

	for hash, queryOffset := range queryHashes {
		entries := s.byHash[hash]
		owners := s.hashOwner[hash]
		for i, e := range entries {
			trackID := owners[i]
			matches = append(matches, model.MatchRecord{
				TrackID: trackID,
				Delta:   int64(e.Offset) - int64(queryOffset),
			})

			if seenByTrack[trackID] == nil {
				seenByTrack[trackID] = make(map[[10]byte]bool)
			}
			seenByTrack[trackID][hash] = true
		}
	}

	counts := make(map[uint32]int, len(seenByTrack))
	for trackID, hashes := range seenByTrack {
		counts[trackID] = len(hashes)
	}

	return matches, counts, nil
}
