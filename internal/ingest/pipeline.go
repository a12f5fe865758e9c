// Package ingest turns audio files into persisted tracks: pipeline.go
// ingests one file end to end, batch.go walks a directory and fans
// ingestion out across a worker pool.
package ingest

import (
	"github.com/pkg/errors"

	"audioid/internal/decoder"
	"audioid/internal/fingerprint"
	"audioid/internal/metadata"
	"audioid/internal/model"
	"audioid/internal/span"
	"audioid/internal/store"
)

// Extracted is the pure, Store-free result of decoding and
// fingerprinting one file — everything a worker can compute without
// touching the Store.
type Extracted struct {
	Path     string
	FileSHA1 [20]byte
	Hashes   model.Fingerprint
	Meta     metadata.Info
}

// Extract decodes path, fingerprints every channel and unions the
// per-channel hash sets, and extracts metadata. It touches no Store —
// safe to run concurrently across files.
func Extract(path string, cfg fingerprint.Config, limitSeconds float64) (Extracted, error) {
	sp := span.Start("ingest.Extract")
	defer sp.End()

	decoded, err := decoder.Decode(path, limitSeconds)
	if err != nil {
		return Extracted{}, errors.Wrapf(ErrDecode, "%s: %v", path, err)
	}

	union := make(model.Fingerprint)
	for _, channel := range decoded.Channels {
		for hash, offset := range fingerprint.Fingerprint(channel, cfg) {
			union[hash] = offset
		}
	}

	return Extracted{
		Path:     path,
		FileSHA1: decoded.FileSHA1,
		Hashes:   union,
		Meta:     metadata.Extract(path),
	}, nil
}

// Persist performs the Store-side half of ingest: insert the track row
// (fingerprinted=false), bulk-insert its hashes, then flip it to
// fingerprinted=true. A failure between the insert and the flip
// leaves an orphan row that DeleteUnfingerprinted reclaims.
func Persist(s store.Store, ex Extracted) (uint32, error) {
	sp := span.Start("ingest.Persist")
	defer sp.End()

	track := model.Track{
		Name:        ex.Meta.Title,
		FileSHA1:    ex.FileSHA1,
		TotalHashes: len(ex.Hashes),
		Singer:      ex.Meta.Artist,
		Album:       ex.Meta.Album,
		Publisher:   ex.Meta.Publisher,
		PublicTime:  ex.Meta.PublicTime,
	}

	trackID, err := s.InsertTrack(track)
	if err != nil {
		return 0, errors.Wrap(ErrStoreTransient, err.Error())
	}

	entries := make([]model.HashEntry, 0, len(ex.Hashes))
	for hash, offset := range ex.Hashes {
		entries = append(entries, model.HashEntry{Hash: hash, Offset: offset})
	}

	if err := s.InsertHashes(trackID, entries); err != nil {
		return trackID, errors.Wrap(ErrStoreTransient, err.Error())
	}

	if err := s.SetTrackFingerprinted(trackID); err != nil {
		return trackID, errors.Wrap(ErrStorePermanent, err.Error())
	}

	return trackID, nil
}

// File runs Extract then Persist for a single path, skipping files
// whose content hash is already fingerprinted in s.
func File(s store.Store, path string, cfg fingerprint.Config, limitSeconds float64, known map[[20]byte]bool) (uint32, bool, error) {
	fileHash, err := decoder.UniqueHash(path)
	if err != nil {
		return 0, false, errors.Wrapf(ErrDecode, "%s: %v", path, err)
	}
	if known[fileHash] {
		return 0, false, nil
	}

	ex, err := Extract(path, cfg, limitSeconds)
	if err != nil {
		return 0, false, err
	}

	id, err := Persist(s, ex)
	return id, true, err
}
