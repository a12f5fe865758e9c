package main

import (
	"fmt"

	"audioid/configs"
	"audioid/internal/fingerprint"
	"audioid/internal/ingest"
	"audioid/internal/logging"
	"audioid/internal/store"
)

func runSaveFile(s store.Store, cfg fingerprint.Config, path string, limitSeconds float64) error {
	known, err := loadKnownHashes(s)
	if err != nil {
		return err
	}

	id, ingested, err := ingest.File(s, path, cfg, limitSeconds, known)
	if err != nil {
		return err
	}
	if !ingested {
		logging.Info(fmt.Sprintf("%s already ingested, skipping", path))
		return nil
	}

	logging.Info(fmt.Sprintf("ingested %s as track %d", path, id))
	return nil
}

func runSaveDir(s store.Store, cfg fingerprint.Config, dir string, ingestCfg configs.Ingest) error {
	results, err := ingest.Directory(s, dir, ingestCfg.Extensions, cfg, ingestCfg.LimitSeconds, ingestCfg.Workers)
	if err != nil {
		return err
	}

	var ingested, skipped, failed int
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed++
		case r.Ingested:
			ingested++
		default:
			skipped++
		}
	}

	logging.Info(fmt.Sprintf("ingested %d, skipped %d, failed %d", ingested, skipped, failed))
	return nil
}

func loadKnownHashes(s store.Store) (map[[20]byte]bool, error) {
	tracks, err := s.GetTracks()
	if err != nil {
		return nil, err
	}

	known := make(map[[20]byte]bool, len(tracks))
	for _, t := range tracks {
		known[t.FileSHA1] = true
	}
	return known, nil
}
