package main

import (
	"fmt"
	"time"

	"audioid/internal/fingerprint"
	"audioid/internal/listen"
	"audioid/internal/logging"
	"audioid/internal/match"
	"audioid/internal/model"
	"audioid/internal/store"
)

const (
	listenTimeout      = 30 * time.Second
	listenPollInterval = 2 * time.Second
	listenWindow       = 5.0 // seconds of audio considered per recognition attempt
	minConfidentHashes = 50
)

// runListen records from the default microphone and attempts
// recognition every listenPollInterval against a sliding
// listenWindow-second tail of the buffer, stopping at the first
// confident match or after listenTimeout.
func runListen(s store.Store, cfg fingerprint.Config, topN int) error {
	recorder, err := listen.NewRecorder(cfg.SampleRate)
	if err != nil {
		return err
	}
	defer recorder.Close()

	if err := recorder.Start(); err != nil {
		return err
	}

	logging.Info("listening... (30s timeout)")

	timeout := time.NewTimer(listenTimeout)
	defer timeout.Stop()
	ticker := time.NewTicker(listenPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-timeout.C:
			logging.Info("no match found within 30 seconds")
			return nil

		case <-ticker.C:
			samples := recorder.Snapshot(listenWindow)
			if len(samples) < int(listenWindow*float64(cfg.SampleRate)) {
				continue
			}

			queryFingerprint := fingerprint.Fingerprint(samples, cfg)
			if len(queryFingerprint) < minConfidentHashes {
				continue
			}

			found, err := attemptMatch(s, cfg, queryFingerprint, topN)
			if err != nil {
				logging.Warn(err.Error())
				continue
			}
			if found {
				return nil
			}
		}
	}
}

func attemptMatch(s store.Store, cfg fingerprint.Config, queryFingerprint model.Fingerprint, topN int) (bool, error) {
	results, err := recognize(s, cfg, queryFingerprint, topN)
	if err != nil {
		return false, err
	}
	if len(results) == 0 {
		return false, nil
	}

	best := results[0]
	if best.InputConfidence < 0.1 {
		return false, nil
	}

	logging.Info(fmt.Sprintf("match: track %d %q (input_confidence=%.2f)", best.Track.ID, best.Track.Name, best.InputConfidence))
	return true, nil
}
