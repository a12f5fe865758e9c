package main

import (
	"fmt"

	"audioid/internal/decoder"
	"audioid/internal/fingerprint"
	"audioid/internal/logging"
	"audioid/internal/match"
	"audioid/internal/model"
	"audioid/internal/store"
)

func runFind(s store.Store, cfg fingerprint.Config, path string, limitSeconds float64, topN int) error {
	decoded, err := decoder.Decode(path, limitSeconds)
	if err != nil {
		return err
	}

	union := make(model.Fingerprint)
	for _, channel := range decoded.Channels {
		for hash, offset := range fingerprint.Fingerprint(channel, cfg) {
			union[hash] = offset
		}
	}

	results, err := recognize(s, cfg, union, topN)
	if err != nil {
		return err
	}

	printResults(results)
	return nil
}

func recognize(s store.Store, cfg fingerprint.Config, queryFingerprint model.Fingerprint, topN int) ([]match.Result, error) {
	lookup, err := match.Find(s, queryFingerprint)
	if err != nil {
		return nil, err
	}
	return match.Align(s, lookup, cfg, topN)
}

func printResults(results []match.Result) {
	if len(results) == 0 {
		logging.Info("no matches found")
		return
	}

	for i, r := range results {
		fmt.Printf("%d. track %d %q by %s — input_confidence=%.2f fingerprinted_confidence=%.2f offset=%.5fs\n",
			i+1, r.Track.ID, r.Track.Name, r.Track.Singer, r.InputConfidence, r.FingerprintedConfidence, r.OffsetSeconds)
	}
}
