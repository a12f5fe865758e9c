package ingest

import (
	"runtime"
	"sync"

	"github.com/schollz/progressbar/v3"

	"audioid/internal/decoder"
	"audioid/internal/fingerprint"
	"audioid/internal/logging"
	"audioid/internal/store"
)

// WorkerCount returns n clamped to at least 1, or runtime.NumCPU() if
// n <= 0.
func WorkerCount(n int) int {
	if n > 0 {
		return n
	}
	n = runtime.NumCPU()
	if n < 1 {
		return 1
	}
	return n
}

// BatchResult reports one file's outcome in a directory ingest.
type BatchResult struct {
	Path     string
	Ingested bool
	Err      error
}

// Directory walks root for files with the given extensions, skips any
// whose content hash is already fingerprinted in s, and ingests the
// rest using a pool of nprocs workers that extract and fingerprint
// concurrently while the Store is written to serially by this
// goroutine — the coordinator. Worker failures are logged and do not
// abort the batch.
func Directory(s store.Store, root string, extensions []string, cfg fingerprint.Config, limitSeconds float64, nprocs int) ([]BatchResult, error) {
	files, err := decoder.FindFiles(root, extensions)
	if err != nil {
		return nil, err
	}

	known, err := knownHashes(s)
	if err != nil {
		return nil, err
	}
	// Workers only read known, which stays fixed for the whole batch; the
	// coordinator records this batch's own ingests in persisted.
	persisted := make(map[[20]byte]bool)

	nprocs = WorkerCount(nprocs)
	jobs := make(chan decoder.FoundFile)
	extracted := make(chan extractionOutcome)

	var wg sync.WaitGroup
	for i := 0; i < nprocs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				outcome := extractionOutcome{path: job.Path}
				fileHash, err := decoder.UniqueHash(job.Path)
				if err != nil {
					outcome.err = err
					extracted <- outcome
					continue
				}
				if known[fileHash] {
					outcome.skipped = true
					extracted <- outcome
					continue
				}
				ex, err := Extract(job.Path, cfg, limitSeconds)
				outcome.extracted = ex
				outcome.err = err
				extracted <- outcome
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, f := range files {
			jobs <- f
		}
	}()

	go func() {
		wg.Wait()
		close(extracted)
	}()

	bar := progressbar.Default(int64(len(files)), "ingesting")

	var results []BatchResult
	for outcome := range extracted {
		bar.Add(1)

		if outcome.skipped {
			results = append(results, BatchResult{Path: outcome.path, Ingested: false})
			continue
		}
		if outcome.err != nil {
			logging.Warn(outcome.path + ": " + outcome.err.Error())
			results = append(results, BatchResult{Path: outcome.path, Err: outcome.err})
			continue
		}
		if persisted[outcome.extracted.FileSHA1] {
			results = append(results, BatchResult{Path: outcome.path, Ingested: false})
			continue
		}

		if _, err := Persist(s, outcome.extracted); err != nil {
			logging.Warn(outcome.path + ": " + err.Error())
			results = append(results, BatchResult{Path: outcome.path, Err: err})
			continue
		}

		persisted[outcome.extracted.FileSHA1] = true
		results = append(results, BatchResult{Path: outcome.path, Ingested: true})
	}

	return results, nil
}

type extractionOutcome struct {
	path      string
	extracted Extracted
	skipped   bool
	err       error
}

func knownHashes(s store.Store) (map[[20]byte]bool, error) {
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
