// Command audioid ingests audio files into a fingerprint index and
// recognizes clips against it, from files, a directory, or a live
// microphone feed.
package main

import (
	"flag"
	"fmt"
	"os"

	"audioid/configs"
	"audioid/internal/logging"
	"audioid/internal/match"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (defaults to the in-memory store)")
	saveFile := flag.String("save", "", "path to an audio file to ingest")
	saveDir := flag.String("save-dir", "", "path to a directory of audio files to ingest")
	findFile := flag.String("find", "", "path to an audio clip to recognize")
	listenCmd := flag.Bool("listen", false, "recognize from the microphone until a match or 30s timeout")
	listCmd := flag.Bool("list", false, "list fingerprinted tracks")
	deleteID := flag.Int("delete", -1, "delete a track by its id")
	topN := flag.Int("topn", match.DefaultTopN, "number of ranked results to return")
	flag.Parse()

	cfg := configs.Default()
	if *configPath != "" {
		loaded, err := configs.Load(*configPath)
		if err != nil {
			logging.Error(err)
			os.Exit(1)
		}
		cfg = loaded
	}

	s, err := openStore(cfg.Database)
	if err != nil {
		logging.Error(err)
		os.Exit(1)
	}
	defer s.Close()

	if err := s.Setup(); err != nil {
		logging.Error(err)
		os.Exit(1)
	}

	fpCfg, err := fingerprintConfig(cfg.Fingerprint)
	if err != nil {
		logging.Error(err)
		os.Exit(1)
	}

	switch {
	case *deleteID >= 0:
		err = runDelete(s, uint32(*deleteID))
	case *listCmd:
		err = runList(s)
	case *listenCmd:
		err = runListen(s, fpCfg, *topN)
	case *findFile != "":
		err = runFind(s, fpCfg, *findFile, cfg.Ingest.LimitSeconds, *topN)
	case *saveDir != "":
		err = runSaveDir(s, fpCfg, *saveDir, cfg.Ingest)
	case *saveFile != "":
		err = runSaveFile(s, fpCfg, *saveFile, cfg.Ingest.LimitSeconds)
	default:
		fmt.Fprintln(os.Stderr, "no command given; see -help")
		flag.Usage()
		os.Exit(1)
	}

	if err != nil {
		logging.Error(err)
		os.Exit(1)
	}
}
