package main

import (
	"fmt"

	"audioid/internal/logging"
	"audioid/internal/store"
)

func runList(s store.Store) error {
	tracks, err := s.GetTracks()
	if err != nil {
		return err
	}

	if len(tracks) == 0 {
		logging.Info("no tracks found")
		return nil
	}

	for _, t := range tracks {
		fmt.Printf("%d | %s | %s | hashes=%d\n", t.ID, t.Name, t.Singer, t.TotalHashes)
	}
	return nil
}

func runDelete(s store.Store, id uint32) error {
	if err := s.DeleteTracksByID([]uint32{id}); err != nil {
		return err
	}
	logging.Info(fmt.Sprintf("deleted track %d", id))
	return nil
}
