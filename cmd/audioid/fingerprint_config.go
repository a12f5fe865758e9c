package main

import (
	"fmt"

	"audioid/configs"
	"audioid/internal/fingerprint"
)

// fingerprintConfig resolves the named preset to a fingerprint.Config.
func fingerprintConfig(cfg configs.Fingerprint) (fingerprint.Config, error) {
	switch cfg.Preset {
	case "music", "":
		return fingerprint.DefaultMusicConfig(), nil
	case "audiobook":
		return fingerprint.DefaultAudiobookConfig(), nil
	default:
		return fingerprint.Config{}, fmt.Errorf("unsupported fingerprint preset: %q", cfg.Preset)
	}
}
