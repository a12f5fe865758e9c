package store

// Table and column names shared by every backend's DDL and queries.
const (
	TracksTable       = "tracks"
	FingerprintsTable = "fingerprints"

	ColTrackID       = "track_id"
	ColName          = "name"
	ColFingerprinted = "fingerprinted"
	ColFileSHA1      = "file_sha1"
	ColTotalHashes   = "total_hashes"
	ColPublisher     = "publisher"
	ColLength        = "length"
	ColSinger        = "singer"
	ColAlbum         = "album"
	ColPublicTime    = "publictime"
	ColDateCreated   = "date_created"
	ColDateModified  = "date_modified"

	ColHash   = "hash"
	ColOffset = "offset"
)
