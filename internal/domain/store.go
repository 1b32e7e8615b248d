package domain

import (
	"context"
	"encoding/json"
)

// Blob keys used for the two independently persisted lists
const (
	BlobKeyProfiles = "riskProfile"
	BlobKeyJournal  = "tradeHistory"
)

// BlobStore persists opaque serialized blobs by key
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, data []byte) error
}

// StateRepository loads and saves the profile list and the journal
type StateRepository interface {
	LoadProfiles(ctx context.Context) ([]RiskProfile, error)
	SaveProfiles(ctx context.Context, profiles []RiskProfile) error
	LoadJournal(ctx context.Context) ([]DailyStat, error)
	SaveJournal(ctx context.Context, journal []DailyStat) error
}

// SyncPayload is the full local state of one profile sent to the remote endpoint
type SyncPayload struct {
	Profile RiskProfile
	Journal []DailyStat
}

// RemoteSyncClient talks to the remote spreadsheet endpoint.
// Read returns the raw data object of a successful READ response.
type RemoteSyncClient interface {
	Read(ctx context.Context, cfg SyncConfig) (json.RawMessage, error)
	Write(ctx context.Context, cfg SyncConfig, payload SyncPayload) error
}

// SnapshotMapper translates a raw remote snapshot into local shapes without touching the store
type SnapshotMapper interface {
	Map(raw json.RawMessage, current RiskProfile) (*ProfilePatch, []DailyStat, error)
}

// StateListener is called after a store mutation has been persisted.
// profileID names the profile whose profile record or journal changed.
type StateListener func(profileID string)
