package snapshot

import (
	"maps"

	"github.com/google/uuid"
	"github.com/rickchristie/backtrack"
)

// Snapshot is an immutable capture of a state.
type Snapshot struct {
	// ID is a random, process-unique token.
	ID string `yaml:"id"`

	// TimestampMS is the capture time in Unix milliseconds.
	TimestampMS int64 `yaml:"timestamp_ms"`

	// Data is a copy of the captured state.
	Data backtrack.State `yaml:"data"`

	// Metadata is caller-supplied annotation (depth, reasons, ...).
	Metadata map[string]any `yaml:"metadata"`
}

// Config configures a Manager.
type Config struct {
	// Store backs PersistStack/LoadStack/DeleteStack. Required only for
	// persistence operations.
	Store backtrack.Store

	// TimeProvider timestamps snapshots. Defaults to the system clock.
	TimeProvider backtrack.TimeProvider

	// NewID generates snapshot ids. Defaults to random UUIDs.
	NewID func() string
}

// Manager creates snapshots and persists stacks.
//
// Manager holds no per-session state: stacks are plain values threaded by
// the caller. It is safe for concurrent use when its Store is.
type Manager struct {
	store backtrack.Store
	clock backtrack.TimeProvider
	newID func() string
}

// NewManager creates a Manager, filling defaults for unset Config fields.
func NewManager(cfg Config) *Manager {
	m := &Manager{
		store: cfg.Store,
		clock: cfg.TimeProvider,
		newID: cfg.NewID,
	}
	if m.clock == nil {
		m.clock = backtrack.NewDefaultTimeProvider()
	}
	if m.newID == nil {
		m.newID = uuid.NewString
	}
	return m
}

// CaptureSnapshot copies state into a new snapshot with a fresh id and the
// current timestamp. A nil metadata map is replaced by an empty one.
func (m *Manager) CaptureSnapshot(state backtrack.State, metadata map[string]any) Snapshot {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return Snapshot{
		ID:          m.newID(),
		TimestampMS: m.clock.NowMillis(),
		Data:        state.Clone(),
		Metadata:    maps.Clone(metadata),
	}
}

// RestoreSnapshot returns the snapshot's data unchanged.
func RestoreSnapshot(snap Snapshot) backtrack.State {
	return snap.Data
}

// MergeSnapshots shallow-merges s2's data over s1's (s2 wins on conflicts).
// The result keeps s1's id and metadata and gets a fresh timestamp.
func (m *Manager) MergeSnapshots(s1, s2 Snapshot) Snapshot {
	data := s1.Data.Clone()
	maps.Copy(data, s2.Data)
	return Snapshot{
		ID:          s1.ID,
		TimestampMS: m.clock.NowMillis(),
		Data:        data,
		Metadata:    s1.Metadata,
	}
}

// CompareWithSnapshot wraps current in a fresh snapshot and compares the
// given snapshot against it.
func (m *Manager) CompareWithSnapshot(current backtrack.State, snap Snapshot, opts ...CompareOptions) Diff {
	return CompareSnapshots(snap, m.CaptureSnapshot(current, nil), opts...)
}
