package history

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ledgerSnapshot is the export envelope for a full ledger dump.
type ledgerSnapshot struct {
	Version int      `cbor:"1,keyasint"`
	Records []Record `cbor:"2,keyasint"`
}

const snapshotVersion = 1

// Snapshot encodes the ledger, newest record first, as a compact CBOR
// document suitable for download or transfer to another session.
func (s *Store) Snapshot() ([]byte, error) {
	snapshot := ledgerSnapshot{
		Version: snapshotVersion,
		Records: s.List(),
	}
	data, err := cbor.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode ledger snapshot: %w", err)
	}
	return data, nil
}

// RestoreSnapshot replaces the ledger contents with a previously
// exported snapshot.
func (s *Store) RestoreSnapshot(data []byte) error {
	var snapshot ledgerSnapshot
	if err := cbor.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("failed to decode ledger snapshot: %w", err)
	}
	if snapshot.Version != snapshotVersion {
		return fmt.Errorf("unsupported ledger snapshot version %d", snapshot.Version)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]*Record, len(snapshot.Records))
	s.order = make([]string, 0, len(snapshot.Records))
	// Snapshot order is newest first; rebuild insertion order oldest
	// first so List round-trips.
	for i := len(snapshot.Records) - 1; i >= 0; i-- {
		record := snapshot.Records[i]
		s.records[record.ID] = &record
		s.order = append(s.order, record.ID)
	}
	return nil
}
