// Copyright 2025 GitPulse HQ
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package snapshot persists the headline statistics of a run so the next
// run can report deltas. Snapshots are written atomically and validated
// with a checksum on load; a corrupted snapshot is an error rather than
// silently stale data.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Path returns the snapshot file path for a login inside dir.
func Path(dir, login string) string {
	return filepath.Join(dir, login+".snapshot")
}

// Save atomically saves the snapshot to disk with integrity validation.
// It uses a write-to-temp-and-rename pattern to ensure atomicity.
// The checksum is calculated and stored to detect corruption.
func Save(snap *Snapshot, file string) error {
	// Set version to current
	snap.Version = CurrentVersion

	// Calculate checksum before adding it to the struct
	checksum, err := calculateChecksum(snap)
	if err != nil {
		return fmt.Errorf("failed to calculate checksum: %w", err)
	}
	snap.Checksum = checksum

	// Ensure the directory exists
	dir := filepath.Dir(file)
	if mkdirErr := os.MkdirAll(dir, 0o755); mkdirErr != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", mkdirErr)
	}

	tempFile := file + ".tmp"

	// Marshal snapshot to compact JSON for efficiency
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	// Write to temporary file with restricted permissions
	if writeErr := os.WriteFile(tempFile, data, 0o600); writeErr != nil {
		return fmt.Errorf("failed to write temporary snapshot file: %w", writeErr)
	}

	// Sync to ensure data is flushed to disk
	f, err := os.Open(tempFile)
	if err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to open temp file for sync: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tempFile, file); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Load reads and validates a snapshot from disk.
// It verifies the checksum and version compatibility.
func Load(file string) (*Snapshot, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no previous snapshot found at %s: %w", file, err)
		}
		return nil, fmt.Errorf("failed to read snapshot file %s: %w", file, err)
	}

	var snap Snapshot
	if unmarshalErr := json.Unmarshal(data, &snap); unmarshalErr != nil {
		return nil, fmt.Errorf("snapshot file is corrupted (invalid JSON): %w", unmarshalErr)
	}

	// Check version compatibility
	if snap.Version != CurrentVersion {
		return nil, fmt.Errorf("snapshot file version (%d) is incompatible with current version (%d)",
			snap.Version, CurrentVersion)
	}

	// Verify checksum
	savedChecksum := snap.Checksum
	snap.Checksum = "" // Clear for recalculation

	calculatedChecksum, err := calculateChecksum(&snap)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum for validation: %w", err)
	}

	if savedChecksum != calculatedChecksum {
		return nil, fmt.Errorf("snapshot file is corrupted (checksum mismatch)")
	}

	// Restore the checksum field
	snap.Checksum = savedChecksum

	return &snap, nil
}

// Delete removes the snapshot file for a login.
// This is useful for resetting to a clean state.
func Delete(file string) error {
	err := os.Remove(file)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete snapshot file: %w", err)
	}
	return nil
}

// calculateChecksum computes the SHA256 hash of the snapshot content.
// The checksum field itself is excluded from the calculation.
func calculateChecksum(snap *Snapshot) (string, error) {
	// Create a copy without the checksum field
	snapCopy := *snap
	snapCopy.Checksum = ""

	// Marshal to JSON for consistent hashing
	data, err := json.Marshal(snapCopy)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
