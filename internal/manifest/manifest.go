// Copyright 2025 SirSeer, LLC
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

package manifest

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Path returns the manifest location for a snapshot directory.
func Path(snapshotDir string) string {
	return filepath.Join(snapshotDir, Filename)
}

// Save atomically writes the manifest with integrity validation. It uses a
// write-to-temp-and-rename pattern to ensure the manifest is never observed
// half-written.
func Save(m *Manifest, path string) error {
	m.Version = CurrentVersion

	checksum, err := calculateChecksum(m)
	if err != nil {
		return fmt.Errorf("failed to calculate checksum: %w", err)
	}
	m.Checksum = checksum

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	tempFile := path + ".tmp"
	if writeErr := os.WriteFile(tempFile, data, 0o644); writeErr != nil {
		return fmt.Errorf("failed to write temporary manifest: %w", writeErr)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary manifest: %w", err)
	}

	return nil
}

// Load reads and validates a manifest, verifying the checksum and version.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no snapshot manifest found at %s", path)
		}
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var m Manifest
	if unmarshalErr := json.Unmarshal(data, &m); unmarshalErr != nil {
		return nil, fmt.Errorf("manifest is corrupted (invalid JSON): %w", unmarshalErr)
	}

	if m.Version != CurrentVersion {
		return nil, fmt.Errorf("manifest version (%d) is incompatible with current version (%d)",
			m.Version, CurrentVersion)
	}

	savedChecksum := m.Checksum
	calculatedChecksum, err := calculateChecksum(&m)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate checksum for validation: %w", err)
	}
	if savedChecksum != calculatedChecksum {
		return nil, fmt.Errorf("manifest is corrupted (checksum mismatch)")
	}

	return &m, nil
}

// calculateChecksum computes the SHA256 hash of the manifest content.
// The checksum field itself is excluded from the calculation.
func calculateChecksum(m *Manifest) (string, error) {
	manifestCopy := *m
	manifestCopy.Checksum = ""

	data, err := json.Marshal(manifestCopy)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}
