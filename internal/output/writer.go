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

package output

import (
	"fmt"
	"os"

	archiveerrors "github.com/sirseerhq/sirseer-archive/internal/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// MsgpackWriter writes snapshots in msgpack, the container format of the
// snapshot files. Encoding a given collection is deterministic: struct
// fields are emitted in declaration order under their msgpack tags.
type MsgpackWriter struct{}

// NewMsgpackWriter creates a msgpack snapshot writer.
func NewMsgpackWriter() *MsgpackWriter {
	return &MsgpackWriter{}
}

// WriteSnapshot implements the SnapshotWriter interface.
func (w *MsgpackWriter) WriteSnapshot(path string, collection any) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file %s: %v: %w", path, err, archiveerrors.ErrSnapshotWrite)
	}

	enc := msgpack.NewEncoder(file)
	if err := enc.Encode(collection); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode snapshot %s: %v: %w", path, err, archiveerrors.ErrSnapshotWrite)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot file %s: %v: %w", path, err, archiveerrors.ErrSnapshotWrite)
	}

	return nil
}

// ReadSnapshot decodes a snapshot file into the provided collection pointer.
// The collection type must match the one the snapshot was written with.
func ReadSnapshot(path string, collection any) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot file %s: %w", path, err)
	}
	defer file.Close()

	if err := msgpack.NewDecoder(file).Decode(collection); err != nil {
		return fmt.Errorf("failed to decode snapshot %s: %w", path, err)
	}

	return nil
}
