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

// SnapshotWriter defines the interface for persisting a record collection.
// This abstraction allows for different container formats to be implemented
// without changing the pipeline.
type SnapshotWriter interface {
	// WriteSnapshot encodes the collection and writes it as the complete
	// contents of the file at path, overwriting any existing file. The
	// destination directory must already exist.
	WriteSnapshot(path string, collection any) error
}
