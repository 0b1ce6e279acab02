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

// Package manifest records the outcome of a completed snapshot run. The
// manifest file sits beside the snapshot files and names them together with
// their record counts, so external tools can verify that a run completed
// and that the files on disk belong together. Writes are atomic
// (write-to-temp-and-rename) and the content is checksummed to detect
// corruption.
package manifest
