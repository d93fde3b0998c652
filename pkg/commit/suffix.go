// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package commit

import (
	"strconv"
	"strings"
)

const (
	// StagingSuffix marks the not-yet-visible replacement of a logical file
	StagingSuffix = ".swtxttmp"

	// Generations is the number of backups kept per logical file
	Generations = 3

	backupSuffix = ".swtxt~"
)

// StagingName returns the staging file name for the logical file name
func StagingName(name string) string {
	return name + StagingSuffix
}

// BackupName returns the name of backup generation gen (1 is the newest)
func BackupName(name string, gen int) string {
	return name + backupSuffix + strconv.Itoa(gen)
}

// 🚫 IsReserved reports whether name is a staging file or one of the backup
// generations
func IsReserved(name string) bool {
	if strings.HasSuffix(name, StagingSuffix) {
		return true
	}
	idx := strings.LastIndex(name, backupSuffix)
	if idx < 0 {
		return false
	}
	gen, err := strconv.Atoi(name[idx+len(backupSuffix):])
	if err != nil {
		return false
	}
	return gen >= 1 && gen <= Generations
}
