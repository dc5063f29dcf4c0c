/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

//LoadFile 加载文件
func LoadFile(filePath string) []byte {
	buf, err := os.ReadFile(filePath)
	if err != nil {
		return nil
	} else {
		return buf
	}
}

// SaveFile writes data to filePath. The directory must exist.
func SaveFile(filePath string, data []byte) error {
	return os.WriteFile(filePath, data, 0644)
}

// IsExist checks if a path exists
func IsExist(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// GetFilePathsByExt returns the files of folder and its subfolders whose
// extension is one of exts (case insensitive, e.g. ".json"), sorted.
func GetFilePathsByExt(folder string, exts ...string) ([]string, error) {
	if folder == "" {
		folder = "."
	}
	var paths []string
	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		for _, item := range exts {
			if ext == strings.ToLower(item) {
				paths = append(paths, path)
				break
			}
		}
		return nil
	})
	sort.Strings(paths)
	return paths, err
}
