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
	"os"
	"path/filepath"
	"testing"

	"github.com/rulego/rowparser/test/assert"
)

func TestSaveAndLoadFile(t *testing.T) {
	tempDir := t.TempDir()
	testFilePath := filepath.Join(tempDir, "testfile.txt")
	testData := []byte("hello world")

	err := SaveFile(testFilePath, testData)
	assert.Nil(t, err)
	assert.Equal(t, testData, LoadFile(testFilePath))

	assert.Nil(t, LoadFile(filepath.Join(tempDir, "nonexistent.txt")))
}

func TestIsExist(t *testing.T) {
	tempDir := t.TempDir()
	testFilePath := filepath.Join(tempDir, "exists.txt")

	assert.False(t, IsExist(testFilePath))
	assert.Nil(t, SaveFile(testFilePath, nil))
	assert.True(t, IsExist(testFilePath))
	assert.True(t, IsExist(tempDir))
	assert.False(t, IsExist(filepath.Join(tempDir, "nonexistentdir")))
}

func TestGetFilePathsByExt(t *testing.T) {
	tempDir := t.TempDir()
	assert.Nil(t, os.MkdirAll(filepath.Join(tempDir, "sub"), 0755))
	for _, name := range []string{"a.json", "b.yaml", "c.YML", "d.txt", "sub/e.json"} {
		assert.Nil(t, SaveFile(filepath.Join(tempDir, name), []byte("{}")))
	}

	paths, err := GetFilePathsByExt(tempDir, ".json")
	assert.Nil(t, err)
	assert.Equal(t, []string{
		filepath.Join(tempDir, "a.json"),
		filepath.Join(tempDir, "sub", "e.json"),
	}, paths)

	paths, err = GetFilePathsByExt(tempDir, ".yaml", ".yml")
	assert.Nil(t, err)
	assert.Equal(t, []string{
		filepath.Join(tempDir, "b.yaml"),
		filepath.Join(tempDir, "c.YML"),
	}, paths)

	_, err = GetFilePathsByExt(filepath.Join(tempDir, "missing"), ".json")
	assert.NotNil(t, err)
}
