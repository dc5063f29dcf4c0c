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

package source

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rulego/rowparser/api/types"
	"github.com/rulego/rowparser/utils/fs"
	"github.com/rulego/rowparser/utils/json"
	"gopkg.in/yaml.v3"
)

// DecodeJSON reads a json array of objects, or a single object, keeping the key order.
func DecodeJSON(r io.Reader) ([]*types.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if data[0] == '{' {
		record := types.NewRecord()
		if err = json.Unmarshal(data, record); err != nil {
			return nil, err
		}
		return []*types.Record{record}, nil
	}
	var rows []*types.Record
	if err = json.Unmarshal(data, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// DecodeYAML reads a yaml sequence of mappings, keeping the key order.
func DecodeYAML(r io.Reader) ([]*types.Record, error) {
	var rows []*types.Record
	if err := yaml.NewDecoder(r).Decode(&rows); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, err
	}
	return rows, nil
}

// EncodeJSON writes rows as an indented json array followed by a newline.
func EncodeJSON(w io.Writer, rows []*types.Record) error {
	if rows == nil {
		rows = []*types.Record{}
	}
	b, err := json.MarshalIndent(rows)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	_, _ = bw.Write(b)
	_ = bw.WriteByte('\n')
	return bw.Flush()
}

// EncodeYAML writes rows as a yaml sequence.
func EncodeYAML(w io.Writer, rows []*types.Record) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if rows == nil {
		rows = []*types.Record{}
	}
	if err := encoder.Encode(rows); err != nil {
		return err
	}
	return encoder.Close()
}

// ReadFile decodes a .json, .yaml or .yml file.
func ReadFile(path string) ([]*types.Record, error) {
	if !fs.IsExist(path) {
		return nil, fmt.Errorf("file not found: %s", path)
	}
	data := fs.LoadFile(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(bytes.NewReader(data))
	case ".yaml", ".yml":
		return DecodeYAML(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}

// WriteFile encodes rows to a .json, .yaml or .yml file.
func WriteFile(path string, rows []*types.Record) error {
	var buf bytes.Buffer
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = EncodeJSON(&buf, rows)
	case ".yaml", ".yml":
		err = EncodeYAML(&buf, rows)
	default:
		err = fmt.Errorf("unsupported file type: %s", path)
	}
	if err != nil {
		return err
	}
	return fs.SaveFile(path, buf.Bytes())
}
