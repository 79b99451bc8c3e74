// Copyright 2026 beogip
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


package storage

import (
	"github.com/beogip/boredGPT/core"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MarshalIndexEntry serializes an IndexEntry to bytes using the MUS format:
// text, source URL, sequence index, then the vector as a length-prefixed
// run of raw float32 values.
func MarshalIndexEntry(entry *core.IndexEntry) []byte {
	size := ord.String.Size(entry.Chunk.Text) +
		ord.String.Size(entry.Chunk.SourceURL) +
		varint.Int.Size(entry.Chunk.SequenceIndex) +
		varint.Int.Size(len(entry.Vector))
	for _, v := range entry.Vector {
		size += raw.Float32.Size(v)
	}

	bs := make([]byte, size)
	n := ord.String.Marshal(entry.Chunk.Text, bs)
	n += ord.String.Marshal(entry.Chunk.SourceURL, bs[n:])
	n += varint.Int.Marshal(entry.Chunk.SequenceIndex, bs[n:])
	n += varint.Int.Marshal(len(entry.Vector), bs[n:])
	for _, v := range entry.Vector {
		n += raw.Float32.Marshal(v, bs[n:])
	}
	return bs
}

// UnmarshalIndexEntry deserializes an IndexEntry from bytes.
func UnmarshalIndexEntry(data []byte) (*core.IndexEntry, error) {
	var entry core.IndexEntry

	text, n, err := ord.String.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	entry.Chunk.Text = text

	sourceURL, m, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	n += m
	entry.Chunk.SourceURL = sourceURL

	seq, m, err := varint.Int.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	n += m
	entry.Chunk.SequenceIndex = seq

	length, m, err := varint.Int.Unmarshal(data[n:])
	if err != nil {
		return nil, err
	}
	n += m
	if length < 0 {
		return nil, ErrSerializationFailed
	}

	entry.Vector = make([]float32, length)
	for i := 0; i < length; i++ {
		v, m, err := raw.Float32.Unmarshal(data[n:])
		if err != nil {
			return nil, err
		}
		n += m
		entry.Vector[i] = v
	}

	return &entry, nil
}
