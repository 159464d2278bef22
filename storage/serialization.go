// Copyright 2025 Poiesic Systems
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
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/codechronicle/core"
)

// MUS serializers for the records persisted by storage backends. Timestamps
// are stored as Unix microseconds.

var (
	stringSliceMUS = ord.NewSliceSer[string](ord.String)

	// SectionMUS serializes core.Section values.
	SectionMUS = sectionSer{}
	// ParsedQueryMUS serializes core.ParsedQuery values.
	ParsedQueryMUS = parsedQuerySer{}
	// CachedQueryMUS serializes core.CachedQuery values.
	CachedQueryMUS = cachedQuerySer{}
	// TopResultMUS serializes core.TopResult values.
	TopResultMUS = topResultSer{}
	// HistoryEntryMUS serializes core.HistoryEntry values.
	HistoryEntryMUS = historyEntrySer{}

	topResultSliceMUS = ord.NewSliceSer[core.TopResult](TopResultMUS)
)

// MarshalSection serializes a Section to bytes.
func MarshalSection(section *core.Section) []byte {
	buf := make([]byte, SectionMUS.Size(*section))
	SectionMUS.Marshal(*section, buf)
	return buf
}

// UnmarshalSection deserializes a Section from bytes.
func UnmarshalSection(data []byte) (*core.Section, error) {
	section, _, err := SectionMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &section, nil
}

// MarshalCachedQuery serializes a CachedQuery to bytes.
func MarshalCachedQuery(cached *core.CachedQuery) []byte {
	buf := make([]byte, CachedQueryMUS.Size(*cached))
	CachedQueryMUS.Marshal(*cached, buf)
	return buf
}

// UnmarshalCachedQuery deserializes a CachedQuery from bytes.
func UnmarshalCachedQuery(data []byte) (*core.CachedQuery, error) {
	cached, _, err := CachedQueryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &cached, nil
}

// MarshalHistoryEntry serializes a HistoryEntry to bytes.
func MarshalHistoryEntry(entry *core.HistoryEntry) []byte {
	buf := make([]byte, HistoryEntryMUS.Size(*entry))
	HistoryEntryMUS.Marshal(*entry, buf)
	return buf
}

// UnmarshalHistoryEntry deserializes a HistoryEntry from bytes.
func UnmarshalHistoryEntry(data []byte) (*core.HistoryEntry, error) {
	entry, _, err := HistoryEntryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// time helpers

func marshalTime(t time.Time, bs []byte) int {
	return varint.Int64.Marshal(t.UnixMicro(), bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	return varint.Int64.Size(t.UnixMicro())
}

// bbox: presence flag + coordinates

func marshalBBox(b *core.BBox, bs []byte) (n int) {
	n = ord.Bool.Marshal(b != nil, bs)
	if b == nil {
		return n
	}
	n += varint.Float64.Marshal(b.X0, bs[n:])
	n += varint.Float64.Marshal(b.Y0, bs[n:])
	n += varint.Float64.Marshal(b.X1, bs[n:])
	n += varint.Float64.Marshal(b.Y1, bs[n:])
	return n
}

func unmarshalBBox(bs []byte) (*core.BBox, int, error) {
	present, n, err := ord.Bool.Unmarshal(bs)
	if err != nil || !present {
		return nil, n, err
	}
	var b core.BBox
	var n1 int
	if b.X0, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return nil, n + n1, err
	}
	n += n1
	if b.Y0, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return nil, n + n1, err
	}
	n += n1
	if b.X1, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return nil, n + n1, err
	}
	n += n1
	if b.Y1, n1, err = varint.Float64.Unmarshal(bs[n:]); err != nil {
		return nil, n + n1, err
	}
	n += n1
	return &b, n, nil
}

func sizeBBox(b *core.BBox) int {
	size := ord.Bool.Size(b != nil)
	if b != nil {
		size += varint.Float64.Size(b.X0) + varint.Float64.Size(b.Y0) +
			varint.Float64.Size(b.X1) + varint.Float64.Size(b.Y1)
	}
	return size
}

// Section

type sectionSer struct{}

func (sectionSer) Marshal(s core.Section, bs []byte) (n int) {
	n = ord.String.Marshal(s.ID, bs)
	n += ord.String.Marshal(s.Title, bs[n:])
	n += varint.Int.Marshal(s.Page, bs[n:])
	n += varint.Int.Marshal(s.PageEnd, bs[n:])
	n += stringSliceMUS.Marshal(s.Keywords, bs[n:])
	n += ord.String.Marshal(s.HTML, bs[n:])
	n += ord.String.Marshal(s.NotesHTML, bs[n:])
	n += ord.String.Marshal(s.ParentID, bs[n:])
	n += marshalBBox(s.BBox, bs[n:])
	return n
}

func (sectionSer) Unmarshal(bs []byte) (s core.Section, n int, err error) {
	var n1 int
	if s.ID, n1, err = ord.String.Unmarshal(bs); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.Page, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.PageEnd, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.Keywords, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.HTML, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.NotesHTML, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.ParentID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	if s.BBox, n1, err = unmarshalBBox(bs[n:]); err != nil {
		return s, n + n1, err
	}
	n += n1
	return s, n, nil
}

func (sectionSer) Size(s core.Section) int {
	return ord.String.Size(s.ID) +
		ord.String.Size(s.Title) +
		varint.Int.Size(s.Page) +
		varint.Int.Size(s.PageEnd) +
		stringSliceMUS.Size(s.Keywords) +
		ord.String.Size(s.HTML) +
		ord.String.Size(s.NotesHTML) +
		ord.String.Size(s.ParentID) +
		sizeBBox(s.BBox)
}

func (ser sectionSer) Skip(bs []byte) (int, error) {
	_, n, err := ser.Unmarshal(bs)
	return n, err
}

// ParsedQuery

type parsedQuerySer struct{}

func (parsedQuerySer) Marshal(q core.ParsedQuery, bs []byte) (n int) {
	n = marshalTime(q.Date, bs)
	n += stringSliceMUS.Marshal(q.Keywords, bs[n:])
	n += ord.String.Marshal(q.BuildingType, bs[n:])
	n += ord.String.Marshal(q.Province, bs[n:])
	n += stringSliceMUS.Marshal(q.SectionRefs, bs[n:])
	return n
}

func (parsedQuerySer) Unmarshal(bs []byte) (q core.ParsedQuery, n int, err error) {
	var n1 int
	if q.Date, n1, err = unmarshalTime(bs); err != nil {
		return q, n + n1, err
	}
	n += n1
	if q.Keywords, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return q, n + n1, err
	}
	n += n1
	if q.BuildingType, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return q, n + n1, err
	}
	n += n1
	if q.Province, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return q, n + n1, err
	}
	n += n1
	if q.SectionRefs, n1, err = stringSliceMUS.Unmarshal(bs[n:]); err != nil {
		return q, n + n1, err
	}
	n += n1
	return q, n, nil
}

func (parsedQuerySer) Size(q core.ParsedQuery) int {
	return sizeTime(q.Date) +
		stringSliceMUS.Size(q.Keywords) +
		ord.String.Size(q.BuildingType) +
		ord.String.Size(q.Province) +
		stringSliceMUS.Size(q.SectionRefs)
}

func (ser parsedQuerySer) Skip(bs []byte) (int, error) {
	_, n, err := ser.Unmarshal(bs)
	return n, err
}

// CachedQuery

type cachedQuerySer struct{}

func (cachedQuerySer) Marshal(c core.CachedQuery, bs []byte) (n int) {
	n = ord.String.Marshal(c.RawQuery, bs)
	n += ParsedQueryMUS.Marshal(c.Params, bs[n:])
	n += ord.String.Marshal(c.Model, bs[n:])
	n += varint.Int64.Marshal(c.Hits, bs[n:])
	n += marshalTime(c.CreatedAt, bs[n:])
	return n
}

func (cachedQuerySer) Unmarshal(bs []byte) (c core.CachedQuery, n int, err error) {
	var n1 int
	if c.RawQuery, n1, err = ord.String.Unmarshal(bs); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Params, n1, err = ParsedQueryMUS.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Model, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.Hits, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	if c.CreatedAt, n1, err = unmarshalTime(bs[n:]); err != nil {
		return c, n + n1, err
	}
	n += n1
	return c, n, nil
}

func (cachedQuerySer) Size(c core.CachedQuery) int {
	return ord.String.Size(c.RawQuery) +
		ParsedQueryMUS.Size(c.Params) +
		ord.String.Size(c.Model) +
		varint.Int64.Size(c.Hits) +
		sizeTime(c.CreatedAt)
}

func (ser cachedQuerySer) Skip(bs []byte) (int, error) {
	_, n, err := ser.Unmarshal(bs)
	return n, err
}

// TopResult

type topResultSer struct{}

func (topResultSer) Marshal(r core.TopResult, bs []byte) (n int) {
	n = ord.String.Marshal(r.Code, bs)
	n += ord.String.Marshal(r.Year, bs[n:])
	n += ord.String.Marshal(r.SectionID, bs[n:])
	n += ord.String.Marshal(r.Title, bs[n:])
	return n
}

func (topResultSer) Unmarshal(bs []byte) (r core.TopResult, n int, err error) {
	var n1 int
	if r.Code, n1, err = ord.String.Unmarshal(bs); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.Year, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.SectionID, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	return r, n, nil
}

func (topResultSer) Size(r core.TopResult) int {
	return ord.String.Size(r.Code) +
		ord.String.Size(r.Year) +
		ord.String.Size(r.SectionID) +
		ord.String.Size(r.Title)
}

func (ser topResultSer) Skip(bs []byte) (int, error) {
	_, n, err := ser.Unmarshal(bs)
	return n, err
}

// HistoryEntry

type historyEntrySer struct{}

func (historyEntrySer) Marshal(e core.HistoryEntry, bs []byte) (n int) {
	n = ord.String.Marshal(e.ID, bs)
	n += ord.String.Marshal(e.Actor, bs[n:])
	n += ord.String.Marshal(e.IPAddress, bs[n:])
	n += ord.String.Marshal(e.Query, bs[n:])
	n += ParsedQueryMUS.Marshal(e.Params, bs[n:])
	n += varint.Int.Marshal(e.ResultCount, bs[n:])
	n += topResultSliceMUS.Marshal(e.TopResults, bs[n:])
	n += marshalTime(e.Timestamp, bs[n:])
	return n
}

func (historyEntrySer) Unmarshal(bs []byte) (e core.HistoryEntry, n int, err error) {
	var n1 int
	if e.ID, n1, err = ord.String.Unmarshal(bs); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.Actor, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.IPAddress, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.Query, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.Params, n1, err = ParsedQueryMUS.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.ResultCount, n1, err = varint.Int.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.TopResults, n1, err = topResultSliceMUS.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.Timestamp, n1, err = unmarshalTime(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	return e, n, nil
}

func (historyEntrySer) Size(e core.HistoryEntry) int {
	return ord.String.Size(e.ID) +
		ord.String.Size(e.Actor) +
		ord.String.Size(e.IPAddress) +
		ord.String.Size(e.Query) +
		ParsedQueryMUS.Size(e.Params) +
		varint.Int.Size(e.ResultCount) +
		topResultSliceMUS.Size(e.TopResults) +
		sizeTime(e.Timestamp)
}

func (ser historyEntrySer) Skip(bs []byte) (int, error) {
	_, n, err := ser.Unmarshal(bs)
	return n, err
}
