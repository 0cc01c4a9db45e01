// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"
)

// Entry summarizes one server-side cache. Every field but ID comes from the
// server and may be missing; ID is filled in from the key the entry was
// listed under.
type Entry struct {
	ID                string     `json:"id,omitempty" yaml:"id,omitempty"`
	Name              string     `json:"name,omitempty" yaml:"name,omitempty"`
	Size              *int64     `json:"size,omitempty" yaml:"size,omitempty"`
	InitializedTime   *Timestamp `json:"initializedTime,omitempty" yaml:"initializedTime,omitempty"`
	LastRefreshedTime *Timestamp `json:"lastRefreshedTime,omitempty" yaml:"lastRefreshedTime,omitempty"`
}

// List is the /list payload: cache id to entry. It has no order.
type List map[string]Entry

// IDs returns the keys in ascending order.
func (l List) IDs() []string {
	ids := make([]string, 0, len(l))
	for id := range l {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// timestampLayouts are tried in order for string timestamps. The second and
// third match what the server's JSON formatter emits.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"01/02/2006 15:04:05 MST",
	"01/02/2006 15:04:05.000 MST",
	"2006-01-02 15:04:05",
}

// Timestamp accepts epoch milliseconds or a formatted string. Strings that
// match none of the known layouts are kept verbatim in Raw.
type Timestamp struct {
	Time time.Time
	Raw  string
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t}
}

// Parsed reports whether Time holds a real value.
func (t Timestamp) Parsed() bool {
	return t.Raw == "" && !t.Time.IsZero()
}

func (t Timestamp) String() string {
	if t.Raw != "" {
		return t.Raw
	}
	if t.Time.IsZero() {
		return ""
	}
	return t.Time.Format(time.RFC3339)
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = parseTimestamp(s)
		return nil
	}

	ms, err := strconv.ParseFloat(string(b), 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s: %w", b, err)
	}
	*t = Timestamp{Time: time.UnixMilli(int64(ms))}
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t Timestamp) MarshalYAML() (interface{}, error) {
	return t.String(), nil
}

func parseTimestamp(s string) Timestamp {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: parsed}
		}
	}
	// Epoch milliseconds sent as a string.
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Timestamp{Time: time.UnixMilli(ms)}
	}
	return Timestamp{Raw: s}
}
