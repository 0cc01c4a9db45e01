// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/apex/log"
)

// Tag is a discovered json field tag, printed by --schema.
type Tag struct {
	Name      string
	Omitempty bool
}

// NewTag parses a json struct tag value. The holder prefix builds dotted
// names for nested fields.
func NewTag(holder string, s string) Tag {
	parts := strings.Split(s, ",")
	if parts[0] == "" || parts[0] == "-" {
		return Tag{}
	}

	tag := Tag{Name: parts[0]}
	if holder != "" {
		tag.Name = holder + "." + tag.Name
	}
	for _, opt := range parts[1:] {
		if opt == "omitempty" {
			tag.Omitempty = true
		}
	}
	return tag
}

// Print renders the tag into its display form.
func (t Tag) Print() string {
	if t.Omitempty {
		return t.Name + " (optional)"
	}
	return t.Name
}

// DumpSchema prints the sorted json attribute names of typ.
func DumpSchema(w io.Writer, typ reflect.Type) {
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	tags := DumpSchemaWalker("", typ, 0)
	if len(tags) == 0 {
		log.Debugf("no tags found for type: %s", typ.Name())
		return
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })

	fmt.Fprintln(w, "Schema for", typ.Name(), "--")
	for _, tag := range tags {
		fmt.Fprintln(w, tag.Print())
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "These names are accepted by --filter and --sort.")
}

const maxSchemaDepth = 1

// DumpSchemaWalker walks a struct type collecting json tags, descending into
// nested structs up to maxSchemaDepth.
func DumpSchemaWalker(holder string, typ reflect.Type, depth int) []Tag {
	tags := make([]Tag, 0)

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)

		tagValue, ok := field.Tag.Lookup("json")
		if !ok {
			continue
		}

		tag := NewTag(holder, tagValue)
		if tag.Name == "" {
			continue
		}
		tags = append(tags, tag)

		if depth >= maxSchemaDepth {
			continue
		}

		ft := field.Type
		if ft.Kind() == reflect.Ptr {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			tags = append(tags, DumpSchemaWalker(tag.Name, ft, depth+1)...)
		}
	}

	return tags
}
