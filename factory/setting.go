// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package factory

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Setting is one node of a parsed configuration document: a group of named
// members, an ordered list, or a scalar leaf.
type Setting struct {
	path  string
	value interface{}
}

// scalar is a leaf as written in the document. YAML 1.1 resolves 01 as an
// octal int and yes as a bool; text keeps what the operator typed.
type scalar struct {
	text  string
	typed interface{}
}

// node decodes a document into groups (map[string]interface{}), lists
// ([]interface{}) and scalar leaves.
type node struct {
	value interface{}
}

func (n *node) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var resolved interface{}
	if err := unmarshal(&resolved); err != nil {
		return err
	}
	switch resolved.(type) {
	case nil:
		n.value = nil
	case map[interface{}]interface{}:
		var members map[string]node
		if err := unmarshal(&members); err != nil {
			return err
		}
		group := make(map[string]interface{}, len(members))
		for name, member := range members {
			group[name] = member.value
		}
		n.value = group
	case []interface{}:
		var elems []node
		if err := unmarshal(&elems); err != nil {
			return err
		}
		list := make([]interface{}, len(elems))
		for i, elem := range elems {
			list[i] = elem.value
		}
		n.value = list
	default:
		var text string
		if err := unmarshal(&text); err != nil {
			return err
		}
		n.value = scalar{text: text, typed: resolved}
	}
	return nil
}

// ParseSettings decodes a YAML document into a settings tree. The decoder
// error, which carries the offending line, is kept in the returned error.
func ParseSettings(content []byte) (*Setting, error) {
	var root node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, errors.Wrap(ErrSettingsParse, err.Error())
	}
	if root.value == nil {
		root.value = map[string]interface{}{}
	}
	if _, ok := root.value.(map[string]interface{}); !ok {
		return nil, errors.Wrap(ErrSettingsParse, "top level of the document is not a mapping")
	}
	return &Setting{value: root.value}, nil
}

// Path returns the dotted location of the setting, with list positions
// written as [i].
func (s *Setting) Path() string {
	return s.path
}

func (s *Setting) child(name string) string {
	if s.path == "" {
		return name
	}
	return s.path + "." + name
}

// Member returns the named child of a group, or nil when it is absent or
// this setting is not a group.
func (s *Setting) Member(name string) *Setting {
	if s == nil {
		return nil
	}
	group, ok := s.value.(map[string]interface{})
	if !ok {
		return nil
	}
	v, ok := group[name]
	if !ok {
		return nil
	}
	return &Setting{path: s.child(name), value: v}
}

// IsGroup reports whether the setting holds named members.
func (s *Setting) IsGroup() bool {
	if s == nil {
		return false
	}
	_, ok := s.value.(map[string]interface{})
	return ok
}

// IsList reports whether the setting holds an ordered list.
func (s *Setting) IsList() bool {
	if s == nil {
		return false
	}
	switch s.value.(type) {
	case []interface{}:
		return true
	case nil:
		// "key:" with nothing behind it is an empty list
		return true
	}
	return false
}

// Len returns the number of list elements, 0 for anything but a list.
func (s *Setting) Len() int {
	if s == nil {
		return 0
	}
	list, ok := s.value.([]interface{})
	if !ok {
		return 0
	}
	return len(list)
}

// Elem returns the i-th list element or nil.
func (s *Setting) Elem(i int) *Setting {
	if s == nil {
		return nil
	}
	list, ok := s.value.([]interface{})
	if !ok || i < 0 || i >= len(list) {
		return nil
	}
	return &Setting{path: fmt.Sprintf("%s[%d]", s.path, i), value: list[i]}
}

// StringElem returns the i-th list element as a string.
func (s *Setting) StringElem(i int) (string, bool) {
	e := s.Elem(i)
	if e == nil {
		return "", false
	}
	return scalarString(e.value)
}

// LookupString returns the named member as written in the document, so
// mnc: 01 reads as "01" and yes as "yes"; an empty value reads as "".
func (s *Setting) LookupString(name string) (string, bool) {
	m := s.Member(name)
	if m == nil {
		return "", false
	}
	return scalarString(m.value)
}

// LookupInt returns the named member when it is an integer. Decimal digits
// are read as decimal even with leading zeros.
func (s *Setting) LookupInt(name string) (int, bool) {
	m := s.Member(name)
	if m == nil {
		return 0, false
	}
	return scalarInt(m.value)
}

// Lookup resolves a dotted path from this setting and returns the scalar
// found there, either a string or an int.
func (s *Setting) Lookup(path string) (interface{}, bool) {
	node := s.walk(path)
	if node == nil {
		return nil, false
	}
	if n, ok := scalarInt(node.value); ok {
		return n, true
	}
	if str, ok := scalarString(node.value); ok {
		return str, true
	}
	return nil, false
}

// LookupList resolves a dotted path and returns the elements of the list
// found there; nil when the path does not name a list.
func (s *Setting) LookupList(path string) []*Setting {
	node := s.walk(path)
	if node == nil || !node.IsList() {
		return nil
	}
	elems := make([]*Setting, node.Len())
	for i := range elems {
		elems[i] = node.Elem(i)
	}
	return elems
}

func (s *Setting) walk(path string) *Setting {
	node := s
	for _, name := range strings.Split(path, ".") {
		node = node.Member(name)
		if node == nil {
			return nil
		}
	}
	return node
}

func scalarString(v interface{}) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", true
	case scalar:
		return val.text, true
	}
	return "", false
}

func scalarInt(v interface{}) (int, bool) {
	leaf, ok := v.(scalar)
	if !ok {
		return 0, false
	}
	switch val := leaf.typed.(type) {
	case int, int64, uint64:
		if n, err := strconv.ParseInt(leaf.text, 10, 0); err == nil {
			return int(n), true
		}
		switch val := val.(type) {
		case int:
			return val, true
		case int64:
			if val < math.MinInt || val > math.MaxInt {
				return 0, false
			}
			return int(val), true
		case uint64:
			if val > math.MaxInt {
				return 0, false
			}
			return int(val), true
		}
	}
	return 0, false
}
