// SPDX-FileCopyrightText: 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"strings"

	"github.com/pkg/errors"
)

var ErrApnMapCapacity = errors.New("too many APN correction rules")

type ApnCorrectionEntry struct {
	ImsiPrefix  string
	ApnOverride string
}

// ApnCorrectionMap rewrites the APN requested by subscribers whose IMSI
// starts with a configured prefix. Only the first Count slots are valid.
type ApnCorrectionMap struct {
	Count int
	Map   [MaxApnCorrectionMapList]ApnCorrectionEntry
}

// Build replaces the rules with rules. Slots are rewritten in place; slots
// past the new Count keep whatever they held before.
func (m *ApnCorrectionMap) Build(rules []ApnCorrectionEntry) error {
	if len(rules) > MaxApnCorrectionMapList {
		return errors.Wrapf(ErrApnMapCapacity, "number of apn correction map configured: %d exceeds the maximum number supported: %d",
			len(rules), MaxApnCorrectionMapList)
	}
	m.Count = 0
	for i, rule := range rules {
		m.Map[i].ImsiPrefix = rule.ImsiPrefix
		m.Map[i].ApnOverride = rule.ApnOverride
		m.Count++
	}
	return nil
}

// Entries returns a copy of the valid rules in configured order.
func (m *ApnCorrectionMap) Entries() []ApnCorrectionEntry {
	entries := make([]ApnCorrectionEntry, m.Count)
	copy(entries, m.Map[:m.Count])
	return entries
}

// Correct returns the override of the first rule whose prefix matches imsi.
func (m *ApnCorrectionMap) Correct(imsi string) (string, bool) {
	for _, rule := range m.Map[:m.Count] {
		if strings.HasPrefix(imsi, rule.ImsiPrefix) {
			return rule.ApnOverride, true
		}
	}
	return "", false
}
