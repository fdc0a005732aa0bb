// SPDX-FileCopyrightText: 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"fmt"
	"sort"
)

// TaiListType is the "type of list" of a tracking area identity list
// (TS 24.501 9.11.3.9).
type TaiListType uint8

const (
	TaiListTypeOnePlmnNonConsecutiveTacs TaiListType = 0x00
	TaiListTypeOnePlmnConsecutiveTacs    TaiListType = 0x01
	TaiListTypeManyPlmns                 TaiListType = 0x02
)

func (t TaiListType) String() string {
	switch t {
	case TaiListTypeOnePlmnNonConsecutiveTacs:
		return "ONE_PLMN_NON_CONSECUTIVE_TACS"
	case TaiListTypeOnePlmnConsecutiveTacs:
		return "ONE_PLMN_CONSECUTIVE_TACS"
	case TaiListTypeManyPlmns:
		return "MANY_PLMNS"
	}
	return fmt.Sprintf("TaiListType(%d)", uint8(t))
}

type ServedTaiEntry struct {
	Mcc    uint16
	Mnc    uint16
	MncLen uint8
	Tac    uint32
}

func (e ServedTaiEntry) PlmnId() PlmnId {
	return PlmnId{Mcc: e.Mcc, Mnc: e.Mnc, MncLen: e.MncLen}
}

func (e ServedTaiEntry) samePlmn(o ServedTaiEntry) bool {
	return e.Mcc == o.Mcc && e.Mnc == o.Mnc
}

func (e ServedTaiEntry) less(o ServedTaiEntry) bool {
	if e.Mcc != o.Mcc {
		return e.Mcc < o.Mcc
	}
	if e.Mnc != o.Mnc {
		return e.Mnc < o.Mnc
	}
	if e.Tac != o.Tac {
		return e.Tac < o.Tac
	}
	// "01" and "001" parse to the same MNC; keep the order total
	return e.MncLen < o.MncLen
}

// TacIsValid reports whether tac lies in the range a gNB may broadcast.
func TacIsValid(tac uint32) bool {
	return tac >= MinTac && tac <= MaxTac
}

// ServedTaiList is the area served by the AMF, sorted by (mcc, mnc, tac).
type ServedTaiList struct {
	ListType TaiListType
	Entries  []ServedTaiEntry
}

func (l ServedTaiList) clone() ServedTaiList {
	c := ServedTaiList{ListType: l.ListType}
	if l.Entries != nil {
		c.Entries = make([]ServedTaiEntry, len(l.Entries))
		copy(c.Entries, l.Entries)
	}
	return c
}

// Contains reports whether the given tracking area is served.
func (l ServedTaiList) Contains(plmn PlmnId, tac uint32) bool {
	key := ServedTaiEntry{Mcc: plmn.Mcc, Mnc: plmn.Mnc, Tac: tac}
	i := sort.Search(len(l.Entries), func(i int) bool { return !l.Entries[i].less(key) })
	return i < len(l.Entries) && l.Entries[i].samePlmn(key) && l.Entries[i].Tac == tac
}

// NormalizeServedTai sorts entries in place by (mcc, mnc, tac) and returns
// them together with the list type derived from the sorted order.
func NormalizeServedTai(entries []ServedTaiEntry) ServedTaiList {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].less(entries[j])
	})
	return ServedTaiList{
		ListType: classifyServedTai(entries),
		Entries:  entries,
	}
}

// classifyServedTai expects entries sorted. A PLMN change anywhere wins over
// a TAC gap; an empty or single entry list is consecutive.
func classifyServedTai(entries []ServedTaiEntry) TaiListType {
	listType := TaiListTypeOnePlmnConsecutiveTacs
	for i := 1; i < len(entries); i++ {
		if !entries[i].samePlmn(entries[0]) || !entries[i].samePlmn(entries[i-1]) {
			return TaiListTypeManyPlmns
		}
		if entries[i].Tac != entries[i-1].Tac+1 {
			listType = TaiListTypeOnePlmnNonConsecutiveTacs
		}
	}
	return listType
}
