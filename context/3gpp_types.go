// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package context

import "time"

const (
	MccLength               int    = 3
	MinMncLength            int    = 2
	MaxMncLength            int    = 3
	MinTaiSupported         int    = 1
	MaxGuamiList            int    = 5
	MaxApnCorrectionMapList int    = 10
	MaxPreferenceListSize   int    = 8
	MinTac                  uint32 = 0x0001
	MaxTac                  uint32 = 0xFFFE
	MaxAmfSetId             uint16 = 0x3FF
	MaxAmfPointer           uint8  = 0x3F
	DefaultNgapPort         uint16 = 38412
	DefaultRelativeCapacity uint8  = 10
	DefaultMaxGnbs          uint32 = 2
	DefaultMaxUes           uint32 = 2
)

// compiled-in defaults for the served area and GUAMI
const (
	PlmnMcc    uint16 = 1
	PlmnMnc    uint16 = 1
	PlmnMncLen uint8  = 2
	PlmnTac    uint32 = 1
	AmfRegion  uint8  = 1
	AmfSet     uint16 = 1
	AmfPointer uint8  = 0
)

// timers at AMF side, defined in TS 24.501 tables 10.2.1 and 10.2.2
const (
	TimeT3502 time.Duration = 12 * time.Minute
	TimeT3512 time.Duration = 54 * time.Minute
	TimeT3522 time.Duration = 6 * time.Second
	TimeT3550 time.Duration = 6 * time.Second
	TimeT3560 time.Duration = 6 * time.Second
	TimeT3570 time.Duration = 6 * time.Second
	TimeT3585 time.Duration = 8 * time.Second
	TimeT3586 time.Duration = 8 * time.Second
	TimeT3589 time.Duration = 8 * time.Second
	TimeT3595 time.Duration = 8 * time.Second

	NgapOutcomeDropTimer time.Duration = 5 * time.Second
	AmfStatisticTimer    time.Duration = 60 * time.Second
)
