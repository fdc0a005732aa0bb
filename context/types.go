// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"fmt"
	"net"
	"time"

	"git.cs.nctu.edu.tw/calee/sctp"
	"go.uber.org/zap/zapcore"
)

// PlmnId is a numeric MCC/MNC pair. MncLen keeps the digit count of the
// configured MNC so that "01" and "001" stay distinct.
type PlmnId struct {
	Mcc    uint16
	Mnc    uint16
	MncLen uint8
}

// MccString returns the three MCC digits.
func (p PlmnId) MccString() string {
	return fmt.Sprintf("%03d", p.Mcc)
}

// MncString returns the MNC padded to its configured length.
func (p PlmnId) MncString() string {
	if p.MncLen == uint8(MaxMncLength) {
		return fmt.Sprintf("%03d", p.Mnc)
	}
	return fmt.Sprintf("%02d", p.Mnc)
}

func (p PlmnId) String() string {
	return p.MccString() + "/" + p.MncString()
}

type Guami struct {
	PlmnId     PlmnId
	AmfRegion  uint8
	AmfSetId   uint16 // 10 bits
	AmfPointer uint8  // 6 bits
}

type LogConfig struct {
	Output        string
	ThreadSafe    bool
	Color         bool
	Levels        map[string]zapcore.Level
	Asn1Verbosity uint8
}

type NGAPConfig struct {
	Port             uint16
	OutcomeDropTimer time.Duration
	BindAddresses    []net.IP
}

// SCTPAddr returns the NGAP listen address, or nil when no bind address is
// configured.
func (n *NGAPConfig) SCTPAddr() *sctp.SCTPAddr {
	if len(n.BindAddresses) == 0 {
		return nil
	}
	addr := &sctp.SCTPAddr{Port: int(n.Port)}
	for _, ip := range n.BindAddresses {
		addr.IPAddrs = append(addr.IPAddrs, net.IPAddr{IP: ip})
	}
	return addr
}

type NASConfig struct {
	T3502 time.Duration
	T3512 time.Duration
	T3522 time.Duration
	T3550 time.Duration
	T3560 time.Duration
	T3570 time.Duration
	T3585 time.Duration
	T3586 time.Duration
	T3589 time.Duration
	T3595 time.Duration

	PreferredIntegrityAlgorithm PreferenceList
	PreferredCipheringAlgorithm PreferenceList

	ForceRejectTau        bool
	ForceRejectSr         bool
	DisableEsmInformation bool
	EnableApnCorrection   bool
	ApnCorrectionMap      ApnCorrectionMap
}

// S6aConfig describes the Diameter peer used for subscriber data.
type S6aConfig struct {
	ConfFile    string
	HssHostname string
	HssRealm    string
}

// SGWConfig holds the S-GW address used when the S-GW is not embedded.
type SGWConfig struct {
	S11Address net.IP
}
