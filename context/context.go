// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package context

import (
	"net"
	"sync"
	"time"

	"github.com/omec-project/amfcfg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

var ErrUninitialized = errors.New("AMF configuration is not initialized")

// State tracks how far the configuration got in its lifecycle.
type State int

const (
	StateUninitialized State = iota
	StateDefaulted
	StateLoaded
)

func (s State) String() string {
	switch s {
	case StateDefaulted:
		return "Defaulted"
	case StateLoaded:
		return "Loaded"
	}
	return "Uninitialized"
}

// Values is the validated AMF configuration.
type Values struct {
	Realm              string
	FullNetworkName    string
	ShortNetworkName   string
	DaylightSavingTime uint32
	PidDirectory       string

	MaxGnbs                      uint32
	MaxUes                       uint32
	RelativeCapacity             uint8
	StatisticTimer               time.Duration
	UseStateless                 bool
	UnauthenticatedImsiSupported bool

	Log       LogConfig
	NGAP      NGAPConfig
	NAS       NASConfig
	GuamiList []Guami
	ServedTai ServedTaiList
	S6a       *S6aConfig
	SGW       SGWConfig
}

func defaultValues() Values {
	return Values{
		MaxGnbs:          DefaultMaxGnbs,
		MaxUes:           DefaultMaxUes,
		RelativeCapacity: DefaultRelativeCapacity,
		StatisticTimer:   AmfStatisticTimer,
		Log: LogConfig{
			Levels: map[string]zapcore.Level{},
		},
		NGAP: NGAPConfig{
			Port:             DefaultNgapPort,
			OutcomeDropTimer: NgapOutcomeDropTimer,
		},
		NAS: NASConfig{
			T3502:          TimeT3502,
			T3512:          TimeT3512,
			T3522:          TimeT3522,
			T3550:          TimeT3550,
			T3560:          TimeT3560,
			T3570:          TimeT3570,
			T3585:          TimeT3585,
			T3586:          TimeT3586,
			T3589:          TimeT3589,
			T3595:          TimeT3595,
			ForceRejectTau: true,
			ForceRejectSr:  true,
		},
		GuamiList: []Guami{{
			PlmnId:     PlmnId{Mcc: PlmnMcc, Mnc: PlmnMnc, MncLen: PlmnMncLen},
			AmfRegion:  AmfRegion,
			AmfSetId:   AmfSet,
			AmfPointer: AmfPointer,
		}},
		ServedTai: ServedTaiList{
			ListType: TaiListTypeOnePlmnConsecutiveTacs,
			Entries: []ServedTaiEntry{{
				Mcc:    PlmnMcc,
				Mnc:    PlmnMnc,
				MncLen: PlmnMncLen,
				Tac:    PlmnTac,
			}},
		},
	}
}

// clone returns a deep copy; nothing in the result aliases v.
func (v *Values) clone() Values {
	c := *v
	c.Log.Levels = make(map[string]zapcore.Level, len(v.Log.Levels))
	for name, level := range v.Log.Levels {
		c.Log.Levels[name] = level
	}
	c.NGAP.BindAddresses = cloneIPs(v.NGAP.BindAddresses)
	if v.GuamiList != nil {
		c.GuamiList = make([]Guami, len(v.GuamiList))
		copy(c.GuamiList, v.GuamiList)
	}
	c.ServedTai = v.ServedTai.clone()
	if v.S6a != nil {
		s6a := *v.S6a
		c.S6a = &s6a
	}
	c.SGW.S11Address = cloneIP(v.SGW.S11Address)
	return c
}

func cloneIP(ip net.IP) net.IP {
	if ip == nil {
		return nil
	}
	c := make(net.IP, len(ip))
	copy(c, ip)
	return c
}

func cloneIPs(ips []net.IP) []net.IP {
	if ips == nil {
		return nil
	}
	c := make([]net.IP, len(ips))
	for i, ip := range ips {
		c[i] = cloneIP(ip)
	}
	return c
}

// AMFConfig is the configuration shared by every AMF task. Reads run under
// the shared lock; Apply is the only writer.
type AMFConfig struct {
	mu     *sync.RWMutex
	state  State
	values Values
}

// NewAMFConfig returns a configuration holding the compiled-in defaults,
// guarded by mu. A nil mu gives the configuration a lock of its own.
func NewAMFConfig(mu *sync.RWMutex) *AMFConfig {
	if mu == nil {
		mu = new(sync.RWMutex)
	}
	c := &AMFConfig{mu: mu}
	c.Init()
	return c
}

// Init resets every field to its default value.
func (c *AMFConfig) Init() {
	if c.mu == nil {
		c.mu = new(sync.RWMutex)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = defaultValues()
	c.state = StateDefaulted
}

// Destroy drops the configuration; it has to be initialized again before use.
func (c *AMFConfig) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = Values{}
	c.state = StateUninitialized
}

func (c *AMFConfig) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Apply runs update on a copy of the current values while holding the
// write lock and commits the copy only when update succeeds, so readers see
// either the old configuration or the new one.
func (c *AMFConfig) Apply(update func(v *Values) error) error {
	if c.mu == nil {
		return ErrUninitialized
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateUninitialized {
		return ErrUninitialized
	}

	next := c.values.clone()
	if err := update(&next); err != nil {
		return err
	}
	c.commit(&next)
	c.state = StateLoaded
	return nil
}

// commit installs next. The served TAI array is kept when the number of
// entries did not change and replaced otherwise.
func (c *AMFConfig) commit(next *Values) {
	cur := c.values.ServedTai.Entries
	if cur != nil && len(cur) == len(next.ServedTai.Entries) {
		copy(cur, next.ServedTai.Entries)
		next.ServedTai.Entries = cur
	} else {
		logger.CtxLog.Debugf("served TAI list resized from %d to %d entries", len(cur), len(next.ServedTai.Entries))
	}
	c.values = *next
}

// Snapshot returns a private copy of the whole configuration.
func (c *AMFConfig) Snapshot() Values {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values.clone()
}

// View calls read with the live values under the shared lock. read must not
// keep references to slices or maps it was shown.
func (c *AMFConfig) View(read func(v *Values)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	read(&c.values)
}

// ServedTai returns a copy of the served TAI list.
func (c *AMFConfig) ServedTai() ServedTaiList {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values.ServedTai.clone()
}

func (c *AMFConfig) NAS() NASConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values.NAS
}

func (c *AMFConfig) GuamiList() []Guami {
	c.mu.RLock()
	defer c.mu.RUnlock()
	list := make([]Guami, len(c.values.GuamiList))
	copy(list, c.values.GuamiList)
	return list
}
