// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"fmt"
	"math"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	"github.com/omec-project/amfcfg/context"
	"github.com/omec-project/amfcfg/factory"
	"github.com/omec-project/amfcfg/logger"
	"github.com/pkg/errors"
)

var (
	ErrBadMncLength       = errors.New("bad MNC length")
	ErrNoServedTai        = errors.New("no TAI is configured")
	ErrMissingHssHostname = errors.New("missing HSS hostname")
	ErrMissingHssRealm    = errors.New("missing HSS realm")
	ErrBadAddress         = errors.New("bad IP address format")
	ErrBadGuami           = errors.New("invalid GUAMI")
)

// Warning reports a configuration value that was accepted or skipped
// without stopping the load.
type Warning struct {
	Key     string
	Message string
}

func (w Warning) String() string {
	return w.Key + ": " + w.Message
}

type loader struct {
	warnings []Warning
}

func (l *loader) warn(key, format string, args ...interface{}) {
	w := Warning{Key: key, Message: fmt.Sprintf(format, args...)}
	logger.CfgLog.Warnf("%s", w)
	l.warnings = append(l.warnings, w)
}

func key(s *factory.Setting, name string) string {
	if s.Path() == "" {
		return name
	}
	return s.Path() + "." + name
}

// InitAMFContext overrides amfCfg with every value present in root. Values
// the document does not mention keep their current setting. On error
// amfCfg is left untouched.
func InitAMFContext(amfCfg *context.AMFConfig, root *factory.Setting) ([]Warning, error) {
	l := &loader{}
	err := amfCfg.Apply(func(v *context.Values) error {
		l.warnings = nil
		amf := root.Member(factory.AMF_CONFIG_STRING_AMF_CONFIG)
		if amf == nil {
			logger.CfgLog.Warnf("no [%s] section found, keeping current configuration", factory.AMF_CONFIG_STRING_AMF_CONFIG)
			return nil
		}
		return l.load(v, amf)
	})
	if err != nil {
		return nil, err
	}
	return l.warnings, nil
}

func (l *loader) load(v *context.Values, amf *factory.Setting) error {
	if logging := amf.Member(factory.LOG_CONFIG_STRING_LOGGING); logging != nil {
		if err := l.parseLogging(v, logging); err != nil {
			return err
		}
	}

	if err := l.parseGeneral(v, amf); err != nil {
		return err
	}

	if !factory.S6aOverGRPC {
		if s6a := amf.Member(factory.AMF_CONFIG_STRING_S6A_CONFIG); s6a != nil {
			if err := l.parseS6a(v, s6a); err != nil {
				return err
			}
		}
	}

	if taiList := amf.Member(factory.AMF_CONFIG_STRING_TAI_LIST); taiList != nil {
		if err := l.parseServedTai(v, taiList); err != nil {
			return err
		}
	}

	if guamiList := amf.Member(factory.AMF_CONFIG_STRING_GUAMI_LIST); guamiList != nil {
		if err := l.parseGuamiList(v, guamiList); err != nil {
			return err
		}
	}

	if ngap := amf.Member(factory.AMF_CONFIG_STRING_NGAP_CONFIG); ngap != nil {
		if err := l.parseNgap(v, ngap); err != nil {
			return err
		}
	}

	if nas := amf.Member(factory.AMF_CONFIG_STRING_NAS_CONFIG); nas != nil {
		if err := l.parseNas(v, nas); err != nil {
			return err
		}
	}

	if !factory.EmbeddedSGW {
		if sgw := amf.Member(factory.AMF_CONFIG_STRING_SGW_CONFIG); sgw != nil {
			if err := l.parseSgw(v, sgw); err != nil {
				return err
			}
		}
	}
	return nil
}

func lookupBool(s *factory.Setting, name string, dst *bool) error {
	str, ok := s.LookupString(name)
	if !ok {
		return nil
	}
	b, err := ParseBool(str)
	if err != nil {
		return errors.WithMessagef(err, "error in config file at %s", key(s, name))
	}
	*dst = b
	return nil
}

func lookupStringInto(s *factory.Setting, name string, dst *string) {
	if str, ok := s.LookupString(name); ok {
		*dst = str
	}
}

// lookupUint reads a non negative integer no larger than limit.
func (l *loader) lookupUint(s *factory.Setting, name string, limit uint64) (uint64, bool) {
	n, ok := s.LookupInt(name)
	if !ok {
		if s.Member(name) != nil {
			l.warn(key(s, name), "expected an integer, value ignored")
		}
		return 0, false
	}
	if n < 0 || uint64(n) > limit {
		l.warn(key(s, name), "value %d out of range [0, %d], value ignored", n, limit)
		return 0, false
	}
	return uint64(n), true
}

func (l *loader) lookupDuration(s *factory.Setting, name string, unit time.Duration, dst *time.Duration) {
	if n, ok := l.lookupUint(s, name, math.MaxUint32); ok {
		*dst = time.Duration(n) * unit
	}
}

func (l *loader) parseLogging(v *context.Values, s *factory.Setting) error {
	lookupStringInto(s, factory.LOG_CONFIG_STRING_OUTPUT, &v.Log.Output)
	if err := lookupBool(s, factory.LOG_CONFIG_STRING_OUTPUT_THREAD_SAFE, &v.Log.ThreadSafe); err != nil {
		return err
	}
	if color, ok := s.LookupString(factory.LOG_CONFIG_STRING_COLOR); ok {
		v.Log.Color = strings.EqualFold(color, "yes")
	}

	for _, subsystem := range factory.LogSubsystems() {
		name := subsystem + factory.LOG_CONFIG_STRING_LOG_LEVEL_SUFFIX
		str, ok := s.LookupString(name)
		if !ok {
			continue
		}
		level, err := ParseLogLevel(str)
		if err != nil {
			l.warn(key(s, name), "log level [%s] is invalid", str)
			continue
		}
		v.Log.Levels[subsystem] = level
	}

	if str, ok := s.LookupString(factory.AMF_CONFIG_STRING_ASN1_VERBOSITY); ok {
		v.Log.Asn1Verbosity = Asn1Verbosity(str)
	}
	return nil
}

func (l *loader) parseGeneral(v *context.Values, amf *factory.Setting) error {
	lookupStringInto(amf, factory.AMF_CONFIG_STRING_REALM, &v.Realm)
	lookupStringInto(amf, factory.AMF_CONFIG_STRING_FULL_NETWORK_NAME, &v.FullNetworkName)
	lookupStringInto(amf, factory.AMF_CONFIG_STRING_SHORT_NETWORK_NAME, &v.ShortNetworkName)
	lookupStringInto(amf, factory.AMF_CONFIG_STRING_PID_DIRECTORY, &v.PidDirectory)

	if n, ok := l.lookupUint(amf, factory.AMF_CONFIG_STRING_DAYLIGHT_SAVING_TIME, math.MaxUint32); ok {
		v.DaylightSavingTime = uint32(n)
	}
	if n, ok := l.lookupUint(amf, factory.AMF_CONFIG_STRING_MAXGNB, math.MaxUint32); ok {
		v.MaxGnbs = uint32(n)
	}
	if n, ok := l.lookupUint(amf, factory.AMF_CONFIG_STRING_MAXUE, math.MaxUint32); ok {
		v.MaxUes = uint32(n)
	}
	if n, ok := l.lookupUint(amf, factory.AMF_CONFIG_STRING_RELATIVE_CAPACITY, math.MaxUint8); ok {
		v.RelativeCapacity = uint8(n)
	}
	l.lookupDuration(amf, factory.AMF_CONFIG_STRING_STATISTIC_TIMER, time.Second, &v.StatisticTimer)

	if err := lookupBool(amf, factory.AMF_CONFIG_STRING_USE_STATELESS, &v.UseStateless); err != nil {
		return err
	}
	return lookupBool(amf, factory.AMF_CONFIG_STRING_UNAUTHENTICATED_IMSI_SUPPORTED, &v.UnauthenticatedImsiSupported)
}

func (l *loader) parseS6a(v *context.Values, s *factory.Setting) error {
	s6a := context.S6aConfig{}
	if v.S6a != nil {
		s6a = *v.S6a
	}
	lookupStringInto(s, factory.AMF_CONFIG_STRING_S6A_CONF_FILE_PATH, &s6a.ConfFile)

	hostname, ok := s.LookupString(factory.AMF_CONFIG_STRING_S6A_HSS_HOSTNAME)
	if !ok || hostname == "" {
		return errors.Wrapf(ErrMissingHssHostname, "you have to provide a valid HSS hostname %s=...",
			key(s, factory.AMF_CONFIG_STRING_S6A_HSS_HOSTNAME))
	}
	if !govalidator.IsDNSName(hostname) {
		l.warn(key(s, factory.AMF_CONFIG_STRING_S6A_HSS_HOSTNAME), "[%s] is not a valid host name", hostname)
	}
	s6a.HssHostname = hostname

	realm, ok := s.LookupString(factory.AMF_CONFIG_STRING_S6A_HSS_REALM)
	if !ok || realm == "" {
		return errors.Wrapf(ErrMissingHssRealm, "you have to provide a valid HSS realm %s=...",
			key(s, factory.AMF_CONFIG_STRING_S6A_HSS_REALM))
	}
	s6a.HssRealm = realm

	v.S6a = &s6a
	logger.CfgLog.Infof("S6a peer [%s] realm [%s]", s6a.HssHostname, s6a.HssRealm)
	return nil
}

// parseDigits reads a decimal code the way the legacy files were read: a
// value that is not a number counts as 0.
func (l *loader) parseDigits(path, str string, bitSize int) uint64 {
	n, err := strconv.ParseUint(str, 10, bitSize)
	if err != nil {
		l.warn(path, "[%s] is not a valid number, using 0", str)
		return 0
	}
	return n
}

// parsePlmn fills the PLMN of a taiList or guamiList element.
func (l *loader) parsePlmn(elem *factory.Setting) (context.PlmnId, error) {
	var plmn context.PlmnId
	if mcc, ok := elem.LookupString(factory.AMF_CONFIG_STRING_MCC); ok {
		if len(mcc) != context.MccLength {
			l.warn(key(elem, factory.AMF_CONFIG_STRING_MCC), "MCC [%s] must have %d digits", mcc, context.MccLength)
		}
		plmn.Mcc = uint16(l.parseDigits(key(elem, factory.AMF_CONFIG_STRING_MCC), mcc, 16))
	} else {
		l.warn(key(elem, factory.AMF_CONFIG_STRING_MCC), "missing")
	}

	mnc, ok := elem.LookupString(factory.AMF_CONFIG_STRING_MNC)
	if !ok {
		l.warn(key(elem, factory.AMF_CONFIG_STRING_MNC), "missing")
		return plmn, nil
	}
	mncLen := len(mnc)
	if mncLen != context.MinMncLength && mncLen != context.MaxMncLength {
		return plmn, errors.Wrapf(ErrBadMncLength, "%s: bad MNC length %d, must be %d or %d",
			key(elem, factory.AMF_CONFIG_STRING_MNC), mncLen, context.MinMncLength, context.MaxMncLength)
	}
	plmn.Mnc = uint16(l.parseDigits(key(elem, factory.AMF_CONFIG_STRING_MNC), mnc, 16))
	plmn.MncLen = uint8(mncLen)
	return plmn, nil
}

func (l *loader) parseServedTai(v *context.Values, s *factory.Setting) error {
	num := s.Len()
	if num < context.MinTaiSupported {
		return errors.Wrapf(ErrNoServedTai, "%s: at least %d TAI must be configured", s.Path(), context.MinTaiSupported)
	}

	entries := make([]context.ServedTaiEntry, 0, num)
	for i := 0; i < num; i++ {
		elem := s.Elem(i)
		if !elem.IsGroup() {
			l.warn(elem.Path(), "expected a {mcc, mnc, tac} group")
		}
		plmn, err := l.parsePlmn(elem)
		if err != nil {
			return err
		}
		entry := context.ServedTaiEntry{Mcc: plmn.Mcc, Mnc: plmn.Mnc, MncLen: plmn.MncLen}

		if tac, ok := elem.LookupString(factory.AMF_CONFIG_STRING_TAC); ok {
			entry.Tac = uint32(l.parseDigits(key(elem, factory.AMF_CONFIG_STRING_TAC), tac, 32))
			if !context.TacIsValid(entry.Tac) {
				l.warn(key(elem, factory.AMF_CONFIG_STRING_TAC), "invalid TAC value 0x%04x", entry.Tac)
			}
		}
		entries = append(entries, entry)
	}

	v.ServedTai = context.NormalizeServedTai(entries)
	logger.CfgLog.Infof("served TAI list: %d entries, type %s", len(entries), v.ServedTai.ListType)
	return nil
}

func (l *loader) parseGuamiList(v *context.Values, s *factory.Setting) error {
	num := s.Len()
	if num == 0 {
		l.warn(s.Path(), "empty GUAMI list, keeping current list")
		return nil
	}
	if num > context.MaxGuamiList {
		return errors.Wrapf(ErrBadGuami, "%s: %d GUAMIs configured, at most %d supported", s.Path(), num, context.MaxGuamiList)
	}

	list := make([]context.Guami, 0, num)
	for i := 0; i < num; i++ {
		elem := s.Elem(i)
		plmn, err := l.parsePlmn(elem)
		if err != nil {
			return err
		}
		guami := context.Guami{PlmnId: plmn}

		region, ok := elem.LookupInt(factory.AMF_CONFIG_STRING_AMF_REGION_ID)
		if ok && (region < 0 || region > math.MaxUint8) {
			return errors.Wrapf(ErrBadGuami, "%s: region id %d out of range",
				key(elem, factory.AMF_CONFIG_STRING_AMF_REGION_ID), region)
		}
		guami.AmfRegion = uint8(region)

		set, ok := elem.LookupInt(factory.AMF_CONFIG_STRING_AMF_SET_ID)
		if ok && (set < 0 || set > int(context.MaxAmfSetId)) {
			return errors.Wrapf(ErrBadGuami, "%s: set id %d out of range",
				key(elem, factory.AMF_CONFIG_STRING_AMF_SET_ID), set)
		}
		guami.AmfSetId = uint16(set)

		pointer, ok := elem.LookupInt(factory.AMF_CONFIG_STRING_AMF_POINTER)
		if ok && (pointer < 0 || pointer > int(context.MaxAmfPointer)) {
			return errors.Wrapf(ErrBadGuami, "%s: pointer %d out of range",
				key(elem, factory.AMF_CONFIG_STRING_AMF_POINTER), pointer)
		}
		guami.AmfPointer = uint8(pointer)

		list = append(list, guami)
	}
	v.GuamiList = list
	return nil
}

func (l *loader) parseNgap(v *context.Values, s *factory.Setting) error {
	if port, ok := l.lookupUint(s, factory.AMF_CONFIG_STRING_NGAP_PORT, math.MaxUint16); ok {
		v.NGAP.Port = uint16(port)
	}
	l.lookupDuration(s, factory.AMF_CONFIG_STRING_NGAP_OUTCOME_DROP_TIMER, time.Second, &v.NGAP.OutcomeDropTimer)

	addresses := s.Member(factory.AMF_CONFIG_STRING_NGAP_BIND_ADDRESSES)
	if addresses == nil {
		return nil
	}
	ips := make([]net.IP, 0, addresses.Len())
	for i := 0; i < addresses.Len(); i++ {
		str, _ := addresses.StringElem(i)
		if !govalidator.IsIP(str) {
			return errors.Wrapf(ErrBadAddress, "%s[%d]: [%s]", addresses.Path(), i, str)
		}
		ips = append(ips, net.ParseIP(str))
	}
	v.NGAP.BindAddresses = ips
	return nil
}

func (l *loader) stringList(s *factory.Setting) []string {
	tokens := make([]string, s.Len())
	for i := range tokens {
		tokens[i], _ = s.StringElem(i)
	}
	return tokens
}

func (l *loader) parseNas(v *context.Values, s *factory.Setting) error {
	if sub := s.Member(factory.AMF_CONFIG_STRING_NAS_SUPPORTED_INTEGRITY_ALGORITHM_LIST); sub != nil {
		if list, ok := context.ResolveIntegrityAlgorithms(l.stringList(sub)); ok {
			v.NAS.PreferredIntegrityAlgorithm = list
		} else {
			l.warn(sub.Path(), "%d algorithms configured, at most %d allowed, list ignored", sub.Len(), context.MaxPreferenceListSize)
		}
	}
	if sub := s.Member(factory.AMF_CONFIG_STRING_NAS_SUPPORTED_CIPHERING_ALGORITHM_LIST); sub != nil {
		if list, ok := context.ResolveCipheringAlgorithms(l.stringList(sub)); ok {
			v.NAS.PreferredCipheringAlgorithm = list
		} else {
			l.warn(sub.Path(), "%d algorithms configured, at most %d allowed, list ignored", sub.Len(), context.MaxPreferenceListSize)
		}
	}

	l.lookupDuration(s, factory.AMF_CONFIG_STRING_NAS_T3502_TIMER, time.Minute, &v.NAS.T3502)
	l.lookupDuration(s, factory.AMF_CONFIG_STRING_NAS_T3512_TIMER, time.Minute, &v.NAS.T3512)
	l.lookupDuration(s, factory.AMF_CONFIG_STRING_NAS_T3522_TIMER, time.Second, &v.NAS.T3522)
	l.lookupDuration(s, factory.AMF_CONFIG_STRING_NAS_T3550_TIMER, time.Second, &v.NAS.T3550)
	l.lookupDuration(s, factory.AMF_CONFIG_STRING_NAS_T3560_TIMER, time.Second, &v.NAS.T3560)
	l.lookupDuration(s, factory.AMF_CONFIG_STRING_NAS_T3570_TIMER, time.Second, &v.NAS.T3570)
	l.lookupDuration(s, factory.AMF_CONFIG_STRING_NAS_T3585_TIMER, time.Second, &v.NAS.T3585)
	l.lookupDuration(s, factory.AMF_CONFIG_STRING_NAS_T3586_TIMER, time.Second, &v.NAS.T3586)
	l.lookupDuration(s, factory.AMF_CONFIG_STRING_NAS_T3589_TIMER, time.Second, &v.NAS.T3589)
	l.lookupDuration(s, factory.AMF_CONFIG_STRING_NAS_T3595_TIMER, time.Second, &v.NAS.T3595)

	if err := lookupBool(s, factory.AMF_CONFIG_STRING_NAS_FORCE_REJECT_TAU, &v.NAS.ForceRejectTau); err != nil {
		return err
	}
	if err := lookupBool(s, factory.AMF_CONFIG_STRING_NAS_FORCE_REJECT_SR, &v.NAS.ForceRejectSr); err != nil {
		return err
	}
	if err := lookupBool(s, factory.AMF_CONFIG_STRING_NAS_DISABLE_ESM_INFORMATION_PROCEDURE, &v.NAS.DisableEsmInformation); err != nil {
		return err
	}
	if err := lookupBool(s, factory.AMF_CONFIG_STRING_NAS_ENABLE_APN_CORRECTION, &v.NAS.EnableApnCorrection); err != nil {
		return err
	}

	if v.NAS.EnableApnCorrection {
		return l.parseApnCorrectionMap(v, s.Member(factory.AMF_CONFIG_STRING_NAS_APN_CORRECTION_MAP_LIST))
	}
	return nil
}

func (l *loader) parseApnCorrectionMap(v *context.Values, s *factory.Setting) error {
	if s == nil {
		v.NAS.ApnCorrectionMap.Count = 0
		return nil
	}
	num := s.Len()
	logger.CfgLog.Infof("number of apn correction map configured = %d", num)

	rules := make([]context.ApnCorrectionEntry, num)
	for i := range rules {
		elem := s.Elem(i)
		if !elem.IsGroup() {
			l.warn(elem.Path(), "expected an {imsiPrefix, apnOverride} group")
		}
		lookupStringInto(elem, factory.AMF_CONFIG_STRING_NAS_APN_CORRECTION_MAP_IMSI_PREFIX, &rules[i].ImsiPrefix)
		lookupStringInto(elem, factory.AMF_CONFIG_STRING_NAS_APN_CORRECTION_MAP_APN_OVERRIDE, &rules[i].ApnOverride)
	}
	if err := v.NAS.ApnCorrectionMap.Build(rules); err != nil {
		return errors.WithMessagef(err, "error in config file at %s", s.Path())
	}
	return nil
}

func (l *loader) parseSgw(v *context.Values, s *factory.Setting) error {
	str, ok := s.LookupString(factory.AMF_CONFIG_STRING_SGW_IPV4_ADDRESS_FOR_S11)
	if !ok {
		return nil
	}
	logger.CfgLog.Debugf("sgw interface IP information %s", str)
	if !govalidator.IsIPv4(str) {
		return errors.Wrapf(ErrBadAddress, "bad IP address format for SGW S11 %s: [%s]",
			key(s, factory.AMF_CONFIG_STRING_SGW_IPV4_ADDRESS_FOR_S11), str)
	}
	v.SGW.S11Address = net.ParseIP(str).To4()
	logger.CfgLog.Infof("parsing configuration file found S-GW S11: %s", v.SGW.S11Address)
	return nil
}
