// SPDX-FileCopyrightText: 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"fmt"
	"net"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/omec-project/amfcfg/context"
	"github.com/omec-project/amfcfg/factory"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

const fullConfig = `
info:
  version: 1.0.0
  description: AMF test configuration
amf:
  realm: magma.com
  fullNetworkName: Magma Network
  shortNetworkName: Magma
  daylightSavingTime: 1
  pidDirectory: /var/run
  maxGnbs: 16
  maxUes: 1024
  relativeCapacity: 255
  statisticTimer: 30
  useStateless: yes
  unauthenticatedImsiSupported: "False"
  logging:
    output: CONSOLE
    threadSafe: "yes"
    color: "yes"
    ngapLogLevel: debug
    nasLogLevel: WARNING
    amfAppLogLevel: info
    sctpLogLevel: loud
    asn1Verbosity: annoying
  s6a:
    confFile: /etc/magma/mme_fd.conf
    hssHostname: hss.magma.com
    hssRealm: magma.com
  taiList:
    - {mcc: "001", mnc: "01", tac: "3"}
    - {mcc: "001", mnc: "01", tac: "1"}
    - {mcc: "001", mnc: "01", tac: "2"}
  guamiList:
    - {mcc: "208", mnc: "093", regionId: 202, setId: 1023, pointer: 63}
  ngap:
    port: 38413
    outcomeDropTimer: 10
    bindAddresses: ["192.168.60.142", "fd00::1"]
  nas:
    t3502: 10
    t3512: 60
    t3550: 4
    orderedSupportedIntegrityAlgorithmList: [EIA2, EIA1]
    orderedSupportedCipheringAlgorithmList: [EEA0, EEA9]
    forceRejectTau: no
    forceRejectSr: "false"
    disableEsmInformationProcedure: "true"
    enableApnCorrection: "yes"
    apnCorrectionMapList:
      - {imsiPrefix: "00101", apnOverride: magma.ipv4}
      - {imsiPrefix: "00102", apnOverride: ims}
  sgw:
    ipv4AddressForS11: 192.168.60.153
`

func load(t *testing.T, cfg *context.AMFConfig, document string) ([]Warning, error) {
	t.Helper()
	root, err := factory.ParseSettings([]byte(document))
	if err != nil {
		t.Fatalf("parse settings: %v", err)
	}
	return InitAMFContext(cfg, root)
}

func hasWarning(warnings []Warning, key string) bool {
	for _, w := range warnings {
		if w.Key == key {
			return true
		}
	}
	return false
}

func TestInitAMFContextFullConfig(t *testing.T) {
	cfg := context.NewAMFConfig(nil)
	warnings, err := load(t, cfg, fullConfig)
	if err != nil {
		t.Fatalf("load failed: %+v", err)
	}
	if cfg.State() != context.StateLoaded {
		t.Errorf("expected state Loaded, got %s", cfg.State())
	}
	v := cfg.Snapshot()

	if v.Realm != "magma.com" || v.FullNetworkName != "Magma Network" || v.ShortNetworkName != "Magma" {
		t.Errorf("unexpected names %q %q %q", v.Realm, v.FullNetworkName, v.ShortNetworkName)
	}
	if v.DaylightSavingTime != 1 || v.PidDirectory != "/var/run" {
		t.Errorf("unexpected general settings %+v", v)
	}
	if v.MaxGnbs != 16 || v.MaxUes != 1024 || v.RelativeCapacity != 255 {
		t.Errorf("unexpected counts %d %d %d", v.MaxGnbs, v.MaxUes, v.RelativeCapacity)
	}
	if v.StatisticTimer != 30*time.Second {
		t.Errorf("unexpected statistic timer %v", v.StatisticTimer)
	}
	if !v.UseStateless || v.UnauthenticatedImsiSupported {
		t.Errorf("unexpected flags stateless=%t unauthenticated=%t", v.UseStateless, v.UnauthenticatedImsiSupported)
	}

	if v.Log.Output != "CONSOLE" || !v.Log.ThreadSafe || !v.Log.Color {
		t.Errorf("unexpected logging %+v", v.Log)
	}
	if v.Log.Levels["ngap"] != zapcore.DebugLevel || v.Log.Levels["nas"] != zapcore.WarnLevel {
		t.Errorf("unexpected log levels %v", v.Log.Levels)
	}
	if _, ok := v.Log.Levels["sctp"]; ok {
		t.Error("invalid sctp log level must be ignored")
	}
	if !hasWarning(warnings, "amf.logging.sctpLogLevel") {
		t.Errorf("expected a warning for sctpLogLevel, got %v", warnings)
	}
	if v.Log.Asn1Verbosity != 2 {
		t.Errorf("unexpected asn1 verbosity %d", v.Log.Asn1Verbosity)
	}

	if !factory.S6aOverGRPC {
		if v.S6a == nil || v.S6a.HssHostname != "hss.magma.com" || v.S6a.HssRealm != "magma.com" ||
			v.S6a.ConfFile != "/etc/magma/mme_fd.conf" {
			t.Errorf("unexpected S6a config %+v", v.S6a)
		}
	}

	expectedTai := []context.ServedTaiEntry{
		{Mcc: 1, Mnc: 1, MncLen: 2, Tac: 1},
		{Mcc: 1, Mnc: 1, MncLen: 2, Tac: 2},
		{Mcc: 1, Mnc: 1, MncLen: 2, Tac: 3},
	}
	if fmt.Sprint(v.ServedTai.Entries) != fmt.Sprint(expectedTai) {
		t.Errorf("expected served TAI %v, got %v", expectedTai, v.ServedTai.Entries)
	}
	if v.ServedTai.ListType != context.TaiListTypeOnePlmnConsecutiveTacs {
		t.Errorf("unexpected list type %s", v.ServedTai.ListType)
	}

	expectedGuami := context.Guami{
		PlmnId:     context.PlmnId{Mcc: 208, Mnc: 93, MncLen: 3},
		AmfRegion:  202,
		AmfSetId:   1023,
		AmfPointer: 63,
	}
	if len(v.GuamiList) != 1 || v.GuamiList[0] != expectedGuami {
		t.Errorf("unexpected GUAMI list %+v", v.GuamiList)
	}

	if v.NGAP.Port != 38413 || v.NGAP.OutcomeDropTimer != 10*time.Second {
		t.Errorf("unexpected NGAP config %+v", v.NGAP)
	}
	addr := v.NGAP.SCTPAddr()
	if addr == nil || addr.Port != 38413 || len(addr.IPAddrs) != 2 || !addr.IPAddrs[1].IP.Equal(net.ParseIP("fd00::1")) {
		t.Errorf("unexpected SCTP address %+v", addr)
	}

	nas := v.NAS
	if nas.T3502 != 10*time.Minute || nas.T3512 != 60*time.Minute || nas.T3550 != 4*time.Second {
		t.Errorf("unexpected NAS timers %v %v %v", nas.T3502, nas.T3512, nas.T3550)
	}
	if nas.T3560 != context.TimeT3560 {
		t.Errorf("T3560 should keep its default, got %v", nas.T3560)
	}
	if nas.PreferredIntegrityAlgorithm != (context.PreferenceList{context.EIA2_128_ALG_ID, context.EIA1_128_ALG_ID}) {
		t.Errorf("unexpected integrity list %v", nas.PreferredIntegrityAlgorithm)
	}
	if nas.PreferredCipheringAlgorithm != (context.PreferenceList{}) {
		t.Errorf("unexpected ciphering list %v", nas.PreferredCipheringAlgorithm)
	}
	if nas.ForceRejectTau || nas.ForceRejectSr || !nas.DisableEsmInformation || !nas.EnableApnCorrection {
		t.Errorf("unexpected NAS flags %+v", nas)
	}
	if apn, ok := nas.ApnCorrectionMap.Correct("001020000000001"); !ok || apn != "ims" || nas.ApnCorrectionMap.Count != 2 {
		t.Errorf("unexpected APN correction map %+v", nas.ApnCorrectionMap)
	}

	if !factory.EmbeddedSGW && !v.SGW.S11Address.Equal(net.ParseIP("192.168.60.153")) {
		t.Errorf("unexpected S11 address %v", v.SGW.S11Address)
	}
}

func TestInitAMFContextOverrideOnly(t *testing.T) {
	cfg := context.NewAMFConfig(nil)
	if _, err := load(t, cfg, fullConfig); err != nil {
		t.Fatal(err)
	}

	warnings, err := load(t, cfg, `
amf:
  maxUes: 10
  nas:
    t3550: 7
`)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings %v", warnings)
	}
	v := cfg.Snapshot()
	if v.MaxUes != 10 || v.MaxGnbs != 16 {
		t.Errorf("unexpected counts %d %d", v.MaxUes, v.MaxGnbs)
	}
	if v.NAS.T3550 != 7*time.Second || v.NAS.T3502 != 10*time.Minute {
		t.Errorf("unexpected timers %v %v", v.NAS.T3550, v.NAS.T3502)
	}
	if len(v.ServedTai.Entries) != 3 || v.Realm != "magma.com" || v.NAS.ApnCorrectionMap.Count != 2 {
		t.Errorf("values absent from the document must be kept: %+v", v)
	}
}

func TestInitAMFContextNoAmfSection(t *testing.T) {
	cfg := context.NewAMFConfig(nil)
	warnings, err := load(t, cfg, "info:\n  version: 1.0.0\n")
	if err != nil || len(warnings) != 0 {
		t.Fatalf("unexpected result %v %v", warnings, err)
	}
	if cfg.Snapshot().MaxGnbs != context.DefaultMaxGnbs {
		t.Error("defaults must be kept")
	}
}

func TestInitAMFContextFatal(t *testing.T) {
	testCases := []struct {
		name     string
		document string
		expected error
		key      string
	}{
		{
			name:     "bad bool",
			document: "amf:\n  useStateless: maybe\n",
			expected: ErrInvalidBool,
			key:      "amf.useStateless",
		},
		{
			name:     "bad nas bool",
			document: "amf:\n  nas:\n    forceRejectSr: sometimes\n",
			expected: ErrInvalidBool,
			key:      "amf.nas.forceRejectSr",
		},
		{
			name:     "mnc too long",
			document: "amf:\n  taiList:\n    - {mcc: \"001\", mnc: \"0001\", tac: \"1\"}\n",
			expected: ErrBadMncLength,
			key:      "amf.taiList[0].mnc",
		},
		{
			name:     "mnc too short",
			document: "amf:\n  taiList:\n    - {mcc: \"001\", mnc: \"1\", tac: \"1\"}\n",
			expected: ErrBadMncLength,
			key:      "amf.taiList[0].mnc",
		},
		{
			name:     "empty tai list",
			document: "amf:\n  taiList: []\n",
			expected: ErrNoServedTai,
			key:      "amf.taiList",
		},
		{
			name:     "apn map over capacity",
			document: apnDocument(context.MaxApnCorrectionMapList + 1),
			expected: context.ErrApnMapCapacity,
			key:      "amf.nas.apnCorrectionMapList",
		},
		{
			name:     "bad s11 address",
			document: "amf:\n  sgw:\n    ipv4AddressForS11: 192.168.60\n",
			expected: ErrBadAddress,
			key:      "amf.sgw.ipv4AddressForS11",
		},
		{
			name:     "bad ngap address",
			document: "amf:\n  ngap:\n    bindAddresses: [gnb.local]\n",
			expected: ErrBadAddress,
			key:      "amf.ngap.bindAddresses[0]",
		},
		{
			name:     "guami set id",
			document: "amf:\n  guamiList:\n    - {mcc: \"001\", mnc: \"01\", regionId: 1, setId: 1024, pointer: 0}\n",
			expected: ErrBadGuami,
			key:      "amf.guamiList[0].setId",
		},
	}
	if !factory.S6aOverGRPC {
		testCases = append(testCases, struct {
			name     string
			document string
			expected error
			key      string
		}{
			name:     "missing hss hostname",
			document: "amf:\n  s6a:\n    hssRealm: magma.com\n",
			expected: ErrMissingHssHostname,
			key:      "amf.s6a.hssHostname",
		}, struct {
			name     string
			document string
			expected error
			key      string
		}{
			name:     "missing hss realm",
			document: "amf:\n  s6a:\n    hssHostname: hss\n",
			expected: ErrMissingHssRealm,
			key:      "amf.s6a.hssRealm",
		})
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := context.NewAMFConfig(nil)
			before := cfg.Snapshot()
			_, err := load(t, cfg, tc.document)
			if !errors.Is(err, tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, err)
			}
			if !strings.Contains(err.Error(), tc.key) {
				t.Errorf("error %q does not name %s", err, tc.key)
			}
			if cfg.State() != context.StateDefaulted {
				t.Errorf("failed load changed state to %s", cfg.State())
			}
			if after := cfg.Snapshot(); !reflect.DeepEqual(after, before) {
				t.Errorf("failed load changed the configuration")
			}
		})
	}
}

func apnDocument(n int) string {
	var b strings.Builder
	b.WriteString("amf:\n  nas:\n    enableApnCorrection: yes\n    apnCorrectionMapList:\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "      - {imsiPrefix: \"0010%d\", apnOverride: apn%d}\n", i, i)
	}
	return b.String()
}

func TestInitAMFContextApnCapacity(t *testing.T) {
	cfg := context.NewAMFConfig(nil)
	if _, err := load(t, cfg, apnDocument(context.MaxApnCorrectionMapList)); err != nil {
		t.Fatalf("a full APN correction map must load: %v", err)
	}
	if count := cfg.NAS().ApnCorrectionMap.Count; count != context.MaxApnCorrectionMapList {
		t.Errorf("expected %d rules, got %d", context.MaxApnCorrectionMapList, count)
	}

	// the map is only read when the correction is enabled
	if _, err := load(t, cfg, "amf:\n  nas:\n    enableApnCorrection: no\n    apnCorrectionMapList: [{imsiPrefix: \"1\"}]\n"); err != nil {
		t.Fatal(err)
	}
	if count := cfg.NAS().ApnCorrectionMap.Count; count != context.MaxApnCorrectionMapList {
		t.Errorf("disabled correction must not rebuild the map, count %d", count)
	}

	// enabled without a list empties the map
	if _, err := load(t, cfg, "amf:\n  nas:\n    enableApnCorrection: yes\n"); err != nil {
		t.Fatal(err)
	}
	if count := cfg.NAS().ApnCorrectionMap.Count; count != 0 {
		t.Errorf("expected an empty map, count %d", count)
	}
}

func TestInitAMFContextSoftErrors(t *testing.T) {
	cfg := context.NewAMFConfig(nil)
	warnings, err := load(t, cfg, `
amf:
  relativeCapacity: 300
  maxGnbs: many
  taiList:
    - {mcc: "001", mnc: "01", tac: "0"}
    - {mcc: "001", mnc: "01", tac: "70000"}
    - {mcc: "00x", mnc: "01", tac: "5"}
  nas:
    orderedSupportedIntegrityAlgorithmList: [EIA2, EIA2, EIA2, EIA2, EIA2, EIA2, EIA2, EIA2, EIA1]
`)
	if err != nil {
		t.Fatalf("soft errors must not stop the load: %v", err)
	}
	for _, key := range []string{
		"amf.relativeCapacity",
		"amf.maxGnbs",
		"amf.taiList[0].tac",
		"amf.taiList[1].tac",
		"amf.taiList[2].mcc",
		"amf.nas.orderedSupportedIntegrityAlgorithmList",
	} {
		if !hasWarning(warnings, key) {
			t.Errorf("expected a warning for %s, got %v", key, warnings)
		}
	}

	v := cfg.Snapshot()
	if v.RelativeCapacity != context.DefaultRelativeCapacity || v.MaxGnbs != context.DefaultMaxGnbs {
		t.Errorf("rejected values must keep the previous setting: %d %d", v.RelativeCapacity, v.MaxGnbs)
	}
	// out of range TACs are kept as configured
	expected := []context.ServedTaiEntry{
		{Mcc: 0, Mnc: 1, MncLen: 2, Tac: 5},
		{Mcc: 1, Mnc: 1, MncLen: 2, Tac: 0},
		{Mcc: 1, Mnc: 1, MncLen: 2, Tac: 70000},
	}
	if fmt.Sprint(v.ServedTai.Entries) != fmt.Sprint(expected) {
		t.Errorf("expected %v, got %v", expected, v.ServedTai.Entries)
	}
	if v.ServedTai.ListType != context.TaiListTypeManyPlmns {
		t.Errorf("unexpected list type %s", v.ServedTai.ListType)
	}
	if v.NAS.PreferredIntegrityAlgorithm != (context.PreferenceList{}) {
		t.Errorf("an oversized list must be ignored, got %v", v.NAS.PreferredIntegrityAlgorithm)
	}
}

func TestInitAMFContextUnquotedDigits(t *testing.T) {
	cfg := context.NewAMFConfig(nil)
	warnings, err := load(t, cfg, `
amf:
  taiList:
    - {mcc: 001, mnc: 01, tac: 1}
    - {mcc: 208, mnc: 093, tac: 1}
  guamiList:
    - {mcc: 208, mnc: 093, regionId: 1, setId: 1, pointer: 0}
`)
	if err != nil {
		t.Fatalf("unquoted codes must load: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings %v", warnings)
	}

	v := cfg.Snapshot()
	expected := []context.ServedTaiEntry{
		{Mcc: 1, Mnc: 1, MncLen: 2, Tac: 1},
		{Mcc: 208, Mnc: 93, MncLen: 3, Tac: 1},
	}
	if fmt.Sprint(v.ServedTai.Entries) != fmt.Sprint(expected) {
		t.Errorf("expected %v, got %v", expected, v.ServedTai.Entries)
	}
	if v.GuamiList[0].PlmnId != (context.PlmnId{Mcc: 208, Mnc: 93, MncLen: 3}) {
		t.Errorf("unexpected GUAMI PLMN %s", v.GuamiList[0].PlmnId)
	}
	if got := PlmnIdToNgap(v.GuamiList[0].PlmnId).Value; fmt.Sprintf("% x", got) != "02 08 39" {
		t.Errorf("unexpected NGAP PLMN % x", got)
	}
}

func TestInitAMFContextMccLength(t *testing.T) {
	cfg := context.NewAMFConfig(nil)
	warnings, err := load(t, cfg, "amf:\n  taiList:\n    - {mcc: \"1234\", mnc: \"01\", tac: \"1\"}\n    - {mcc: \"01\", mnc: \"01\", tac: \"1\"}\n")
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"amf.taiList[0].mcc", "amf.taiList[1].mcc"} {
		if !hasWarning(warnings, k) {
			t.Errorf("expected a warning for %s, got %v", k, warnings)
		}
	}
}

func TestInitAMFContextReloadTaiList(t *testing.T) {
	cfg := context.NewAMFConfig(nil)
	if _, err := load(t, cfg, "amf:\n  taiList:\n    - {mcc: \"001\", mnc: \"01\", tac: \"7\"}\n    - {mcc: \"001\", mnc: \"01\", tac: \"5\"}\n"); err != nil {
		t.Fatal(err)
	}
	if tai := cfg.ServedTai(); tai.ListType != context.TaiListTypeOnePlmnNonConsecutiveTacs || tai.Entries[0].Tac != 5 {
		t.Errorf("unexpected list %+v", tai)
	}
	if _, err := load(t, cfg, "amf:\n  taiList:\n    - {mcc: \"001\", mnc: \"01\", tac: \"5\"}\n    - {mcc: \"002\", mnc: \"01\", tac: \"5\"}\n    - {mcc: \"001\", mnc: \"01\", tac: \"6\"}\n"); err != nil {
		t.Fatal(err)
	}
	tai := cfg.ServedTai()
	if len(tai.Entries) != 3 || tai.ListType != context.TaiListTypeManyPlmns || tai.Entries[2].Mcc != 2 {
		t.Errorf("unexpected list %+v", tai)
	}
}
