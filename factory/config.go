// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package factory

// Section and key names of the AMF configuration document.
const (
	AMF_CONFIG_STRING_AMF_CONFIG = "amf"

	AMF_CONFIG_STRING_REALM                          = "realm"
	AMF_CONFIG_STRING_FULL_NETWORK_NAME              = "fullNetworkName"
	AMF_CONFIG_STRING_SHORT_NETWORK_NAME             = "shortNetworkName"
	AMF_CONFIG_STRING_DAYLIGHT_SAVING_TIME           = "daylightSavingTime"
	AMF_CONFIG_STRING_PID_DIRECTORY                  = "pidDirectory"
	AMF_CONFIG_STRING_MAXGNB                         = "maxGnbs"
	AMF_CONFIG_STRING_MAXUE                          = "maxUes"
	AMF_CONFIG_STRING_RELATIVE_CAPACITY              = "relativeCapacity"
	AMF_CONFIG_STRING_STATISTIC_TIMER                = "statisticTimer"
	AMF_CONFIG_STRING_USE_STATELESS                  = "useStateless"
	AMF_CONFIG_STRING_UNAUTHENTICATED_IMSI_SUPPORTED = "unauthenticatedImsiSupported"

	LOG_CONFIG_STRING_LOGGING                 = "logging"
	LOG_CONFIG_STRING_OUTPUT                  = "output"
	LOG_CONFIG_STRING_OUTPUT_THREAD_SAFE      = "threadSafe"
	LOG_CONFIG_STRING_COLOR                   = "color"
	LOG_CONFIG_STRING_LOG_LEVEL_SUFFIX        = "LogLevel"
	AMF_CONFIG_STRING_ASN1_VERBOSITY          = "asn1Verbosity"
	AMF_CONFIG_STRING_ASN1_VERBOSITY_NONE     = "none"
	AMF_CONFIG_STRING_ASN1_VERBOSITY_INFO     = "info"
	AMF_CONFIG_STRING_ASN1_VERBOSITY_ANNOYING = "annoying"

	AMF_CONFIG_STRING_S6A_CONFIG         = "s6a"
	AMF_CONFIG_STRING_S6A_CONF_FILE_PATH = "confFile"
	AMF_CONFIG_STRING_S6A_HSS_HOSTNAME   = "hssHostname"
	AMF_CONFIG_STRING_S6A_HSS_REALM      = "hssRealm"

	AMF_CONFIG_STRING_TAI_LIST = "taiList"
	AMF_CONFIG_STRING_MCC      = "mcc"
	AMF_CONFIG_STRING_MNC      = "mnc"
	AMF_CONFIG_STRING_TAC      = "tac"

	AMF_CONFIG_STRING_GUAMI_LIST    = "guamiList"
	AMF_CONFIG_STRING_AMF_REGION_ID = "regionId"
	AMF_CONFIG_STRING_AMF_SET_ID    = "setId"
	AMF_CONFIG_STRING_AMF_POINTER   = "pointer"

	AMF_CONFIG_STRING_NGAP_CONFIG             = "ngap"
	AMF_CONFIG_STRING_NGAP_PORT               = "port"
	AMF_CONFIG_STRING_NGAP_OUTCOME_DROP_TIMER = "outcomeDropTimer"
	AMF_CONFIG_STRING_NGAP_BIND_ADDRESSES     = "bindAddresses"

	AMF_CONFIG_STRING_NAS_CONFIG                             = "nas"
	AMF_CONFIG_STRING_NAS_SUPPORTED_INTEGRITY_ALGORITHM_LIST = "orderedSupportedIntegrityAlgorithmList"
	AMF_CONFIG_STRING_NAS_SUPPORTED_CIPHERING_ALGORITHM_LIST = "orderedSupportedCipheringAlgorithmList"
	AMF_CONFIG_STRING_NAS_T3502_TIMER                        = "t3502"
	AMF_CONFIG_STRING_NAS_T3512_TIMER                        = "t3512"
	AMF_CONFIG_STRING_NAS_T3522_TIMER                        = "t3522"
	AMF_CONFIG_STRING_NAS_T3550_TIMER                        = "t3550"
	AMF_CONFIG_STRING_NAS_T3560_TIMER                        = "t3560"
	AMF_CONFIG_STRING_NAS_T3570_TIMER                        = "t3570"
	AMF_CONFIG_STRING_NAS_T3585_TIMER                        = "t3585"
	AMF_CONFIG_STRING_NAS_T3586_TIMER                        = "t3586"
	AMF_CONFIG_STRING_NAS_T3589_TIMER                        = "t3589"
	AMF_CONFIG_STRING_NAS_T3595_TIMER                        = "t3595"
	AMF_CONFIG_STRING_NAS_FORCE_REJECT_TAU                   = "forceRejectTau"
	AMF_CONFIG_STRING_NAS_FORCE_REJECT_SR                    = "forceRejectSr"
	AMF_CONFIG_STRING_NAS_DISABLE_ESM_INFORMATION_PROCEDURE  = "disableEsmInformationProcedure"
	AMF_CONFIG_STRING_NAS_ENABLE_APN_CORRECTION              = "enableApnCorrection"
	AMF_CONFIG_STRING_NAS_APN_CORRECTION_MAP_LIST            = "apnCorrectionMapList"
	AMF_CONFIG_STRING_NAS_APN_CORRECTION_MAP_IMSI_PREFIX     = "imsiPrefix"
	AMF_CONFIG_STRING_NAS_APN_CORRECTION_MAP_APN_OVERRIDE    = "apnOverride"

	AMF_CONFIG_STRING_SGW_CONFIG               = "sgw"
	AMF_CONFIG_STRING_SGW_IPV4_ADDRESS_FOR_S11 = "ipv4AddressForS11"
)

// LogSubsystems lists the subsystems that accept a <name>LogLevel key in the
// logging section of this build.
func LogSubsystems() []string {
	subsystems := []string{"sctp", "ngap", "nas", "amfApp", "s6a", "secu", "udp", "util", "itti"}
	if EmbeddedSGW {
		return append(subsystems, "gtpv1u", "spgwApp")
	}
	return append(subsystems, "gtpv2c", "s11")
}
