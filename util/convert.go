// SPDX-FileCopyrightText: 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"strings"

	"github.com/omec-project/amfcfg/factory"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

var ErrInvalidBool = errors.New("invalid boolean value")

// ParseBool accepts yes/true and no/false in any case. An empty string is
// false; anything else is an error.
func ParseBool(str string) (bool, error) {
	switch strings.ToLower(str) {
	case "yes", "true":
		return true, nil
	case "no", "false", "":
		return false, nil
	}
	return false, errors.Wrapf(ErrInvalidBool, "got \"%s\" but expected bool", str)
}

// legacy level names still found in deployed configuration files
var logLevelAliases = map[string]zapcore.Level{
	"trace":    zapcore.DebugLevel,
	"notice":   zapcore.InfoLevel,
	"warning":  zapcore.WarnLevel,
	"critical": zapcore.ErrorLevel,
}

// ParseLogLevel understands the zap level names and a few legacy ones.
func ParseLogLevel(str string) (zapcore.Level, error) {
	if level, ok := logLevelAliases[strings.ToLower(str)]; ok {
		return level, nil
	}
	return zapcore.ParseLevel(strings.ToLower(str))
}

// Asn1Verbosity maps none|info|annoying to 0|1|2; unknown names are 0.
func Asn1Verbosity(str string) uint8 {
	switch {
	case strings.EqualFold(str, factory.AMF_CONFIG_STRING_ASN1_VERBOSITY_ANNOYING):
		return 2
	case strings.EqualFold(str, factory.AMF_CONFIG_STRING_ASN1_VERBOSITY_INFO):
		return 1
	}
	return 0
}
