// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package factory

import (
	"os"

	"github.com/omec-project/amfcfg/logger"
	"github.com/pkg/errors"
)

const (
	AMF_EXPECTED_CONFIG_VERSION = "1.0.0"
)

var (
	ErrNoConfigFile  = errors.New("no AMF configuration file provided")
	ErrSettingsParse = errors.New("failed to parse AMF configuration file")
	ErrVersion       = errors.New("unexpected configuration version")
)

// InitConfigFactory reads and parses the configuration file. It is called
// before the configuration lock is taken.
func InitConfigFactory(f string) (*Setting, error) {
	if f == "" {
		return nil, ErrNoConfigFile
	}
	content, err := os.ReadFile(f)
	if err != nil {
		return nil, errors.Wrapf(err, "read configuration file %s", f)
	}

	root, err := ParseSettings(content)
	if err != nil {
		return nil, errors.WithMessagef(err, "file %s", f)
	}
	return root, nil
}

func getVersion(root *Setting) string {
	version, ok := root.Member("info").LookupString("version")
	if !ok {
		return ""
	}
	return version
}

func CheckConfigVersion(root *Setting) error {
	currentVersion := getVersion(root)

	if currentVersion != AMF_EXPECTED_CONFIG_VERSION {
		return errors.Wrapf(ErrVersion, "config version is [%s], but expected is [%s]",
			currentVersion, AMF_EXPECTED_CONFIG_VERSION)
	}

	logger.CfgLog.Infof("config version [%s]", currentVersion)

	return nil
}
