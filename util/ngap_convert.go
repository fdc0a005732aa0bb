// SPDX-FileCopyrightText: 2024 Intel Corporation
// Copyright 2019 free5GC.org
//
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/omec-project/amfcfg/context"
	"github.com/omec-project/amfcfg/logger"
	"github.com/omec-project/aper"
	"github.com/omec-project/ngap/ngapType"
)

func PlmnIdToNgap(plmnId context.PlmnId) (ngapPlmnId ngapType.PLMNIdentity) {
	var hexString string
	mcc := strings.Split(plmnId.MccString(), "")
	mnc := strings.Split(plmnId.MncString(), "")
	if len(mnc) == 2 {
		hexString = mcc[1] + mcc[0] + "f" + mcc[2] + mnc[1] + mnc[0]
	} else {
		hexString = mcc[1] + mcc[0] + mnc[0] + mcc[2] + mnc[2] + mnc[1]
	}
	var err error
	ngapPlmnId.Value, err = hex.DecodeString(hexString)
	if err != nil {
		logger.UtilLog.Errorf("decode string error: %+v", err)
	}
	return
}

// TacToNgap encodes a TAC on the three octets NGAP uses.
func TacToNgap(tac uint32) (ngapTac ngapType.TAC) {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, tac)
	ngapTac.Value = buf[1:]
	return
}

func TaiToNgap(entry context.ServedTaiEntry) (ngapTai ngapType.TAI) {
	ngapTai.PLMNIdentity = PlmnIdToNgap(entry.PlmnId())
	ngapTai.TAC = TacToNgap(entry.Tac)
	return
}

// ServedTaiListToNgap keeps the sorted order of the list.
func ServedTaiListToNgap(list context.ServedTaiList) []ngapType.TAI {
	tais := make([]ngapType.TAI, 0, len(list.Entries))
	for _, entry := range list.Entries {
		tais = append(tais, TaiToNgap(entry))
	}
	return tais
}

func AmfRegionIdToNgap(regionId uint8) (ngapRegionId ngapType.AMFRegionID) {
	ngapRegionId.Value = aper.BitString{
		Bytes:     []byte{regionId},
		BitLength: 8,
	}
	return
}

func AmfSetIdToNgap(setId uint16) (ngapSetId ngapType.AMFSetID) {
	ngapSetId.Value = aper.BitString{
		Bytes:     make([]byte, 2),
		BitLength: 10,
	}
	binary.BigEndian.PutUint16(ngapSetId.Value.Bytes, setId<<6)
	return
}

func AmfPointerToNgap(pointer uint8) (ngapPointer ngapType.AMFPointer) {
	ngapPointer.Value = aper.BitString{
		Bytes:     []byte{pointer << 2},
		BitLength: 6,
	}
	return
}

func GuamiToNgap(guami context.Guami) (ngapGuami ngapType.GUAMI) {
	ngapGuami.PLMNIdentity = PlmnIdToNgap(guami.PlmnId)
	ngapGuami.AMFRegionID = AmfRegionIdToNgap(guami.AmfRegion)
	ngapGuami.AMFSetID = AmfSetIdToNgap(guami.AmfSetId)
	ngapGuami.AMFPointer = AmfPointerToNgap(guami.AmfPointer)
	return
}

// BuildServedGUAMIList renders the GUAMI list as sent in NG Setup Response.
func BuildServedGUAMIList(guamis []context.Guami) (list ngapType.ServedGUAMIList) {
	for _, guami := range guamis {
		list.List = append(list.List, ngapType.ServedGUAMIItem{
			GUAMI: GuamiToNgap(guami),
		})
	}
	return
}

// NgSetupView is the part of the configuration advertised to gNBs.
type NgSetupView struct {
	ServedGUAMIList     ngapType.ServedGUAMIList
	RelativeAMFCapacity ngapType.RelativeAMFCapacity
	ServedTAIs          []ngapType.TAI
}

func BuildNgSetupView(v *context.Values) NgSetupView {
	return NgSetupView{
		ServedGUAMIList:     BuildServedGUAMIList(v.GuamiList),
		RelativeAMFCapacity: ngapType.RelativeAMFCapacity{Value: int64(v.RelativeCapacity)},
		ServedTAIs:          ServedTaiListToNgap(v.ServedTai),
	}
}
