// SPDX-FileCopyrightText: 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

//go:build embedded_sgw

package factory

// EmbeddedSGW is set when the S-GW runs inside the same process.
const EmbeddedSGW = true
