// SPDX-FileCopyrightText: 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

//go:build s6a_over_grpc

package factory

// S6aOverGRPC is set when subscriber data is fetched over gRPC instead of
// a Diameter S6a peer; the s6a section is then ignored.
const S6aOverGRPC = true
