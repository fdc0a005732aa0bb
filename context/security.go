// SPDX-FileCopyrightText: 2024 Intel Corporation
//
// SPDX-License-Identifier: Apache-2.0

package context

// AlgorithmID is a NAS security algorithm identifier. Zero is the null
// algorithm of both families.
type AlgorithmID uint8

const (
	EIA0_ALG_ID     AlgorithmID = 0
	EIA1_128_ALG_ID AlgorithmID = 1
	EIA2_128_ALG_ID AlgorithmID = 2

	EEA0_ALG_ID     AlgorithmID = 0
	EEA1_128_ALG_ID AlgorithmID = 1
	EEA2_128_ALG_ID AlgorithmID = 2
)

// PreferenceList ranks algorithms, index 0 being the most preferred.
type PreferenceList [MaxPreferenceListSize]AlgorithmID

var integrityAlgorithms = map[string]AlgorithmID{
	"EIA0": EIA0_ALG_ID,
	"EIA1": EIA1_128_ALG_ID,
	"EIA2": EIA2_128_ALG_ID,
}

var cipheringAlgorithms = map[string]AlgorithmID{
	"EEA0": EEA0_ALG_ID,
	"EEA1": EEA1_128_ALG_ID,
	"EEA2": EEA2_128_ALG_ID,
}

// ResolveIntegrityAlgorithms maps EIA tokens onto a preference list.
func ResolveIntegrityAlgorithms(tokens []string) (PreferenceList, bool) {
	return resolvePreferenceList(tokens, integrityAlgorithms, EIA0_ALG_ID)
}

// ResolveCipheringAlgorithms maps EEA tokens onto a preference list.
func ResolveCipheringAlgorithms(tokens []string) (PreferenceList, bool) {
	return resolvePreferenceList(tokens, cipheringAlgorithms, EEA0_ALG_ID)
}

// resolvePreferenceList returns false when more tokens are given than the
// list can rank; nothing is resolved in that case. Unknown tokens and unused
// slots take the null algorithm.
func resolvePreferenceList(tokens []string, table map[string]AlgorithmID, null AlgorithmID) (PreferenceList, bool) {
	var list PreferenceList
	if len(tokens) > MaxPreferenceListSize {
		return list, false
	}
	for i := range list {
		list[i] = null
	}
	for i, token := range tokens {
		if id, ok := table[token]; ok {
			list[i] = id
		}
	}
	return list, true
}
