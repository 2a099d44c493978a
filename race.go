// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package chunkq

// RaceEnabled reports whether the binary was built with -race.
//
// Slot data is published by an acquire-release state store the detector
// does not model, so concurrent users of [SPSC] may see false reports.
// Tests and callers can consult it to skip such scenarios.
const RaceEnabled = true
