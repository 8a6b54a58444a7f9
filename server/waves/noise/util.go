// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package noise

// belowOne is the largest float32 less than 1.
const belowOne = 0.99999994

func clampUnit(f float64) float32 {
	if f < 0 {
		return 0
	}
	if f > belowOne {
		return belowOne
	}
	return float32(f)
}
