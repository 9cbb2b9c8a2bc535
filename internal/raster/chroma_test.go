// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package raster

import "testing"

func TestHashChromaStable(t *testing.T) {
	a := HashChroma(0.4, 0.6, 1.2, 1.1, 10)
	b := HashChroma(0.4, 0.6, 1.2, 1.1, 10)
	if a != b {
		t.Errorf("HashChroma not stable: %d != %d", a, b)
	}
}

func TestHashChromaStrideIsSlotsMinusOne(t *testing.T) {
	// The row stride is S-1, not S: a chroma pair at the top of both
	// axes should land at (S-1)*(S-1) + (S-1), not S*S-1.
	const S = 10
	got := HashChroma(1, 1, 1, 1, S)
	want := (S - 1) * S // row stride of S-1, not S, at the top of both axes
	if got != want {
		t.Errorf("HashChroma at axis max = %d, want %d (S-1 stride)", got, want)
	}
}
