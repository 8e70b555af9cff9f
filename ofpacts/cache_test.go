/*
 * openvswitch - OpenFlow switch utility library
 *
 * Copyright (C) 2015 Samjung Data Service, Inc. All rights reserved.
 * Kitae Kim <superkkt@sds.co.kr>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License along
 * with this program; if not, write to the Free Software Foundation, Inc.,
 * 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 */

package ofpacts

import (
	"testing"
)

func TestDecodeCache(t *testing.T) {
	cache, err := NewDecodeCache(2)
	if err != nil {
		t.Fatalf("failed to create the cache: %v", err)
	}

	wire := []byte{0x00, 0x00, 0x00, 0x08, 0x00, 0x01, 0x00, 0x00}
	decoded := new(Buffer)
	decoded.Append(Output{Port: 1})
	decoded.Terminate()

	out := new(Buffer)
	if cache.Get(wire, out) {
		t.Fatal("hit on an empty cache")
	}

	cache.Put(wire, decoded)
	if !cache.Get(wire, out) {
		t.Fatal("miss after Put")
	}
	if !Equal(out.Bytes(), decoded.Bytes()) {
		t.Fatal("cached stream differs from the stored one")
	}

	// The cache must hold copies, not aliases.
	decoded.Clear()
	out2 := new(Buffer)
	if !cache.Get(wire, out2) {
		t.Fatal("miss after the source buffer was cleared")
	}
	if out2.Len() == 0 {
		t.Fatal("cached stream aliased the source buffer")
	}
}
