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

package nx

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/fraant/openvswitch/ofpacts"

	"github.com/davecgh/go-spew/spew"
)

func wire(t *testing.T, s string) []byte {
	t.Helper()
	v, err := hex.DecodeString(strings.Map(func(r rune) rune {
		if r == ' ' {
			return -1
		}
		return r
	}, s))
	if err != nil {
		t.Fatalf("bad hex sample: %v", err)
	}
	return v
}

func format(t *testing.T, buf *ofpacts.Buffer) string {
	t.Helper()
	var sb strings.Builder
	if err := ofpacts.Format(buf, &sb); err != nil {
		t.Fatalf("failed to format: %v", err)
	}
	return sb.String()
}

func TestDecodeAction(t *testing.T) {
	samples := []struct {
		name     string
		packet   string
		expected error
		text     string
	}{
		{
			name:   "resubmit",
			packet: "ffff 0010 00002320 0001 0003 00 000000",
			text:   "actions=resubmit:3",
		},
		{
			name:   "resubmit with table",
			packet: "ffff 0010 00002320 000e 0003 05 000000",
			text:   "actions=resubmit(3,5)",
		},
		{
			name:     "resubmit with non-zero padding",
			packet:   "ffff 0010 00002320 000e 0003 05 000001",
			expected: ofpacts.ErrBadArgument,
		},
		{
			name:   "set tunnel",
			packet: "ffff 0010 00002320 0002 0000 00000064",
			text:   "actions=set_tunnel:0x64",
		},
		{
			name:   "set tunnel64",
			packet: "ffff 0018 00002320 0009 000000000000 0000000000000064",
			text:   "actions=set_tunnel64:0x64",
		},
		{
			name:   "set queue",
			packet: "ffff 0010 00002320 0004 0000 00000003",
			text:   "actions=set_queue:3",
		},
		{
			name:   "pop queue",
			packet: "ffff 0010 00002320 0005 000000000000",
			text:   "actions=pop_queue",
		},
		{
			name:   "reg move",
			packet: "ffff 0018 00002320 0006 0010 0000 0000 00000002 00010004",
			text:   "actions=move:NXM_OF_IN_PORT[]->NXM_NX_REG0[0..15]",
		},
		{
			name:     "reg move into read-only field",
			packet:   "ffff 0018 00002320 0006 0010 0000 0000 00010004 00000002",
			expected: ofpacts.ErrBadArgument,
		},
		{
			name:   "reg load",
			packet: "ffff 0018 00002320 0007 001f 00010004 0000000000000005",
			text:   "actions=load:0x5->NXM_NX_REG0[]",
		},
		{
			name:     "reg load value too wide",
			packet:   "ffff 0018 00002320 0007 0003 00010004 0000000000000010",
			expected: ofpacts.ErrBadArgument,
		},
		{
			name:   "note",
			packet: "ffff 0010 00002320 0008 deadbeef0000",
			text:   "actions=note:de.ad.be.ef.00.00",
		},
		{
			name:   "empty note",
			packet: "ffff 0010 00002320 0008 000000000000",
			text:   "actions=note:00.00.00.00.00.00",
		},
		{
			name:   "multipath",
			packet: "ffff 0020 00002320 000a 0000 0032 0000 0000 000f 00000000 0000 000f 00010004",
			text:   "actions=multipath(eth_src,50,modulo_n,16,0,NXM_NX_REG0[0..15])",
		},
		{
			name:     "multipath with bad algorithm",
			packet:   "ffff 0020 00002320 000a 0000 0032 0000 0009 000f 00000000 0000 000f 00010004",
			expected: ofpacts.ErrBadArgument,
		},
		{
			name:   "autopath",
			packet: "ffff 0018 00002320 000b 001f 00010004 00000005 00000000",
			text:   "actions=autopath(5,NXM_NX_REG0[])",
		},
		{
			name:     "autopath destination too narrow",
			packet:   "ffff 0018 00002320 000b 0007 00010004 00000005 00000000",
			expected: ofpacts.ErrBadArgument,
		},
		{
			name:   "bundle",
			packet: "ffff 0028 00002320 000c 0000 0000 0000 00000002 0002 0000 00000000 00000000 0001 0002 00000000",
			text:   "actions=bundle(eth_src,0,active_backup,ofport,slaves:1,2)",
		},
		{
			name:   "bundle load",
			packet: "ffff 0028 00002320 000d 0001 0001 003c 00000002 0002 000f 00010004 00000000 0002 0003 00000000",
			text:   "actions=bundle_load(symmetric_l4,60,hrw,ofport,NXM_NX_REG0[0..15],slaves:2,3)",
		},
		{
			name:     "bundle with wrong slave type",
			packet:   "ffff 0028 00002320 000c 0000 0000 0000 00000206 0002 0000 00000000 00000000 0001 0002 00000000",
			expected: ofpacts.ErrBadArgument,
		},
		{
			name:     "bundle slave count disagrees with length",
			packet:   "ffff 0028 00002320 000c 0000 0000 0000 00000002 0009 0000 00000000 00000000 0001 0002 00000000",
			expected: ofpacts.ErrBadLen,
		},
		{
			name: "learn",
			packet: "ffff 0030 00002320 0010 003c 0000 0000 0000000000000000 0000 01 00 0000 0000" +
				"200c 0064 00000802 0000 000000000000",
			text: "actions=learn(idle_timeout=60,table=1,NXM_OF_VLAN_TCI[0..11]=0x64)",
		},
		{
			name: "learn into the reserved table",
			packet: "ffff 0030 00002320 0010 003c 0000 0000 0000000000000000 0000 ff 00 0000 0000" +
				"200c 0064 00000802 0000 000000000000",
			expected: ofpacts.ErrBadArgument,
		},
		{
			name:   "output register",
			packet: "ffff 0018 00002320 000f 001f 00010004 0080 000000000000",
			text:   "actions=output:NXM_NX_REG0[]",
		},
		{
			name:     "output register with non-zero reserved bytes",
			packet:   "ffff 0018 00002320 000f 001f 00010004 0080 000000000001",
			expected: ofpacts.ErrBadArgument,
		},
		{
			name:   "exit",
			packet: "ffff 0010 00002320 0011 000000000000",
			text:   "actions=exit",
		},
		{
			name:   "dec ttl",
			packet: "ffff 0010 00002320 0012 000000000000",
			text:   "actions=dec_ttl",
		},
		{
			name:   "fin timeout",
			packet: "ffff 0010 00002320 0013 000a 0014 0000",
			text:   "actions=fin_timeout(idle_timeout=10,hard_timeout=20)",
		},
		{
			name:   "controller",
			packet: "ffff 0010 00002320 0014 0080 0000 01 00",
			text:   "actions=CONTROLLER:128",
		},
		{
			name:   "controller with reason and id",
			packet: "ffff 0010 00002320 0014 ffff 0005 00 00",
			text:   "actions=controller(reason=no_match,id=5)",
		},
		{
			name:     "obsolete SNAT subtype",
			packet:   "ffff 0010 00002320 0000 000000000000",
			expected: ofpacts.ErrBadType,
		},
		{
			name:     "obsolete drop-spoofed-ARP subtype",
			packet:   "ffff 0010 00002320 0003 000000000000",
			expected: ofpacts.ErrBadType,
		},
		{
			name:     "unknown subtype",
			packet:   "ffff 0010 00002320 00ff 000000000000",
			expected: ofpacts.ErrBadType,
		},
		{
			name:     "wrong vendor id",
			packet:   "ffff 0010 00001234 0001 0003 00 000000",
			expected: ofpacts.ErrBadVendor,
		},
		{
			name:     "shorter than the vendor header",
			packet:   "ffff 0008 00002320",
			expected: ofpacts.ErrBadLen,
		},
		{
			name:     "fixed subtype with extensible length",
			packet:   "ffff 0018 00002320 0001 0003 00 000000 0000000000000000",
			expected: ofpacts.ErrBadLen,
		},
		{
			name:     "extensible subtype shorter than its struct",
			packet:   "ffff 0018 00002320 0010 003c 0000 0000 0000000000000000",
			expected: ofpacts.ErrBadLen,
		},
	}

	for _, sample := range samples {
		buf := new(ofpacts.Buffer)
		err := DecodeAction(wire(t, sample.packet), buf)
		if err != sample.expected {
			t.Fatalf("%v: expected error %v, got %v", sample.name, sample.expected, err)
		}
		if err != nil {
			continue
		}
		buf.Terminate()
		if text := format(t, buf); text != sample.text {
			t.Fatalf("%v: expected %q, got %q\n%v",
				sample.name, sample.text, text, spew.Sdump(buf.Bytes()))
		}
	}
}

func TestRoundTrip(t *testing.T) {
	samples := []string{
		"ffff 0010 00002320 0001 0003 00 000000",
		"ffff 0010 00002320 000e 0003 05 000000",
		"ffff 0010 00002320 0002 0000 00000064",
		"ffff 0018 00002320 0009 000000000000 0000000000000064",
		"ffff 0010 00002320 0004 0000 00000003",
		"ffff 0010 00002320 0005 000000000000",
		"ffff 0018 00002320 0006 0010 0000 0000 00000002 00010004",
		"ffff 0018 00002320 0007 001f 00010004 0000000000000005",
		"ffff 0010 00002320 0008 deadbeef0000",
		"ffff 0020 00002320 000a 0000 0032 0000 0000 000f 00000000 0000 000f 00010004",
		"ffff 0018 00002320 000b 001f 00010004 00000005 00000000",
		"ffff 0028 00002320 000c 0000 0000 0000 00000002 0002 0000 00000000 00000000 0001 0002 00000000",
		"ffff 0028 00002320 000d 0001 0001 003c 00000002 0002 000f 00010004 00000000 0002 0003 00000000",
		"ffff 0030 00002320 0010 003c 0000 0000 0000000000000000 0000 01 00 0000 0000" +
			"200c 0064 00000802 0000 000000000000",
		"ffff 0018 00002320 000f 001f 00010004 0080 000000000000",
		"ffff 0010 00002320 0011 000000000000",
		"ffff 0010 00002320 0012 000000000000",
		"ffff 0010 00002320 0013 000a 0014 0000",
		"ffff 0010 00002320 0014 0080 0000 01 00",
	}

	for _, sample := range samples {
		packet := wire(t, sample)

		decoded := new(ofpacts.Buffer)
		if err := DecodeAction(packet, decoded); err != nil {
			t.Fatalf("%v: failed to decode: %v", sample, err)
		}
		decoded.Terminate()

		actions, err := decoded.Actions()
		if err != nil {
			t.Fatalf("%v: failed to parse the stream: %v", sample, err)
		}
		encoded := new(ofpacts.Buffer)
		for _, a := range actions {
			if err := EncodeAction(a, encoded); err != nil {
				t.Fatalf("%v: failed to encode: %v", sample, err)
			}
		}

		if !bytes.Equal(packet, encoded.Bytes()) {
			t.Fatalf("wire mismatch:\nwant %x\ngot  %x", packet, encoded.Bytes())
		}
	}
}

// The tunnel id re-encodes in the shape that produced it: the 32-bit form
// unless the id needs 64 bits or came from SET_TUNNEL64.
func TestTunnelCompat(t *testing.T) {
	samples := []struct {
		action   ofpacts.SetTunnel
		expected string
	}{
		{
			action:   ofpacts.SetTunnel{ID: 100, Compat: ofpacts.CompatSetTunnel},
			expected: "ffff 0010 00002320 0002 0000 00000064",
		},
		{
			action:   ofpacts.SetTunnel{ID: 100},
			expected: "ffff 0010 00002320 0002 0000 00000064",
		},
		{
			action:   ofpacts.SetTunnel{ID: 100, Compat: ofpacts.CompatSetTunnel64},
			expected: "ffff 0018 00002320 0009 000000000000 0000000000000064",
		},
		{
			action:   ofpacts.SetTunnel{ID: 1 << 40},
			expected: "ffff 0018 00002320 0009 000000000000 0000010000000000",
		},
	}

	for i, sample := range samples {
		out := new(ofpacts.Buffer)
		if err := EncodeAction(sample.action, out); err != nil {
			t.Fatalf("sample %d: failed to encode: %v", i, err)
		}
		if !bytes.Equal(out.Bytes(), wire(t, sample.expected)) {
			t.Fatalf("sample %d: wire mismatch:\nwant %v\ngot  %x", i, sample.expected, out.Bytes())
		}
	}
}

// A note payload that is not a multiple of the action alignment gets padded
// on the wire, and the length field covers the padding.
func TestNotePadding(t *testing.T) {
	out := new(ofpacts.Buffer)
	if err := EncodeAction(ofpacts.Note{Data: []byte{0xab}}, out); err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	if !bytes.Equal(out.Bytes(), wire(t, "ffff 0010 00002320 0008 ab 0000000000")) {
		t.Fatalf("wire mismatch: %x", out.Bytes())
	}
}
