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
	"net"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	reg0 := mustField(t, 0x00010004)
	inPort := mustField(t, 0x00000002)

	samples := []struct {
		actions  []Action
		expected string
	}{
		{actions: nil, expected: "actions=drop"},
		{actions: []Action{Output{Port: 1}}, expected: "actions=output:1"},
		{
			actions:  []Action{Output{Port: PortController, MaxLen: 128}},
			expected: "actions=CONTROLLER:128",
		},
		{actions: []Action{Output{Port: PortFlood}}, expected: "actions=FLOOD"},
		{
			actions:  []Action{Controller{MaxLen: 128, Reason: ReasonAction}},
			expected: "actions=CONTROLLER:128",
		},
		{
			actions:  []Action{Controller{MaxLen: 0xffff, ID: 5, Reason: ReasonNoMatch}},
			expected: "actions=controller(reason=no_match,id=5)",
		},
		{
			actions:  []Action{Controller{MaxLen: 64, Reason: ReasonAction, ID: 1}},
			expected: "actions=controller(max_len=64,id=1)",
		},
		{actions: []Action{Enqueue{Port: 3, Queue: 7}}, expected: "actions=enqueue:3q7"},
		{
			actions:  []Action{Enqueue{Port: PortLocal, Queue: 1}},
			expected: "actions=enqueue:LOCALq1",
		},
		{
			actions:  []Action{OutputReg{Src: Subfield{Field: reg0, Ofs: 0, NBits: 32}}},
			expected: "actions=output:NXM_NX_REG0[]",
		},
		{actions: []Action{SetVLANVID{VID: 9}}, expected: "actions=mod_vlan_vid:9"},
		{actions: []Action{SetVLANPCP{PCP: 7}}, expected: "actions=mod_vlan_pcp:7"},
		{actions: []Action{StripVLAN{}}, expected: "actions=strip_vlan"},
		{
			actions:  []Action{SetEthSrc{MAC: net.HardwareAddr{0xaa, 0xbb, 0xcc, 0x00, 0x11, 0x22}}},
			expected: "actions=mod_dl_src:aa:bb:cc:00:11:22",
		},
		{
			actions:  []Action{SetEthDst{MAC: net.HardwareAddr{1, 2, 3, 4, 5, 6}}},
			expected: "actions=mod_dl_dst:01:02:03:04:05:06",
		},
		{
			actions:  []Action{SetIPv4Src{IP: net.IPv4(10, 0, 0, 1)}},
			expected: "actions=mod_nw_src:10.0.0.1",
		},
		{
			actions:  []Action{SetIPv4Dst{IP: net.IPv4(192, 168, 0, 1)}},
			expected: "actions=mod_nw_dst:192.168.0.1",
		},
		{actions: []Action{SetIPv4DSCP{DSCP: 16}}, expected: "actions=mod_nw_tos:16"},
		{actions: []Action{SetL4SrcPort{Port: 80}}, expected: "actions=mod_tp_src:80"},
		{actions: []Action{SetL4DstPort{Port: 443}}, expected: "actions=mod_tp_dst:443"},
		{
			actions: []Action{RegMove{
				Src: Subfield{Field: inPort, Ofs: 0, NBits: 16},
				Dst: Subfield{Field: reg0, Ofs: 0, NBits: 16},
			}},
			expected: "actions=move:NXM_OF_IN_PORT[]->NXM_NX_REG0[0..15]",
		},
		{
			actions:  []Action{RegLoad{Dst: Subfield{Field: reg0, Ofs: 0, NBits: 32}, Value: 5}},
			expected: "actions=load:0x5->NXM_NX_REG0[]",
		},
		{actions: []Action{DecTTL{}}, expected: "actions=dec_ttl"},
		{
			actions:  []Action{SetTunnel{ID: 0x10, Compat: CompatSetTunnel}},
			expected: "actions=set_tunnel:0x10",
		},
		{
			actions:  []Action{SetTunnel{ID: 0x10, Compat: CompatSetTunnel64}},
			expected: "actions=set_tunnel64:0x10",
		},
		{
			actions:  []Action{SetTunnel{ID: 1 << 40}},
			expected: "actions=set_tunnel64:0x10000000000",
		},
		{actions: []Action{SetQueue{Queue: 3}}, expected: "actions=set_queue:3"},
		{actions: []Action{PopQueue{}}, expected: "actions=pop_queue"},
		{
			actions:  []Action{FinTimeout{IdleTimeout: 10}},
			expected: "actions=fin_timeout(idle_timeout=10)",
		},
		{
			actions:  []Action{FinTimeout{IdleTimeout: 10, HardTimeout: 20}},
			expected: "actions=fin_timeout(idle_timeout=10,hard_timeout=20)",
		},
		{actions: []Action{FinTimeout{}}, expected: "actions=fin_timeout()"},
		{
			actions:  []Action{Resubmit{InPort: 3, TableID: 0xff, Compat: CompatResubmit}},
			expected: "actions=resubmit:3",
		},
		{
			actions:  []Action{Resubmit{InPort: 3, TableID: 5, Compat: CompatResubmitTable}},
			expected: "actions=resubmit(3,5)",
		},
		{
			actions:  []Action{Resubmit{InPort: PortInPort, TableID: 5, Compat: CompatResubmitTable}},
			expected: "actions=resubmit(,5)",
		},
		{
			actions: []Action{Multipath{Fields: HashFieldsEthSrc, Basis: 50,
				Algorithm: MultipathModuloN, MaxLink: 15,
				Dst: Subfield{Field: reg0, Ofs: 0, NBits: 16}}},
			expected: "actions=multipath(eth_src,50,modulo_n,16,0,NXM_NX_REG0[0..15])",
		},
		{
			actions:  []Action{Autopath{Port: 5, Dst: Subfield{Field: reg0, Ofs: 0, NBits: 32}}},
			expected: "actions=autopath(5,NXM_NX_REG0[])",
		},
		{
			actions: []Action{Bundle{Algorithm: BundleActiveBackup, Fields: HashFieldsEthSrc,
				Basis: 0, SlaveType: NXMOfInPort, Slaves: []uint16{1, 2}}},
			expected: "actions=bundle(eth_src,0,active_backup,ofport,slaves:1,2)",
		},
		{
			actions: []Action{Bundle{Algorithm: BundleHRW, Fields: HashFieldsSymmetricL4,
				Basis: 60, SlaveType: NXMOfInPort,
				Dst:    Subfield{Field: reg0, Ofs: 0, NBits: 16},
				Slaves: []uint16{2, 3}}},
			expected: "actions=bundle_load(symmetric_l4,60,hrw,ofport,NXM_NX_REG0[0..15],slaves:2,3)",
		},
		{
			actions:  []Action{Note{Data: []byte{0xde, 0xad, 0xbe, 0xef}}},
			expected: "actions=note:de.ad.be.ef",
		},
		{actions: []Action{Exit{}}, expected: "actions=exit"},
		{
			actions:  []Action{Output{Port: 1}, StripVLAN{}, Exit{}},
			expected: "actions=output:1,strip_vlan,exit",
		},
	}

	for i, sample := range samples {
		buf := new(Buffer)
		for _, a := range sample.actions {
			buf.Append(a)
		}
		if sample.actions != nil {
			buf.Terminate()
		}

		var sb strings.Builder
		if err := Format(buf, &sb); err != nil {
			t.Fatalf("sample %d: failed to format: %v", i, err)
		}
		if sb.String() != sample.expected {
			t.Fatalf("sample %d: expected %q, got %q", i, sample.expected, sb.String())
		}
	}
}

// The same internal record always renders to the same string.
func TestFormatStable(t *testing.T) {
	buf := new(Buffer)
	buf.Append(Output{Port: 1})
	buf.Append(Note{Data: []byte{1, 2, 3}})
	buf.Terminate()

	var first strings.Builder
	if err := Format(buf, &first); err != nil {
		t.Fatalf("failed to format: %v", err)
	}
	for i := 0; i < 3; i++ {
		var again strings.Builder
		if err := Format(buf, &again); err != nil {
			t.Fatalf("failed to format: %v", err)
		}
		if first.String() != again.String() {
			t.Fatalf("rendering is unstable: %q then %q", first.String(), again.String())
		}
	}
}

func TestFormatLearn(t *testing.T) {
	// One spec: match the 12-bit VLAN id against the immediate value 0x64.
	specs := []byte{
		0x20, 0x0c, // immediate source, match destination, 12 bits
		0x00, 0x64, // immediate value
		0x00, 0x00, 0x08, 0x02, 0x00, 0x00, // NXM_OF_VLAN_TCI[0..11]
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // list terminator padding
	}

	buf := new(Buffer)
	buf.Append(Learn{IdleTimeout: 60, TableID: 1, Specs: specs})
	buf.Terminate()

	var sb strings.Builder
	if err := Format(buf, &sb); err != nil {
		t.Fatalf("failed to format: %v", err)
	}
	expected := "actions=learn(idle_timeout=60,table=1,NXM_OF_VLAN_TCI[0..11]=0x64)"
	if sb.String() != expected {
		t.Fatalf("expected %q, got %q", expected, sb.String())
	}
}
