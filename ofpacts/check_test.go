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

func TestCheck(t *testing.T) {
	reg0 := mustField(t, 0x00010004)
	tcpSrc := mustField(t, 0x00001202)
	ethType := mustField(t, 0x00000602)
	ipSrc := mustField(t, 0x00000e04)

	tcpFlow := &Flow{DLType: ethTypeIPv4, NWProto: ipProtoTCP}
	udpFlow := &Flow{DLType: ethTypeIPv4, NWProto: ipProtoUDP}

	samples := []struct {
		name     string
		actions  []Action
		flow     *Flow
		maxPorts int
		expected error
	}{
		{
			name:     "output within bound",
			actions:  []Action{Output{Port: 2}},
			maxPorts: 3,
		},
		{
			name:     "output beyond bound",
			actions:  []Action{Output{Port: 5}},
			maxPorts: 3,
			expected: ErrBadOutPort,
		},
		{
			name:     "output to reserved port",
			actions:  []Action{Output{Port: PortFlood}},
			maxPorts: 3,
		},
		{
			name:     "enqueue beyond bound",
			actions:  []Action{Enqueue{Port: 9, Queue: 1}},
			maxPorts: 3,
			expected: ErrBadOutPort,
		},
		{
			name:     "enqueue to local",
			actions:  []Action{Enqueue{Port: PortLocal, Queue: 1}},
			maxPorts: 3,
		},
		{
			name:    "load into register",
			actions: []Action{RegLoad{Dst: Subfield{Field: reg0, Ofs: 0, NBits: 32}, Value: 1}},
			flow:    tcpFlow,
		},
		{
			name:     "load value does not fit",
			actions:  []Action{RegLoad{Dst: Subfield{Field: reg0, Ofs: 0, NBits: 4}, Value: 16}},
			flow:     tcpFlow,
			expected: ErrBadArgument,
		},
		{
			name:     "load into read-only field",
			actions:  []Action{RegLoad{Dst: Subfield{Field: ethType, Ofs: 0, NBits: 16}, Value: 1}},
			flow:     tcpFlow,
			expected: ErrBadArgument,
		},
		{
			name:    "load into TCP port with TCP flow",
			actions: []Action{RegLoad{Dst: Subfield{Field: tcpSrc, Ofs: 0, NBits: 16}, Value: 80}},
			flow:    tcpFlow,
		},
		{
			name:     "load into TCP port with UDP flow",
			actions:  []Action{RegLoad{Dst: Subfield{Field: tcpSrc, Ofs: 0, NBits: 16}, Value: 80}},
			flow:     udpFlow,
			expected: ErrBadArgument,
		},
		{
			name:     "output register with unmet prerequisite",
			actions:  []Action{OutputReg{Src: Subfield{Field: ipSrc, Ofs: 0, NBits: 32}}},
			flow:     &Flow{DLType: ethTypeARP},
			expected: ErrBadArgument,
		},
		{
			name:     "move out of range",
			actions:  []Action{RegMove{Src: Subfield{Field: reg0, Ofs: 20, NBits: 16}, Dst: Subfield{Field: reg0, Ofs: 0, NBits: 16}}},
			flow:     tcpFlow,
			expected: ErrBadArgument,
		},
		{
			name: "bundle slave beyond bound",
			actions: []Action{Bundle{Algorithm: BundleHRW, Fields: HashFieldsEthSrc,
				SlaveType: NXMOfInPort, Slaves: []uint16{1, 9}}},
			maxPorts: 3,
			expected: ErrBadOutPort,
		},
		{
			name:     "first error wins",
			actions:  []Action{Output{Port: 5}, Enqueue{Port: 9, Queue: 1}},
			maxPorts: 3,
			expected: ErrBadOutPort,
		},
		{
			name:    "unconstrained types pass",
			actions: []Action{SetVLANVID{VID: 1}, StripVLAN{}, DecTTL{}, Exit{}},
		},
	}

	for _, sample := range samples {
		buf := new(Buffer)
		for _, a := range sample.actions {
			buf.Append(a)
		}
		buf.Terminate()

		flow := sample.flow
		if flow == nil {
			flow = &Flow{}
		}
		if err := Check(buf, flow, sample.maxPorts); err != sample.expected {
			t.Fatalf("%v: expected %v, got %v", sample.name, sample.expected, err)
		}
	}
}
