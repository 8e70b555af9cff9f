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
	"fmt"
	"strings"
)

// Match prerequisites a field imposes on the flow being modified.
type prereq uint8

const (
	prereqNone prereq = iota
	prereqARP
	prereqIP
	prereqIPv4
	prereqTCP
	prereqUDP
	prereqICMP
)

// Field describes a match field that sub-field actions can reference.
type Field struct {
	Name     string
	NXM      uint32 // NXM header with length, without the hasmask bit
	Bits     uint16 // field width in bits
	Writable bool
	prereq   prereq
}

// NXMOfInPort is the NXM header of the ingress port field, the only slave
// type the bundle action accepts.
const NXMOfInPort uint32 = 0x00000002

// The NXM header values below follow the Nicira extended match encoding:
// (class << 16) | (field << 9) | length.
var fields = []*Field{
	{Name: "NXM_OF_IN_PORT", NXM: 0x00000002, Bits: 16},
	{Name: "NXM_OF_ETH_DST", NXM: 0x00000206, Bits: 48, Writable: true},
	{Name: "NXM_OF_ETH_SRC", NXM: 0x00000406, Bits: 48, Writable: true},
	{Name: "NXM_OF_ETH_TYPE", NXM: 0x00000602, Bits: 16},
	{Name: "NXM_OF_VLAN_TCI", NXM: 0x00000802, Bits: 16, Writable: true},
	{Name: "NXM_OF_IP_TOS", NXM: 0x00000a01, Bits: 8, Writable: true, prereq: prereqIP},
	{Name: "NXM_OF_IP_PROTO", NXM: 0x00000c01, Bits: 8, prereq: prereqIP},
	{Name: "NXM_OF_IP_SRC", NXM: 0x00000e04, Bits: 32, Writable: true, prereq: prereqIPv4},
	{Name: "NXM_OF_IP_DST", NXM: 0x00001004, Bits: 32, Writable: true, prereq: prereqIPv4},
	{Name: "NXM_OF_TCP_SRC", NXM: 0x00001202, Bits: 16, Writable: true, prereq: prereqTCP},
	{Name: "NXM_OF_TCP_DST", NXM: 0x00001402, Bits: 16, Writable: true, prereq: prereqTCP},
	{Name: "NXM_OF_UDP_SRC", NXM: 0x00001602, Bits: 16, Writable: true, prereq: prereqUDP},
	{Name: "NXM_OF_UDP_DST", NXM: 0x00001802, Bits: 16, Writable: true, prereq: prereqUDP},
	{Name: "NXM_OF_ICMP_TYPE", NXM: 0x00001a01, Bits: 8, prereq: prereqICMP},
	{Name: "NXM_OF_ICMP_CODE", NXM: 0x00001c01, Bits: 8, prereq: prereqICMP},
	{Name: "NXM_OF_ARP_OP", NXM: 0x00001e02, Bits: 16, prereq: prereqARP},
	{Name: "NXM_OF_ARP_SPA", NXM: 0x00002004, Bits: 32, prereq: prereqARP},
	{Name: "NXM_OF_ARP_TPA", NXM: 0x00002204, Bits: 32, prereq: prereqARP},
	{Name: "NXM_NX_REG0", NXM: 0x00010004, Bits: 32, Writable: true},
	{Name: "NXM_NX_REG1", NXM: 0x00010204, Bits: 32, Writable: true},
	{Name: "NXM_NX_REG2", NXM: 0x00010404, Bits: 32, Writable: true},
	{Name: "NXM_NX_REG3", NXM: 0x00010604, Bits: 32, Writable: true},
	{Name: "NXM_NX_REG4", NXM: 0x00010804, Bits: 32, Writable: true},
	{Name: "NXM_NX_REG5", NXM: 0x00010a04, Bits: 32, Writable: true},
	{Name: "NXM_NX_REG6", NXM: 0x00010c04, Bits: 32, Writable: true},
	{Name: "NXM_NX_REG7", NXM: 0x00010e04, Bits: 32, Writable: true},
	{Name: "NXM_NX_TUN_ID", NXM: 0x00012008, Bits: 64, Writable: true},
	{Name: "NXM_NX_ARP_SHA", NXM: 0x00012206, Bits: 48, prereq: prereqARP},
	{Name: "NXM_NX_ARP_THA", NXM: 0x00012406, Bits: 48, prereq: prereqARP},
}

var fieldsByNXM = func() map[uint32]*Field {
	m := make(map[uint32]*Field)
	for _, f := range fields {
		m[f.NXM] = f
	}
	return m
}()

// FieldFromNXM returns the field a wire NXM header refers to.
func FieldFromNXM(header uint32) (*Field, error) {
	f, ok := fieldsByNXM[header]
	if !ok {
		return nil, ErrBadArgument
	}

	return f, nil
}

// Subfield references n_bits bits starting at bit ofs within a match field.
type Subfield struct {
	Field *Field
	Ofs   uint16
	NBits uint16
}

// OfsNbits returns the packed 16-bit wire descriptor (ofs << 6) | (n_bits - 1).
func (r Subfield) OfsNbits() uint16 {
	return r.Ofs<<6 | (r.NBits - 1)
}

// DecodeOfsNbits unpacks the 16-bit wire descriptor.
func DecodeOfsNbits(v uint16) (ofs, nBits uint16) {
	return v >> 6, v&0x3f + 1
}

func (r Subfield) check(flow *Flow) error {
	if r.Field == nil || r.NBits == 0 {
		return ErrBadArgument
	}
	if r.Ofs+r.NBits > r.Field.Bits {
		return ErrBadArgument
	}
	if flow != nil && !flow.prereqsOK(r.Field.prereq) {
		return ErrBadArgument
	}

	return nil
}

// CheckSrc verifies that the sub-field may be read. A nil flow skips the
// match prerequisite check; the wire decoders pass nil and the validator
// passes the real flow context.
func (r Subfield) CheckSrc(flow *Flow) error {
	return r.check(flow)
}

// CheckDst verifies that the sub-field may be written.
func (r Subfield) CheckDst(flow *Flow) error {
	if err := r.check(flow); err != nil {
		return err
	}
	if !r.Field.Writable {
		return ErrBadArgument
	}

	return nil
}

// String renders the sub-field in the ovs-ofctl form: FIELD[], FIELD[ofs],
// or FIELD[ofs..end].
func (r Subfield) String() string {
	if r.Field == nil {
		return "<unknown>[]"
	}

	var b strings.Builder
	b.WriteString(r.Field.Name)
	switch {
	case r.Ofs == 0 && r.NBits == r.Field.Bits:
		b.WriteString("[]")
	case r.NBits == 1:
		fmt.Fprintf(&b, "[%d]", r.Ofs)
	default:
		fmt.Fprintf(&b, "[%d..%d]", r.Ofs, r.Ofs+r.NBits-1)
	}

	return b.String()
}
