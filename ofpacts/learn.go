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
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"
)

// Flow_mod spec header layout: bit 13 selects the source kind, bits 11..12
// the destination kind, bits 0..9 the bit count. Bits 10, 14 and 15 are
// reserved and must be zero.
const (
	learnNBitsMask uint16 = 0x3ff

	learnSrcField     uint16 = 0 << 13
	learnSrcImmediate uint16 = 1 << 13
	learnSrcMask      uint16 = 1 << 13

	learnDstMatch    uint16 = 0 << 11
	learnDstLoad     uint16 = 1 << 11
	learnDstOutput   uint16 = 2 << 11
	learnDstReserved uint16 = 3 << 11
	learnDstMask     uint16 = 3 << 11
)

// LearnSendFlowRem is the only flag the learn action accepts.
const LearnSendFlowRem uint16 = 1 << 0

type learnSpec struct {
	nBits        uint16
	dst          uint16
	srcImmediate bool
	value        []byte // immediate source, (nBits+15)/16 16-bit units
	src          Subfield
	dstField     Subfield
}

// specs walks the verbatim flow_mod spec list. A zero header terminates the
// list; everything after it must be zero padding.
func (r Learn) specs() ([]learnSpec, error) {
	data := r.Specs
	var out []learnSpec

	for len(data) >= 2 {
		header := binary.BigEndian.Uint16(data[0:2])
		if header == 0 {
			break
		}
		data = data[2:]

		if header&^(learnSrcMask|learnDstMask|learnNBitsMask) != 0 {
			return nil, ErrBadArgument
		}
		spec := learnSpec{
			nBits:        header & learnNBitsMask,
			dst:          header & learnDstMask,
			srcImmediate: header&learnSrcMask == learnSrcImmediate,
		}
		if spec.nBits == 0 || spec.dst == learnDstReserved {
			return nil, ErrBadArgument
		}

		if spec.srcImmediate {
			n := (int(spec.nBits) + 15) / 16 * 2
			if len(data) < n {
				return nil, ErrBadLen
			}
			spec.value = data[:n]
			data = data[n:]
		} else {
			if len(data) < 6 {
				return nil, ErrBadLen
			}
			field, err := FieldFromNXM(binary.BigEndian.Uint32(data[0:4]))
			if err != nil {
				return nil, err
			}
			spec.src = Subfield{
				Field: field,
				Ofs:   binary.BigEndian.Uint16(data[4:6]),
				NBits: spec.nBits,
			}
			data = data[6:]
		}

		if spec.dst == learnDstMatch || spec.dst == learnDstLoad {
			if len(data) < 6 {
				return nil, ErrBadLen
			}
			field, err := FieldFromNXM(binary.BigEndian.Uint32(data[0:4]))
			if err != nil {
				return nil, err
			}
			spec.dstField = Subfield{
				Field: field,
				Ofs:   binary.BigEndian.Uint16(data[4:6]),
				NBits: spec.nBits,
			}
			data = data[6:]
		}

		out = append(out, spec)
	}

	for _, b := range data {
		if b != 0 {
			return nil, ErrBadArgument
		}
	}

	return out, nil
}

// Check validates the rule header and re-walks the spec list, applying the
// sub-field checks against the flow context.
func (r Learn) Check(flow *Flow) error {
	if r.Flags&^LearnSendFlowRem != 0 {
		return ErrBadArgument
	}
	if r.TableID == 0xff {
		return ErrBadArgument
	}

	specs, err := r.specs()
	if err != nil {
		return err
	}
	for _, spec := range specs {
		if !spec.srcImmediate {
			if err := spec.src.CheckSrc(flow); err != nil {
				return err
			}
		}
		switch spec.dst {
		case learnDstMatch:
			if err := spec.dstField.CheckSrc(flow); err != nil {
				return err
			}
		case learnDstLoad:
			if err := spec.dstField.CheckDst(flow); err != nil {
				return err
			}
		}
	}

	return nil
}

func immediateString(v []byte) string {
	i := 0
	for i < len(v)-1 && v[i] == 0 {
		i++
	}
	return "0x" + hex.EncodeToString(v[i:])
}

func (r learnSpec) String() string {
	src := func() string {
		if r.srcImmediate {
			return immediateString(r.value)
		}
		return r.src.String()
	}

	switch r.dst {
	case learnDstMatch:
		if !r.srcImmediate && r.src.Field == r.dstField.Field && r.src.Ofs == r.dstField.Ofs {
			return r.dstField.String()
		}
		return r.dstField.String() + "=" + src()
	case learnDstLoad:
		return "load:" + src() + "->" + r.dstField.String()
	default:
		return "output:" + src()
	}
}

func (r Learn) format(sb *strings.Builder) {
	sb.WriteString("learn(")

	var parts []string
	if r.IdleTimeout != 0 {
		parts = append(parts, fmt.Sprintf("idle_timeout=%d", r.IdleTimeout))
	}
	if r.HardTimeout != 0 {
		parts = append(parts, fmt.Sprintf("hard_timeout=%d", r.HardTimeout))
	}
	if r.FinIdleTimeout != 0 {
		parts = append(parts, fmt.Sprintf("fin_idle_timeout=%d", r.FinIdleTimeout))
	}
	if r.FinHardTimeout != 0 {
		parts = append(parts, fmt.Sprintf("fin_hard_timeout=%d", r.FinHardTimeout))
	}
	if r.Priority != 0 {
		parts = append(parts, fmt.Sprintf("priority=%d", r.Priority))
	}
	if r.Flags&LearnSendFlowRem != 0 {
		parts = append(parts, "send_flow_rem")
	}
	if r.Cookie != 0 {
		parts = append(parts, fmt.Sprintf("cookie=%#x", r.Cookie))
	}
	parts = append(parts, fmt.Sprintf("table=%d", r.TableID))

	if specs, err := r.specs(); err == nil {
		for _, spec := range specs {
			parts = append(parts, spec.String())
		}
	}

	sb.WriteString(strings.Join(parts, ","))
	sb.WriteByte(')')
}
