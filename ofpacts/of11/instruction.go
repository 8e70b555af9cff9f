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

package of11

import (
	"encoding/binary"

	"github.com/fraant/openvswitch/ofpacts"
)

// Instruction kinds in first-occurrence-table order.
var instructionKinds = []struct {
	wireType   uint16
	size       int
	extensible bool
}{
	{wireType: OFPIT_GOTO_TABLE, size: instructionLen},
	{wireType: OFPIT_WRITE_METADATA, size: writeMetadataLen},
	{wireType: OFPIT_WRITE_ACTIONS, size: instructionLen, extensible: true},
	{wireType: OFPIT_APPLY_ACTIONS, size: instructionLen, extensible: true},
	{wireType: OFPIT_CLEAR_ACTIONS, size: instructionLen},
}

func classifyInstruction(rec []byte) (int, error) {
	wireType := binary.BigEndian.Uint16(rec[0:2])
	if wireType == OFPIT_EXPERIMENTER {
		return 0, ofpacts.ErrBadExperimenter
	}

	for i, kind := range instructionKinds {
		if kind.wireType != wireType {
			continue
		}
		if kind.extensible {
			if len(rec) < kind.size {
				return 0, ofpacts.ErrBadLen
			}
		} else if len(rec) != kind.size {
			return 0, ofpacts.ErrBadLen
		}
		return i, nil
	}

	return 0, ofpacts.ErrUnknownInstruction
}

// DecodeInstructions converts instrLen bytes of an OpenFlow 1.1 instruction
// block at the front of wire into an internal stream, replacing any
// previous content of out. Each instruction kind may occur at most once and
// only APPLY_ACTIONS is supported; any other recognized kind fails the
// whole block with ErrUnsupportedInstruction. On failure out is left empty.
func DecodeInstructions(wire []byte, instrLen int, out *ofpacts.Buffer) error {
	out.Clear()

	if instrLen%instructionAlign != 0 {
		ofpacts.Diagf("OpenFlow message instructions length %d is not a multiple of %d",
			instrLen, instructionAlign)
		return ofpacts.ErrBadLen
	}
	if instrLen < 0 || instrLen > len(wire) {
		ofpacts.Diagf("OpenFlow message instructions length %d exceeds remaining message length (%d)",
			instrLen, len(wire))
		return ofpacts.ErrBadLen
	}

	// First-occurrence table indexed like instructionKinds.
	insts := make([][]byte, len(instructionKinds))

	data := wire[:instrLen]
	for off := 0; off < len(data); {
		length := int(binary.BigEndian.Uint16(data[off+2 : off+4]))
		if length%instructionAlign != 0 || length < instructionLen || off+length > len(data) {
			ofpacts.Diagf("bad instruction format at offset %d", off)
			return ofpacts.ErrBadLen
		}

		idx, err := classifyInstruction(data[off : off+length])
		if err != nil {
			return err
		}
		if insts[idx] != nil {
			return ofpacts.ErrDuplicateInstruction
		}
		insts[idx] = data[off : off+length]

		off += length
	}

	var applyIdx, unsupported int
	for i, kind := range instructionKinds {
		switch kind.wireType {
		case OFPIT_APPLY_ACTIONS:
			applyIdx = i
		default:
			if insts[i] != nil {
				unsupported++
			}
		}
	}

	if apply := insts[applyIdx]; apply != nil {
		if err := DecodeActions(apply[instructionLen:], len(apply)-instructionLen, out); err != nil {
			return err
		}
	} else {
		out.Terminate()
	}

	if unsupported > 0 {
		out.Clear()
		return ofpacts.ErrUnsupportedInstruction
	}

	return nil
}

// EncodeInstructions converts an internal stream to a single OpenFlow 1.1
// instruction of the given kind wrapping the encoded actions, appending it
// to out. Only APPLY_ACTIONS can be encoded. On failure out is cleared.
func EncodeInstructions(in *ofpacts.Buffer, out *ofpacts.Buffer, kind uint16) error {
	if kind != OFPIT_APPLY_ACTIONS {
		out.Clear()
		return ofpacts.ErrUnsupportedInstruction
	}

	// Reserve the instruction header, emit the actions, then fill in the
	// header with the length of everything since the reserved position.
	start := out.Len()
	out.PutZeros(instructionLen)

	if err := EncodeActions(in, out); err != nil {
		return err
	}

	out.SetUint16(start, kind)
	out.SetUint16(start+2, uint16(out.Len()-start))
	return nil
}
