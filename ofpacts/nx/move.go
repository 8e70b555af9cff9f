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
	"encoding/binary"

	"github.com/fraant/openvswitch/ofpacts"
)

// NXAST_REG_MOVE: {header, n_bits, src_ofs, dst_ofs, src, dst}. Source and
// destination share one bit count.
func decodeRegMove(rec []byte, out *ofpacts.Buffer) error {
	nBits := binary.BigEndian.Uint16(rec[10:12])

	src, err := ofpacts.FieldFromNXM(binary.BigEndian.Uint32(rec[16:20]))
	if err != nil {
		return err
	}
	dst, err := ofpacts.FieldFromNXM(binary.BigEndian.Uint32(rec[20:24]))
	if err != nil {
		return err
	}

	move := ofpacts.RegMove{
		Src: ofpacts.Subfield{Field: src, Ofs: binary.BigEndian.Uint16(rec[12:14]), NBits: nBits},
		Dst: ofpacts.Subfield{Field: dst, Ofs: binary.BigEndian.Uint16(rec[14:16]), NBits: nBits},
	}
	if err := move.Check(nil); err != nil {
		return err
	}

	out.Append(move)
	return nil
}

func encodeRegMove(v ofpacts.RegMove, out *ofpacts.Buffer) {
	rec := make([]byte, 24)
	putHeader(rec, NXAST_REG_MOVE)
	binary.BigEndian.PutUint16(rec[10:12], v.Src.NBits)
	binary.BigEndian.PutUint16(rec[12:14], v.Src.Ofs)
	binary.BigEndian.PutUint16(rec[14:16], v.Dst.Ofs)
	binary.BigEndian.PutUint32(rec[16:20], v.Src.Field.NXM)
	binary.BigEndian.PutUint32(rec[20:24], v.Dst.Field.NXM)
	out.Put(rec)
}

// NXAST_REG_LOAD: {header, ofs_nbits, dst, value}.
func decodeRegLoad(rec []byte, out *ofpacts.Buffer) error {
	ofs, nBits := ofpacts.DecodeOfsNbits(binary.BigEndian.Uint16(rec[10:12]))

	dst, err := ofpacts.FieldFromNXM(binary.BigEndian.Uint32(rec[12:16]))
	if err != nil {
		return err
	}

	load := ofpacts.RegLoad{
		Dst:   ofpacts.Subfield{Field: dst, Ofs: ofs, NBits: nBits},
		Value: binary.BigEndian.Uint64(rec[16:24]),
	}
	if err := load.Check(nil); err != nil {
		return err
	}

	out.Append(load)
	return nil
}

func encodeRegLoad(v ofpacts.RegLoad, out *ofpacts.Buffer) {
	rec := make([]byte, 24)
	putHeader(rec, NXAST_REG_LOAD)
	binary.BigEndian.PutUint16(rec[10:12], v.Dst.OfsNbits())
	binary.BigEndian.PutUint32(rec[12:16], v.Dst.Field.NXM)
	binary.BigEndian.PutUint64(rec[16:24], v.Value)
	out.Put(rec)
}
