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

// NXAST_MULTIPATH: {header, fields, basis, zero[2], algorithm, max_link,
// arg, zero[2], ofs_nbits, dst}.
func decodeMultipath(rec []byte, out *ofpacts.Buffer) error {
	if !isAllZeros(rec[14:16]) || !isAllZeros(rec[24:26]) {
		return ofpacts.ErrBadArgument
	}

	ofs, nBits := ofpacts.DecodeOfsNbits(binary.BigEndian.Uint16(rec[26:28]))
	dst, err := ofpacts.FieldFromNXM(binary.BigEndian.Uint32(rec[28:32]))
	if err != nil {
		return err
	}

	multipath := ofpacts.Multipath{
		Fields:    binary.BigEndian.Uint16(rec[10:12]),
		Basis:     binary.BigEndian.Uint16(rec[12:14]),
		Algorithm: binary.BigEndian.Uint16(rec[16:18]),
		MaxLink:   binary.BigEndian.Uint16(rec[18:20]),
		Arg:       binary.BigEndian.Uint32(rec[20:24]),
		Dst:       ofpacts.Subfield{Field: dst, Ofs: ofs, NBits: nBits},
	}
	if err := multipath.Check(nil); err != nil {
		return err
	}

	out.Append(multipath)
	return nil
}

func encodeMultipath(v ofpacts.Multipath, out *ofpacts.Buffer) {
	rec := make([]byte, 32)
	putHeader(rec, NXAST_MULTIPATH)
	binary.BigEndian.PutUint16(rec[10:12], v.Fields)
	binary.BigEndian.PutUint16(rec[12:14], v.Basis)
	binary.BigEndian.PutUint16(rec[16:18], v.Algorithm)
	binary.BigEndian.PutUint16(rec[18:20], v.MaxLink)
	binary.BigEndian.PutUint32(rec[20:24], v.Arg)
	binary.BigEndian.PutUint16(rec[26:28], v.Dst.OfsNbits())
	binary.BigEndian.PutUint32(rec[28:32], v.Dst.Field.NXM)
	out.Put(rec)
}
