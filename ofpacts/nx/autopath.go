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

// NXAST_AUTOPATH: {header, ofs_nbits, dst, id, pad[4]}.
func decodeAutopath(rec []byte, out *ofpacts.Buffer) error {
	if !isAllZeros(rec[20:24]) {
		return ofpacts.ErrBadArgument
	}

	ofs, nBits := ofpacts.DecodeOfsNbits(binary.BigEndian.Uint16(rec[10:12]))
	dst, err := ofpacts.FieldFromNXM(binary.BigEndian.Uint32(rec[12:16]))
	if err != nil {
		return err
	}

	autopath := ofpacts.Autopath{
		Port: binary.BigEndian.Uint32(rec[16:20]),
		Dst:  ofpacts.Subfield{Field: dst, Ofs: ofs, NBits: nBits},
	}
	if err := autopath.Check(nil); err != nil {
		return err
	}

	out.Append(autopath)
	return nil
}

func encodeAutopath(v ofpacts.Autopath, out *ofpacts.Buffer) {
	rec := make([]byte, 24)
	putHeader(rec, NXAST_AUTOPATH)
	binary.BigEndian.PutUint16(rec[10:12], v.Dst.OfsNbits())
	binary.BigEndian.PutUint32(rec[12:16], v.Dst.Field.NXM)
	binary.BigEndian.PutUint32(rec[16:20], v.Port)
	out.Put(rec)
}
