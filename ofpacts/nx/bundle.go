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

// NXAST_BUNDLE / NXAST_BUNDLE_LOAD: {header, algorithm, fields, basis,
// slave_type, n_slaves, ofs_nbits, dst, zero[4], slaves...}. The slave list
// is padded out to the action alignment; the wire length must account for
// the padded list exactly.
func decodeBundle(subtype uint16, rec []byte, out *ofpacts.Buffer) error {
	nSlaves := int(binary.BigEndian.Uint16(rec[20:22]))
	slavesLen := (2*nSlaves + 7) / 8 * 8
	if len(rec) != bundleOffset+slavesLen {
		return ofpacts.ErrBadLen
	}
	if !isAllZeros(rec[28:32]) {
		return ofpacts.ErrBadArgument
	}
	if !isAllZeros(rec[bundleOffset+2*nSlaves:]) {
		return ofpacts.ErrBadArgument
	}

	bundle := ofpacts.Bundle{
		Algorithm: binary.BigEndian.Uint16(rec[10:12]),
		Fields:    binary.BigEndian.Uint16(rec[12:14]),
		Basis:     binary.BigEndian.Uint16(rec[14:16]),
		SlaveType: binary.BigEndian.Uint32(rec[16:20]),
	}

	ofsNbits := binary.BigEndian.Uint16(rec[22:24])
	dstHeader := binary.BigEndian.Uint32(rec[24:28])
	if subtype == NXAST_BUNDLE_LOAD {
		ofs, nBits := ofpacts.DecodeOfsNbits(ofsNbits)
		dst, err := ofpacts.FieldFromNXM(dstHeader)
		if err != nil {
			return err
		}
		bundle.Dst = ofpacts.Subfield{Field: dst, Ofs: ofs, NBits: nBits}
	} else if ofsNbits != 0 || dstHeader != 0 {
		return ofpacts.ErrBadArgument
	}

	for i := 0; i < nSlaves; i++ {
		bundle.Slaves = append(bundle.Slaves,
			binary.BigEndian.Uint16(rec[bundleOffset+2*i:bundleOffset+2*i+2]))
	}

	if err := bundle.Check(nil, int(ofpacts.PortMax)); err != nil {
		return err
	}

	out.Append(bundle)
	return nil
}

func encodeBundle(v ofpacts.Bundle, out *ofpacts.Buffer) {
	slavesLen := (2*len(v.Slaves) + 7) / 8 * 8
	rec := make([]byte, bundleOffset+slavesLen)

	if v.Dst.Field != nil {
		putHeader(rec, NXAST_BUNDLE_LOAD)
		binary.BigEndian.PutUint16(rec[22:24], v.Dst.OfsNbits())
		binary.BigEndian.PutUint32(rec[24:28], v.Dst.Field.NXM)
	} else {
		putHeader(rec, NXAST_BUNDLE)
	}
	binary.BigEndian.PutUint16(rec[10:12], v.Algorithm)
	binary.BigEndian.PutUint16(rec[12:14], v.Fields)
	binary.BigEndian.PutUint16(rec[14:16], v.Basis)
	binary.BigEndian.PutUint32(rec[16:20], v.SlaveType)
	binary.BigEndian.PutUint16(rec[20:22], uint16(len(v.Slaves)))
	for i, slave := range v.Slaves {
		binary.BigEndian.PutUint16(rec[bundleOffset+2*i:bundleOffset+2*i+2], slave)
	}

	out.Put(rec)
}
