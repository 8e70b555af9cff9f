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

// OFPAT_VENDOR in OpenFlow 1.0, OFPAT_EXPERIMENTER in 1.1; the wire value
// is the same in both.
const actionVendor uint16 = 0xffff

func isAllZeros(p []byte) bool {
	for _, b := range p {
		if b != 0 {
			return false
		}
	}
	return true
}

// putHeader fills in the generic vendor action header at the front of v.
func putHeader(v []byte, subtype uint16) {
	binary.BigEndian.PutUint16(v[0:2], actionVendor)
	binary.BigEndian.PutUint16(v[2:4], uint16(len(v)))
	binary.BigEndian.PutUint32(v[4:8], NX_VENDOR_ID)
	binary.BigEndian.PutUint16(v[8:10], subtype)
}

// DecodeAction parses one vendor action record, already validated by the
// TLV walker to be 8-byte aligned and complete, and appends the internal
// record to out.
func DecodeAction(rec []byte, out *ofpacts.Buffer) error {
	if len(rec) < nxActionHeaderLen {
		return ofpacts.ErrBadLen
	}
	if binary.BigEndian.Uint32(rec[4:8]) != NX_VENDOR_ID {
		return ofpacts.ErrBadVendor
	}

	subtype := binary.BigEndian.Uint16(rec[8:10])
	st, ok := subtypes[subtype]
	if !ok {
		// Unknown subtypes and the obsolete SNAT / DROP_SPOOFED_ARP.
		return ofpacts.ErrBadType
	}
	if st.extensible {
		if len(rec) < st.size {
			return ofpacts.ErrBadLen
		}
	} else if len(rec) != st.size {
		return ofpacts.ErrBadLen
	}

	switch subtype {
	case NXAST_RESUBMIT:
		if rec[12] != 0 || !isAllZeros(rec[13:16]) {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.Resubmit{
			InPort:  binary.BigEndian.Uint16(rec[10:12]),
			TableID: 0xff,
			Compat:  ofpacts.CompatResubmit,
		})
	case NXAST_RESUBMIT_TABLE:
		if !isAllZeros(rec[13:16]) {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.Resubmit{
			InPort:  binary.BigEndian.Uint16(rec[10:12]),
			TableID: rec[12],
			Compat:  ofpacts.CompatResubmitTable,
		})
	case NXAST_SET_TUNNEL:
		if !isAllZeros(rec[10:12]) {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.SetTunnel{
			ID:     uint64(binary.BigEndian.Uint32(rec[12:16])),
			Compat: ofpacts.CompatSetTunnel,
		})
	case NXAST_SET_TUNNEL64:
		if !isAllZeros(rec[10:16]) {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.SetTunnel{
			ID:     binary.BigEndian.Uint64(rec[16:24]),
			Compat: ofpacts.CompatSetTunnel64,
		})
	case NXAST_SET_QUEUE:
		if !isAllZeros(rec[10:12]) {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.SetQueue{Queue: binary.BigEndian.Uint32(rec[12:16])})
	case NXAST_POP_QUEUE:
		if !isAllZeros(rec[10:16]) {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.PopQueue{})
	case NXAST_REG_MOVE:
		return decodeRegMove(rec, out)
	case NXAST_REG_LOAD:
		return decodeRegLoad(rec, out)
	case NXAST_NOTE:
		out.Append(ofpacts.Note{Data: append([]byte(nil), rec[noteOffset:]...)})
	case NXAST_MULTIPATH:
		return decodeMultipath(rec, out)
	case NXAST_AUTOPATH:
		return decodeAutopath(rec, out)
	case NXAST_BUNDLE, NXAST_BUNDLE_LOAD:
		return decodeBundle(subtype, rec, out)
	case NXAST_OUTPUT_REG:
		return decodeOutputReg(rec, out)
	case NXAST_LEARN:
		return decodeLearn(rec, out)
	case NXAST_EXIT:
		if !isAllZeros(rec[10:16]) {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.Exit{})
	case NXAST_DEC_TTL:
		if !isAllZeros(rec[10:16]) {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.DecTTL{})
	case NXAST_FIN_TIMEOUT:
		if !isAllZeros(rec[14:16]) {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.FinTimeout{
			IdleTimeout: binary.BigEndian.Uint16(rec[10:12]),
			HardTimeout: binary.BigEndian.Uint16(rec[12:14]),
		})
	case NXAST_CONTROLLER:
		if rec[15] != 0 {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.Controller{
			MaxLen: binary.BigEndian.Uint16(rec[10:12]),
			ID:     binary.BigEndian.Uint16(rec[12:14]),
			Reason: rec[14],
		})
	}

	return nil
}

func decodeOutputReg(rec []byte, out *ofpacts.Buffer) error {
	if !isAllZeros(rec[18:24]) {
		return ofpacts.ErrBadArgument
	}

	ofs, nBits := ofpacts.DecodeOfsNbits(binary.BigEndian.Uint16(rec[10:12]))
	field, err := ofpacts.FieldFromNXM(binary.BigEndian.Uint32(rec[12:16]))
	if err != nil {
		return err
	}

	outputReg := ofpacts.OutputReg{
		Src:    ofpacts.Subfield{Field: field, Ofs: ofs, NBits: nBits},
		MaxLen: binary.BigEndian.Uint16(rec[16:18]),
	}
	if err := outputReg.Src.CheckSrc(nil); err != nil {
		return err
	}

	out.Append(outputReg)
	return nil
}

// EncodeAction appends the vendor wire encoding of an internal record. It
// accepts exactly the variants that have no native OpenFlow 1.0/1.1 form.
func EncodeAction(a ofpacts.Action, out *ofpacts.Buffer) error {
	switch v := a.(type) {
	case ofpacts.Controller:
		rec := make([]byte, 16)
		putHeader(rec, NXAST_CONTROLLER)
		binary.BigEndian.PutUint16(rec[10:12], v.MaxLen)
		binary.BigEndian.PutUint16(rec[12:14], v.ID)
		rec[14] = v.Reason
		out.Put(rec)
	case ofpacts.OutputReg:
		rec := make([]byte, 24)
		putHeader(rec, NXAST_OUTPUT_REG)
		binary.BigEndian.PutUint16(rec[10:12], v.Src.OfsNbits())
		binary.BigEndian.PutUint32(rec[12:16], v.Src.Field.NXM)
		binary.BigEndian.PutUint16(rec[16:18], v.MaxLen)
		out.Put(rec)
	case ofpacts.Bundle:
		encodeBundle(v, out)
	case ofpacts.RegMove:
		encodeRegMove(v, out)
	case ofpacts.RegLoad:
		encodeRegLoad(v, out)
	case ofpacts.DecTTL:
		rec := make([]byte, 16)
		putHeader(rec, NXAST_DEC_TTL)
		out.Put(rec)
	case ofpacts.SetTunnel:
		encodeSetTunnel(v, out)
	case ofpacts.SetQueue:
		rec := make([]byte, 16)
		putHeader(rec, NXAST_SET_QUEUE)
		binary.BigEndian.PutUint32(rec[12:16], v.Queue)
		out.Put(rec)
	case ofpacts.PopQueue:
		rec := make([]byte, 16)
		putHeader(rec, NXAST_POP_QUEUE)
		out.Put(rec)
	case ofpacts.FinTimeout:
		rec := make([]byte, 16)
		putHeader(rec, NXAST_FIN_TIMEOUT)
		binary.BigEndian.PutUint16(rec[10:12], v.IdleTimeout)
		binary.BigEndian.PutUint16(rec[12:14], v.HardTimeout)
		out.Put(rec)
	case ofpacts.Resubmit:
		encodeResubmit(v, out)
	case ofpacts.Learn:
		encodeLearn(v, out)
	case ofpacts.Multipath:
		encodeMultipath(v, out)
	case ofpacts.Autopath:
		encodeAutopath(v, out)
	case ofpacts.Note:
		encodeNote(v, out)
	case ofpacts.Exit:
		rec := make([]byte, 16)
		putHeader(rec, NXAST_EXIT)
		out.Put(rec)
	default:
		return ofpacts.ErrUnsupportedAction
	}

	return nil
}

func encodeResubmit(v ofpacts.Resubmit, out *ofpacts.Buffer) {
	rec := make([]byte, 16)
	if v.TableID == 0xff && v.Compat != ofpacts.CompatResubmitTable {
		putHeader(rec, NXAST_RESUBMIT)
	} else {
		putHeader(rec, NXAST_RESUBMIT_TABLE)
		rec[12] = v.TableID
	}
	binary.BigEndian.PutUint16(rec[10:12], v.InPort)
	out.Put(rec)
}

func encodeSetTunnel(v ofpacts.SetTunnel, out *ofpacts.Buffer) {
	if v.ID <= 0xffffffff && v.Compat != ofpacts.CompatSetTunnel64 {
		rec := make([]byte, 16)
		putHeader(rec, NXAST_SET_TUNNEL)
		binary.BigEndian.PutUint32(rec[12:16], uint32(v.ID))
		out.Put(rec)
		return
	}

	rec := make([]byte, 24)
	putHeader(rec, NXAST_SET_TUNNEL64)
	binary.BigEndian.PutUint64(rec[16:24], v.ID)
	out.Put(rec)
}

func encodeNote(v ofpacts.Note, out *ofpacts.Buffer) {
	start := out.Len()

	rec := make([]byte, noteOffset)
	putHeader(rec, NXAST_NOTE)
	out.Put(rec)
	out.Put(v.Data)

	// Pad to the action alignment, then fix up the length to cover the
	// padded total.
	if rem := (out.Len() - start) % 8; rem > 0 {
		out.PutZeros(8 - rem)
	}
	out.SetUint16(start+2, uint16(out.Len()-start))
}
