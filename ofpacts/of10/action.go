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

package of10

import (
	"encoding/binary"
	"net"

	"github.com/fraant/openvswitch/ofpacts"
	"github.com/fraant/openvswitch/ofpacts/nx"
)

func isAllZeros(p []byte) bool {
	for _, b := range p {
		if b != 0 {
			return false
		}
	}
	return true
}

func expectLen(rec []byte, n int) error {
	if len(rec) != n {
		return ofpacts.ErrBadLen
	}
	return nil
}

func decodeAction(rec []byte, out *ofpacts.Buffer) error {
	switch binary.BigEndian.Uint16(rec[0:2]) {
	case OFPAT_OUTPUT:
		if err := expectLen(rec, 8); err != nil {
			return err
		}
		port := binary.BigEndian.Uint16(rec[4:6])
		if err := ofpacts.CheckOutputPort(port, int(OFPP_MAX)); err != nil {
			return err
		}
		out.Append(ofpacts.Output{
			Port:   port,
			MaxLen: binary.BigEndian.Uint16(rec[6:8]),
		})
	case OFPAT_SET_VLAN_VID:
		if err := expectLen(rec, 8); err != nil {
			return err
		}
		vid := binary.BigEndian.Uint16(rec[4:6])
		if vid&^uint16(0xfff) != 0 || !isAllZeros(rec[6:8]) {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.SetVLANVID{VID: vid})
	case OFPAT_SET_VLAN_PCP:
		if err := expectLen(rec, 8); err != nil {
			return err
		}
		if rec[4]&^byte(7) != 0 || !isAllZeros(rec[5:8]) {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.SetVLANPCP{PCP: rec[4]})
	case OFPAT_STRIP_VLAN:
		if err := expectLen(rec, 8); err != nil {
			return err
		}
		if !isAllZeros(rec[4:8]) {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.StripVLAN{})
	case OFPAT_SET_DL_SRC:
		if err := expectLen(rec, 16); err != nil {
			return err
		}
		if !isAllZeros(rec[10:16]) {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.SetEthSrc{MAC: net.HardwareAddr(append([]byte(nil), rec[4:10]...))})
	case OFPAT_SET_DL_DST:
		if err := expectLen(rec, 16); err != nil {
			return err
		}
		if !isAllZeros(rec[10:16]) {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.SetEthDst{MAC: net.HardwareAddr(append([]byte(nil), rec[4:10]...))})
	case OFPAT_SET_NW_SRC:
		if err := expectLen(rec, 8); err != nil {
			return err
		}
		out.Append(ofpacts.SetIPv4Src{IP: net.IPv4(rec[4], rec[5], rec[6], rec[7]).To4()})
	case OFPAT_SET_NW_DST:
		if err := expectLen(rec, 8); err != nil {
			return err
		}
		out.Append(ofpacts.SetIPv4Dst{IP: net.IPv4(rec[4], rec[5], rec[6], rec[7]).To4()})
	case OFPAT_SET_NW_TOS:
		if err := expectLen(rec, 8); err != nil {
			return err
		}
		if rec[4]&^byte(dscpMask) != 0 || !isAllZeros(rec[5:8]) {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.SetIPv4DSCP{DSCP: rec[4]})
	case OFPAT_SET_TP_SRC:
		if err := expectLen(rec, 8); err != nil {
			return err
		}
		if !isAllZeros(rec[6:8]) {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.SetL4SrcPort{Port: binary.BigEndian.Uint16(rec[4:6])})
	case OFPAT_SET_TP_DST:
		if err := expectLen(rec, 8); err != nil {
			return err
		}
		if !isAllZeros(rec[6:8]) {
			return ofpacts.ErrBadArgument
		}
		out.Append(ofpacts.SetL4DstPort{Port: binary.BigEndian.Uint16(rec[4:6])})
	case OFPAT_ENQUEUE:
		if err := expectLen(rec, 16); err != nil {
			return err
		}
		if !isAllZeros(rec[6:12]) {
			return ofpacts.ErrBadArgument
		}
		port := binary.BigEndian.Uint16(rec[4:6])
		if port >= OFPP_MAX && port != OFPP_IN_PORT && port != OFPP_LOCAL {
			return ofpacts.ErrBadOutPort
		}
		out.Append(ofpacts.Enqueue{
			Port:  port,
			Queue: binary.BigEndian.Uint32(rec[12:16]),
		})
	case OFPAT_VENDOR:
		return nx.DecodeAction(rec, out)
	default:
		return ofpacts.ErrBadType
	}

	return nil
}

// DecodeActions converts actionsLen bytes of OpenFlow 1.0 actions at the
// front of wire into an internal stream, replacing any previous content of
// out. On failure out is left empty and the error is returned; no partial
// stream is ever observable.
//
// Context-dependent constraints are not applied here; the caller should
// follow up with ofpacts.Check.
func DecodeActions(wire []byte, actionsLen int, out *ofpacts.Buffer) error {
	out.Clear()

	if actionsLen%actionAlign != 0 {
		ofpacts.Diagf("OpenFlow message actions length %d is not a multiple of %d",
			actionsLen, actionAlign)
		return ofpacts.ErrBadLen
	}
	if actionsLen < 0 || actionsLen > len(wire) {
		ofpacts.Diagf("OpenFlow message actions length %d exceeds remaining message length (%d)",
			actionsLen, len(wire))
		return ofpacts.ErrBadLen
	}

	data := wire[:actionsLen]
	for off := 0; off < len(data); {
		length := int(binary.BigEndian.Uint16(data[off+2 : off+4]))
		if length%actionAlign != 0 || length < 8 || off+length > len(data) {
			ofpacts.Diagf("bad action format at offset %d", off)
			out.Clear()
			return ofpacts.ErrBadLen
		}

		if err := decodeAction(data[off:off+length], out); err != nil {
			ofpacts.Diagf("bad action at offset %d (%v)", off, err)
			out.Clear()
			return err
		}
		off += length
	}

	out.Terminate()
	return nil
}

func marshalDLAddr(t uint16, mac net.HardwareAddr) []byte {
	v := make([]byte, 16)
	binary.BigEndian.PutUint16(v[0:2], t)
	binary.BigEndian.PutUint16(v[2:4], 16)
	copy(v[4:10], mac)
	return v
}

func encodeAction(a ofpacts.Action, out *ofpacts.Buffer) error {
	switch v := a.(type) {
	case ofpacts.Output:
		rec := make([]byte, 8)
		binary.BigEndian.PutUint16(rec[0:2], OFPAT_OUTPUT)
		binary.BigEndian.PutUint16(rec[2:4], 8)
		binary.BigEndian.PutUint16(rec[4:6], v.Port)
		binary.BigEndian.PutUint16(rec[6:8], v.MaxLen)
		out.Put(rec)
	case ofpacts.Enqueue:
		rec := make([]byte, 16)
		binary.BigEndian.PutUint16(rec[0:2], OFPAT_ENQUEUE)
		binary.BigEndian.PutUint16(rec[2:4], 16)
		binary.BigEndian.PutUint16(rec[4:6], v.Port)
		binary.BigEndian.PutUint32(rec[12:16], v.Queue)
		out.Put(rec)
	case ofpacts.SetVLANVID:
		rec := make([]byte, 8)
		binary.BigEndian.PutUint16(rec[0:2], OFPAT_SET_VLAN_VID)
		binary.BigEndian.PutUint16(rec[2:4], 8)
		binary.BigEndian.PutUint16(rec[4:6], v.VID)
		out.Put(rec)
	case ofpacts.SetVLANPCP:
		rec := make([]byte, 8)
		binary.BigEndian.PutUint16(rec[0:2], OFPAT_SET_VLAN_PCP)
		binary.BigEndian.PutUint16(rec[2:4], 8)
		rec[4] = v.PCP
		out.Put(rec)
	case ofpacts.StripVLAN:
		rec := make([]byte, 8)
		binary.BigEndian.PutUint16(rec[0:2], OFPAT_STRIP_VLAN)
		binary.BigEndian.PutUint16(rec[2:4], 8)
		out.Put(rec)
	case ofpacts.SetEthSrc:
		out.Put(marshalDLAddr(OFPAT_SET_DL_SRC, v.MAC))
	case ofpacts.SetEthDst:
		out.Put(marshalDLAddr(OFPAT_SET_DL_DST, v.MAC))
	case ofpacts.SetIPv4Src:
		rec := make([]byte, 8)
		binary.BigEndian.PutUint16(rec[0:2], OFPAT_SET_NW_SRC)
		binary.BigEndian.PutUint16(rec[2:4], 8)
		copy(rec[4:8], v.IP.To4())
		out.Put(rec)
	case ofpacts.SetIPv4Dst:
		rec := make([]byte, 8)
		binary.BigEndian.PutUint16(rec[0:2], OFPAT_SET_NW_DST)
		binary.BigEndian.PutUint16(rec[2:4], 8)
		copy(rec[4:8], v.IP.To4())
		out.Put(rec)
	case ofpacts.SetIPv4DSCP:
		rec := make([]byte, 8)
		binary.BigEndian.PutUint16(rec[0:2], OFPAT_SET_NW_TOS)
		binary.BigEndian.PutUint16(rec[2:4], 8)
		rec[4] = v.DSCP
		out.Put(rec)
	case ofpacts.SetL4SrcPort:
		rec := make([]byte, 8)
		binary.BigEndian.PutUint16(rec[0:2], OFPAT_SET_TP_SRC)
		binary.BigEndian.PutUint16(rec[2:4], 8)
		binary.BigEndian.PutUint16(rec[4:6], v.Port)
		out.Put(rec)
	case ofpacts.SetL4DstPort:
		rec := make([]byte, 8)
		binary.BigEndian.PutUint16(rec[0:2], OFPAT_SET_TP_DST)
		binary.BigEndian.PutUint16(rec[2:4], 8)
		binary.BigEndian.PutUint16(rec[4:6], v.Port)
		out.Put(rec)
	default:
		// No native OpenFlow 1.0 form; use the vendor encoding.
		return nx.EncodeAction(a, out)
	}

	return nil
}

// EncodeActions converts an internal stream back to OpenFlow 1.0 wire
// actions, appending them to out. On failure out is cleared.
func EncodeActions(in *ofpacts.Buffer, out *ofpacts.Buffer) error {
	actions, err := in.Actions()
	if err != nil {
		out.Clear()
		return err
	}

	for _, a := range actions {
		if err := encodeAction(a, out); err != nil {
			out.Clear()
			return err
		}
	}

	return nil
}
