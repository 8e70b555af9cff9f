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
	"net"
)

// AlignTo is the alignment of both internal records and wire records. Every
// record starts at a multiple of it.
const AlignTo = 8

// headerLen is the size of the internal record header:
// {type u16, compat u16, len u16, zero u16}, big-endian.
const headerLen = 8

// Buffer is an append-only byte buffer. It backs both the internal action
// stream and the wire output of the encoders; the caller owns it and may
// reuse it across calls. Failed conversions leave it empty.
type Buffer struct {
	data []byte
}

func (r *Buffer) Len() int {
	return len(r.data)
}

func (r *Buffer) Bytes() []byte {
	return r.data
}

// Clear empties the buffer, keeping its storage for reuse.
func (r *Buffer) Clear() {
	r.data = r.data[:0]
}

// Put appends raw bytes.
func (r *Buffer) Put(p []byte) {
	r.data = append(r.data, p...)
}

// PutZeros appends n zero bytes.
func (r *Buffer) PutZeros(n int) {
	for i := 0; i < n; i++ {
		r.data = append(r.data, 0)
	}
}

// SetUint16 patches a previously written big-endian 16-bit value. The wire
// encoders use it to fix up a record's length after appending a
// variable-length payload.
func (r *Buffer) SetUint16(off int, v uint16) {
	binary.BigEndian.PutUint16(r.data[off:off+2], v)
}

// pad aligns the write position to the record alignment.
func (r *Buffer) pad() {
	if rem := len(r.data) % AlignTo; rem > 0 {
		r.PutZeros(AlignTo - rem)
	}
}

func (r *Buffer) putHeader(t Type, c Compat, recordLen int) {
	v := make([]byte, headerLen)
	binary.BigEndian.PutUint16(v[0:2], uint16(t))
	binary.BigEndian.PutUint16(v[2:4], uint16(c))
	binary.BigEndian.PutUint16(v[4:6], uint16(recordLen))
	r.Put(v)
}

// Terminate appends the END sentinel. No record may follow it.
func (r *Buffer) Terminate() {
	r.pad()
	r.putHeader(TypeEnd, CompatNone, headerLen)
}

func putSubfield(v []byte, sf Subfield) {
	if sf.Field == nil {
		return
	}
	binary.BigEndian.PutUint32(v[0:4], sf.Field.NXM)
	binary.BigEndian.PutUint16(v[4:6], sf.Ofs)
	binary.BigEndian.PutUint16(v[6:8], sf.NBits)
}

func parseSubfield(data []byte) (Subfield, error) {
	header := binary.BigEndian.Uint32(data[0:4])
	if header == 0 {
		return Subfield{}, nil
	}

	field, err := FieldFromNXM(header)
	if err != nil {
		return Subfield{}, err
	}

	return Subfield{
		Field: field,
		Ofs:   binary.BigEndian.Uint16(data[4:6]),
		NBits: binary.BigEndian.Uint16(data[6:8]),
	}, nil
}

// Append writes one record, padded to the record alignment. Records are
// immutable once written.
func (r *Buffer) Append(a Action) {
	r.pad()

	var payload []byte
	compat := CompatNone

	switch v := a.(type) {
	case Output:
		payload = make([]byte, 4)
		binary.BigEndian.PutUint16(payload[0:2], v.Port)
		binary.BigEndian.PutUint16(payload[2:4], v.MaxLen)
	case Controller:
		payload = make([]byte, 5)
		binary.BigEndian.PutUint16(payload[0:2], v.MaxLen)
		binary.BigEndian.PutUint16(payload[2:4], v.ID)
		payload[4] = v.Reason
	case Enqueue:
		payload = make([]byte, 8)
		binary.BigEndian.PutUint16(payload[0:2], v.Port)
		binary.BigEndian.PutUint32(payload[4:8], v.Queue)
	case OutputReg:
		payload = make([]byte, 10)
		putSubfield(payload[0:8], v.Src)
		binary.BigEndian.PutUint16(payload[8:10], v.MaxLen)
	case Bundle:
		payload = make([]byte, 20+2*len(v.Slaves))
		binary.BigEndian.PutUint16(payload[0:2], v.Algorithm)
		binary.BigEndian.PutUint16(payload[2:4], v.Fields)
		binary.BigEndian.PutUint16(payload[4:6], v.Basis)
		binary.BigEndian.PutUint32(payload[6:10], v.SlaveType)
		binary.BigEndian.PutUint16(payload[10:12], uint16(len(v.Slaves)))
		putSubfield(payload[12:20], v.Dst)
		for i, slave := range v.Slaves {
			binary.BigEndian.PutUint16(payload[20+2*i:22+2*i], slave)
		}
	case SetVLANVID:
		payload = make([]byte, 2)
		binary.BigEndian.PutUint16(payload, v.VID)
	case SetVLANPCP:
		payload = []byte{v.PCP}
	case StripVLAN:
	case SetEthSrc:
		payload = make([]byte, 6)
		copy(payload, v.MAC)
	case SetEthDst:
		payload = make([]byte, 6)
		copy(payload, v.MAC)
	case SetIPv4Src:
		payload = make([]byte, 4)
		copy(payload, v.IP.To4())
	case SetIPv4Dst:
		payload = make([]byte, 4)
		copy(payload, v.IP.To4())
	case SetIPv4DSCP:
		payload = []byte{v.DSCP}
	case SetL4SrcPort:
		payload = make([]byte, 2)
		binary.BigEndian.PutUint16(payload, v.Port)
	case SetL4DstPort:
		payload = make([]byte, 2)
		binary.BigEndian.PutUint16(payload, v.Port)
	case RegMove:
		payload = make([]byte, 16)
		putSubfield(payload[0:8], v.Src)
		putSubfield(payload[8:16], v.Dst)
	case RegLoad:
		payload = make([]byte, 16)
		putSubfield(payload[0:8], v.Dst)
		binary.BigEndian.PutUint64(payload[8:16], v.Value)
	case DecTTL:
	case SetTunnel:
		compat = v.Compat
		payload = make([]byte, 8)
		binary.BigEndian.PutUint64(payload, v.ID)
	case SetQueue:
		payload = make([]byte, 4)
		binary.BigEndian.PutUint32(payload, v.Queue)
	case PopQueue:
	case FinTimeout:
		payload = make([]byte, 4)
		binary.BigEndian.PutUint16(payload[0:2], v.IdleTimeout)
		binary.BigEndian.PutUint16(payload[2:4], v.HardTimeout)
	case Resubmit:
		compat = v.Compat
		payload = make([]byte, 3)
		binary.BigEndian.PutUint16(payload[0:2], v.InPort)
		payload[2] = v.TableID
	case Learn:
		payload = make([]byte, 22+len(v.Specs))
		binary.BigEndian.PutUint16(payload[0:2], v.IdleTimeout)
		binary.BigEndian.PutUint16(payload[2:4], v.HardTimeout)
		binary.BigEndian.PutUint16(payload[4:6], v.Priority)
		binary.BigEndian.PutUint16(payload[6:8], v.Flags)
		binary.BigEndian.PutUint64(payload[8:16], v.Cookie)
		payload[16] = v.TableID
		binary.BigEndian.PutUint16(payload[18:20], v.FinIdleTimeout)
		binary.BigEndian.PutUint16(payload[20:22], v.FinHardTimeout)
		copy(payload[22:], v.Specs)
	case Multipath:
		payload = make([]byte, 20)
		binary.BigEndian.PutUint16(payload[0:2], v.Fields)
		binary.BigEndian.PutUint16(payload[2:4], v.Basis)
		binary.BigEndian.PutUint16(payload[4:6], v.Algorithm)
		binary.BigEndian.PutUint16(payload[6:8], v.MaxLink)
		binary.BigEndian.PutUint32(payload[8:12], v.Arg)
		putSubfield(payload[12:20], v.Dst)
	case Autopath:
		payload = make([]byte, 12)
		binary.BigEndian.PutUint32(payload[0:4], v.Port)
		putSubfield(payload[4:12], v.Dst)
	case Note:
		payload = make([]byte, 2+len(v.Data))
		binary.BigEndian.PutUint16(payload[0:2], uint16(len(v.Data)))
		copy(payload[2:], v.Data)
	case Exit:
	default:
		panic("ofpacts: unknown action variant")
	}

	r.putHeader(a.kind(), compat, headerLen+len(payload))
	r.Put(payload)
}

func parseAction(t Type, compat Compat, payload []byte) (Action, error) {
	// Fixed-size variants must match their payload length exactly;
	// variable-length variants carry a minimum.
	expect := func(n int) error {
		if len(payload) != n {
			return ErrBadLen
		}
		return nil
	}

	switch t {
	case TypeOutput:
		if err := expect(4); err != nil {
			return nil, err
		}
		return Output{
			Port:   binary.BigEndian.Uint16(payload[0:2]),
			MaxLen: binary.BigEndian.Uint16(payload[2:4]),
		}, nil
	case TypeController:
		if err := expect(5); err != nil {
			return nil, err
		}
		return Controller{
			MaxLen: binary.BigEndian.Uint16(payload[0:2]),
			ID:     binary.BigEndian.Uint16(payload[2:4]),
			Reason: payload[4],
		}, nil
	case TypeEnqueue:
		if err := expect(8); err != nil {
			return nil, err
		}
		return Enqueue{
			Port:  binary.BigEndian.Uint16(payload[0:2]),
			Queue: binary.BigEndian.Uint32(payload[4:8]),
		}, nil
	case TypeOutputReg:
		if err := expect(10); err != nil {
			return nil, err
		}
		src, err := parseSubfield(payload[0:8])
		if err != nil {
			return nil, err
		}
		return OutputReg{
			Src:    src,
			MaxLen: binary.BigEndian.Uint16(payload[8:10]),
		}, nil
	case TypeBundle:
		if len(payload) < 20 {
			return nil, ErrBadLen
		}
		nSlaves := int(binary.BigEndian.Uint16(payload[10:12]))
		if len(payload) != 20+2*nSlaves {
			return nil, ErrBadLen
		}
		dst, err := parseSubfield(payload[12:20])
		if err != nil {
			return nil, err
		}
		bundle := Bundle{
			Algorithm: binary.BigEndian.Uint16(payload[0:2]),
			Fields:    binary.BigEndian.Uint16(payload[2:4]),
			Basis:     binary.BigEndian.Uint16(payload[4:6]),
			SlaveType: binary.BigEndian.Uint32(payload[6:10]),
			Dst:       dst,
		}
		for i := 0; i < nSlaves; i++ {
			bundle.Slaves = append(bundle.Slaves,
				binary.BigEndian.Uint16(payload[20+2*i:22+2*i]))
		}
		return bundle, nil
	case TypeSetVLANVID:
		if err := expect(2); err != nil {
			return nil, err
		}
		return SetVLANVID{VID: binary.BigEndian.Uint16(payload)}, nil
	case TypeSetVLANPCP:
		if err := expect(1); err != nil {
			return nil, err
		}
		return SetVLANPCP{PCP: payload[0]}, nil
	case TypeStripVLAN:
		if err := expect(0); err != nil {
			return nil, err
		}
		return StripVLAN{}, nil
	case TypeSetEthSrc:
		if err := expect(6); err != nil {
			return nil, err
		}
		return SetEthSrc{MAC: net.HardwareAddr(append([]byte(nil), payload...))}, nil
	case TypeSetEthDst:
		if err := expect(6); err != nil {
			return nil, err
		}
		return SetEthDst{MAC: net.HardwareAddr(append([]byte(nil), payload...))}, nil
	case TypeSetIPv4Src:
		if err := expect(4); err != nil {
			return nil, err
		}
		return SetIPv4Src{IP: net.IPv4(payload[0], payload[1], payload[2], payload[3]).To4()}, nil
	case TypeSetIPv4Dst:
		if err := expect(4); err != nil {
			return nil, err
		}
		return SetIPv4Dst{IP: net.IPv4(payload[0], payload[1], payload[2], payload[3]).To4()}, nil
	case TypeSetIPv4DSCP:
		if err := expect(1); err != nil {
			return nil, err
		}
		return SetIPv4DSCP{DSCP: payload[0]}, nil
	case TypeSetL4SrcPort:
		if err := expect(2); err != nil {
			return nil, err
		}
		return SetL4SrcPort{Port: binary.BigEndian.Uint16(payload)}, nil
	case TypeSetL4DstPort:
		if err := expect(2); err != nil {
			return nil, err
		}
		return SetL4DstPort{Port: binary.BigEndian.Uint16(payload)}, nil
	case TypeRegMove:
		if err := expect(16); err != nil {
			return nil, err
		}
		src, err := parseSubfield(payload[0:8])
		if err != nil {
			return nil, err
		}
		dst, err := parseSubfield(payload[8:16])
		if err != nil {
			return nil, err
		}
		return RegMove{Src: src, Dst: dst}, nil
	case TypeRegLoad:
		if err := expect(16); err != nil {
			return nil, err
		}
		dst, err := parseSubfield(payload[0:8])
		if err != nil {
			return nil, err
		}
		return RegLoad{Dst: dst, Value: binary.BigEndian.Uint64(payload[8:16])}, nil
	case TypeDecTTL:
		if err := expect(0); err != nil {
			return nil, err
		}
		return DecTTL{}, nil
	case TypeSetTunnel:
		if err := expect(8); err != nil {
			return nil, err
		}
		return SetTunnel{ID: binary.BigEndian.Uint64(payload), Compat: compat}, nil
	case TypeSetQueue:
		if err := expect(4); err != nil {
			return nil, err
		}
		return SetQueue{Queue: binary.BigEndian.Uint32(payload)}, nil
	case TypePopQueue:
		if err := expect(0); err != nil {
			return nil, err
		}
		return PopQueue{}, nil
	case TypeFinTimeout:
		if err := expect(4); err != nil {
			return nil, err
		}
		return FinTimeout{
			IdleTimeout: binary.BigEndian.Uint16(payload[0:2]),
			HardTimeout: binary.BigEndian.Uint16(payload[2:4]),
		}, nil
	case TypeResubmit:
		if err := expect(3); err != nil {
			return nil, err
		}
		return Resubmit{
			InPort:  binary.BigEndian.Uint16(payload[0:2]),
			TableID: payload[2],
			Compat:  compat,
		}, nil
	case TypeLearn:
		if len(payload) < 22 {
			return nil, ErrBadLen
		}
		return Learn{
			IdleTimeout:    binary.BigEndian.Uint16(payload[0:2]),
			HardTimeout:    binary.BigEndian.Uint16(payload[2:4]),
			Priority:       binary.BigEndian.Uint16(payload[4:6]),
			Flags:          binary.BigEndian.Uint16(payload[6:8]),
			Cookie:         binary.BigEndian.Uint64(payload[8:16]),
			TableID:        payload[16],
			FinIdleTimeout: binary.BigEndian.Uint16(payload[18:20]),
			FinHardTimeout: binary.BigEndian.Uint16(payload[20:22]),
			Specs:          append([]byte(nil), payload[22:]...),
		}, nil
	case TypeMultipath:
		if err := expect(20); err != nil {
			return nil, err
		}
		dst, err := parseSubfield(payload[12:20])
		if err != nil {
			return nil, err
		}
		return Multipath{
			Fields:    binary.BigEndian.Uint16(payload[0:2]),
			Basis:     binary.BigEndian.Uint16(payload[2:4]),
			Algorithm: binary.BigEndian.Uint16(payload[4:6]),
			MaxLink:   binary.BigEndian.Uint16(payload[6:8]),
			Arg:       binary.BigEndian.Uint32(payload[8:12]),
			Dst:       dst,
		}, nil
	case TypeAutopath:
		if err := expect(12); err != nil {
			return nil, err
		}
		dst, err := parseSubfield(payload[4:12])
		if err != nil {
			return nil, err
		}
		return Autopath{
			Port: binary.BigEndian.Uint32(payload[0:4]),
			Dst:  dst,
		}, nil
	case TypeNote:
		if len(payload) < 2 {
			return nil, ErrBadLen
		}
		n := int(binary.BigEndian.Uint16(payload[0:2]))
		if n != len(payload)-2 {
			return nil, ErrBadLen
		}
		return Note{Data: append([]byte(nil), payload[2:]...)}, nil
	case TypeExit:
		if err := expect(0); err != nil {
			return nil, err
		}
		return Exit{}, nil
	default:
		return nil, ErrBadType
	}
}

// Actions parses the internal stream up to the END sentinel and returns the
// records preceding it. An empty buffer is an empty stream. Any malformation
// is ErrBadLen or ErrBadType, or ErrBadArgument for a sub-field whose NXM
// header names no known field; the stream is never partially returned.
func (r *Buffer) Actions() ([]Action, error) {
	if len(r.data) == 0 {
		return nil, nil
	}

	var actions []Action
	off := 0
	for {
		if len(r.data)-off < headerLen {
			return nil, ErrBadLen
		}
		t := Type(binary.BigEndian.Uint16(r.data[off : off+2]))
		compat := Compat(binary.BigEndian.Uint16(r.data[off+2 : off+4]))
		recordLen := int(binary.BigEndian.Uint16(r.data[off+4 : off+6]))
		if recordLen < headerLen || off+recordLen > len(r.data) {
			return nil, ErrBadLen
		}

		if t == TypeEnd {
			if recordLen != headerLen || off+recordLen != len(r.data) {
				return nil, ErrBadLen
			}
			return actions, nil
		}

		a, err := parseAction(t, compat, r.data[off+headerLen:off+recordLen])
		if err != nil {
			return nil, err
		}
		actions = append(actions, a)

		off += recordLen
		if rem := off % AlignTo; rem > 0 {
			off += AlignTo - rem
		}
	}
}
