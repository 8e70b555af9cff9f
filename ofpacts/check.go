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

// Flow is the match context the validator checks sub-field prerequisites
// against.
type Flow struct {
	InPort  uint16
	DLType  uint16
	NWProto uint8
	VLANTCI uint16
}

const (
	ethTypeIPv4 = 0x0800
	ethTypeARP  = 0x0806
	ethTypeIPv6 = 0x86dd

	ipProtoICMP = 1
	ipProtoTCP  = 6
	ipProtoUDP  = 17
)

func (r *Flow) prereqsOK(p prereq) bool {
	switch p {
	case prereqNone:
		return true
	case prereqARP:
		return r.DLType == ethTypeARP
	case prereqIP:
		return r.DLType == ethTypeIPv4 || r.DLType == ethTypeIPv6
	case prereqIPv4:
		return r.DLType == ethTypeIPv4
	case prereqTCP:
		return (r.DLType == ethTypeIPv4 || r.DLType == ethTypeIPv6) && r.NWProto == ipProtoTCP
	case prereqUDP:
		return (r.DLType == ethTypeIPv4 || r.DLType == ethTypeIPv6) && r.NWProto == ipProtoUDP
	case prereqICMP:
		return r.DLType == ethTypeIPv4 && r.NWProto == ipProtoICMP
	default:
		return false
	}
}

// Multipath hash fields and link-selection algorithms.
const (
	HashFieldsEthSrc      uint16 = 0
	HashFieldsSymmetricL4 uint16 = 1

	MultipathModuloN       uint16 = 0
	MultipathHashThreshold uint16 = 1
	MultipathHRW           uint16 = 2
	MultipathIterHash      uint16 = 3

	BundleActiveBackup uint16 = 0
	BundleHRW          uint16 = 1
)

// Check verifies a move's sub-fields. The widths of source and destination
// must already agree; the wire codec guarantees that.
func (r RegMove) Check(flow *Flow) error {
	if r.Src.NBits != r.Dst.NBits {
		return ErrBadArgument
	}
	if err := r.Src.CheckSrc(flow); err != nil {
		return err
	}
	return r.Dst.CheckDst(flow)
}

// Check verifies a load's destination and that the value fits in it.
func (r RegLoad) Check(flow *Flow) error {
	if err := r.Dst.CheckDst(flow); err != nil {
		return err
	}
	if r.Dst.NBits < 64 && r.Value>>r.Dst.NBits != 0 {
		return ErrBadArgument
	}
	return nil
}

// Check verifies the hash-field and algorithm enumerations, that the link
// range fits in the destination, and the destination itself.
func (r Multipath) Check(flow *Flow) error {
	if r.Fields != HashFieldsEthSrc && r.Fields != HashFieldsSymmetricL4 {
		return ErrBadArgument
	}
	if r.Algorithm > MultipathIterHash {
		return ErrBadArgument
	}
	if err := r.Dst.CheckDst(flow); err != nil {
		return err
	}
	if r.Dst.NBits < 16 && int(r.MaxLink)+1 > 1<<r.Dst.NBits {
		return ErrBadArgument
	}
	return nil
}

// Check verifies that the destination can hold a port number.
func (r Autopath) Check(flow *Flow) error {
	if err := r.Dst.CheckDst(flow); err != nil {
		return err
	}
	if r.Dst.NBits < 16 {
		return ErrBadArgument
	}
	return nil
}

// Check verifies the bundle parameters and every slave port against the
// port bound.
func (r Bundle) Check(flow *Flow, maxPorts int) error {
	if r.SlaveType != NXMOfInPort {
		return ErrBadArgument
	}
	if r.Algorithm != BundleActiveBackup && r.Algorithm != BundleHRW {
		return ErrBadArgument
	}
	if r.Fields != HashFieldsEthSrc && r.Fields != HashFieldsSymmetricL4 {
		return ErrBadArgument
	}
	if r.Dst.Field != nil {
		if r.Dst.NBits < 16 {
			return ErrBadArgument
		}
		if err := r.Dst.CheckDst(flow); err != nil {
			return err
		}
	}
	for _, slave := range r.Slaves {
		if err := CheckOutputPort(slave, maxPorts); err != nil {
			return err
		}
	}
	return nil
}

func checkAction(a Action, flow *Flow, maxPorts int) error {
	switch v := a.(type) {
	case Output:
		return CheckOutputPort(v.Port, maxPorts)
	case Enqueue:
		if int(v.Port) >= maxPorts && v.Port != PortInPort && v.Port != PortLocal {
			return ErrBadOutPort
		}
		return nil
	case OutputReg:
		return v.Src.CheckSrc(flow)
	case Bundle:
		return v.Check(flow, maxPorts)
	case RegMove:
		return v.Check(flow)
	case RegLoad:
		return v.Check(flow)
	case Learn:
		return v.Check(flow)
	case Multipath:
		return v.Check(flow)
	case Autopath:
		return v.Check(flow)
	default:
		// Everything else was fully constrained by its wire decode.
		return nil
	}
}

// Check validates an internal stream against a flow context and a port
// count bound. The first failure is returned; later records are not
// examined.
func Check(b *Buffer, flow *Flow, maxPorts int) error {
	actions, err := b.Actions()
	if err != nil {
		return err
	}

	for _, a := range actions {
		if err := checkAction(a, flow, maxPorts); err != nil {
			return err
		}
	}

	return nil
}
