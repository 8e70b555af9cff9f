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
	"github.com/fraant/openvswitch/ofpacts"
)

// PortFromWire translates a 32-bit OpenFlow 1.1 port number to the internal
// 16-bit representation. Values between the regular range and the shifted
// reserved range have no 16-bit counterpart.
func PortFromWire(port uint32) (uint16, error) {
	switch {
	case port < uint32(ofpacts.PortMax):
		return uint16(port), nil
	case port >= portOffset+uint32(ofpacts.PortMax):
		return uint16(port - portOffset), nil
	default:
		ofpacts.Diagf("port %d is outside the supported range 0 through %d or %#x through %#x",
			port, ofpacts.PortMax-1, portOffset+uint32(ofpacts.PortMax), uint32(0xffffffff))
		return 0, ofpacts.ErrBadOutPort
	}
}

// PortToWire translates an internal 16-bit port number to the 32-bit
// OpenFlow 1.1 encoding.
func PortToWire(port uint16) uint32 {
	if port < ofpacts.PortMax {
		return uint32(port)
	}
	return uint32(port) + portOffset
}
