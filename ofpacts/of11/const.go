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

// Package of11 translates between OpenFlow 1.1 wire actions and
// instructions and the internal action stream.
package of11

// ofp11_action_type. The version bumped the MAC-address and IP-address
// setters down by one and added the MPLS/VLAN tag operations.
const (
	OFPAT_OUTPUT       uint16 = 0
	OFPAT_SET_VLAN_VID uint16 = 1
	OFPAT_SET_VLAN_PCP uint16 = 2
	OFPAT_SET_DL_SRC   uint16 = 3
	OFPAT_SET_DL_DST   uint16 = 4
	OFPAT_SET_NW_SRC   uint16 = 5
	OFPAT_SET_NW_DST   uint16 = 6
	OFPAT_SET_NW_TOS   uint16 = 7
	OFPAT_SET_NW_ECN   uint16 = 8
	OFPAT_SET_TP_SRC   uint16 = 9
	OFPAT_SET_TP_DST   uint16 = 10
	OFPAT_COPY_TTL_OUT uint16 = 11
	OFPAT_COPY_TTL_IN  uint16 = 12
	OFPAT_PUSH_VLAN    uint16 = 17
	OFPAT_POP_VLAN     uint16 = 18
	OFPAT_SET_QUEUE    uint16 = 21
	OFPAT_EXPERIMENTER uint16 = 0xffff
)

// ofp11_instruction_type
const (
	OFPIT_GOTO_TABLE     uint16 = 1
	OFPIT_WRITE_METADATA uint16 = 2
	OFPIT_WRITE_ACTIONS  uint16 = 3
	OFPIT_APPLY_ACTIONS  uint16 = 4
	OFPIT_CLEAR_ACTIONS  uint16 = 5
	OFPIT_EXPERIMENTER   uint16 = 0xffff
)

// ofp11_port. Ports are 32 bits wide; the reserved ports sit at the top of
// the range, portOffset above their 16-bit counterparts.
const (
	OFPP_MAX uint32 = 0xffffff00

	portOffset uint32 = 0xffff0000
)

const (
	actionAlign      = 8
	instructionAlign = 8

	// Sizes of ofp11_instruction and ofp11_instruction_actions headers and
	// of ofp11_instruction_write_metadata.
	instructionLen   = 8
	writeMetadataLen = 24
)

const dscpMask = 0xfc
