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

// Package of10 translates between OpenFlow 1.0 wire actions and the
// internal action stream.
package of10

// ofp_action_type
const (
	OFPAT_OUTPUT       uint16 = 0
	OFPAT_SET_VLAN_VID uint16 = 1
	OFPAT_SET_VLAN_PCP uint16 = 2
	OFPAT_STRIP_VLAN   uint16 = 3
	OFPAT_SET_DL_SRC   uint16 = 4
	OFPAT_SET_DL_DST   uint16 = 5
	OFPAT_SET_NW_SRC   uint16 = 6
	OFPAT_SET_NW_DST   uint16 = 7
	OFPAT_SET_NW_TOS   uint16 = 8
	OFPAT_SET_TP_SRC   uint16 = 9
	OFPAT_SET_TP_DST   uint16 = 10
	OFPAT_ENQUEUE      uint16 = 11
	OFPAT_VENDOR       uint16 = 0xffff
)

// ofp_port
const (
	OFPP_MAX        uint16 = 0xff00
	OFPP_IN_PORT    uint16 = 0xfff8
	OFPP_TABLE      uint16 = 0xfff9
	OFPP_NORMAL     uint16 = 0xfffa
	OFPP_FLOOD      uint16 = 0xfffb
	OFPP_ALL        uint16 = 0xfffc
	OFPP_CONTROLLER uint16 = 0xfffd
	OFPP_LOCAL      uint16 = 0xfffe
	OFPP_NONE       uint16 = 0xffff
)

// actionAlign is the wire alignment of OpenFlow actions; every action
// length is a multiple of it.
const actionAlign = 8

// The 6-bit DSCP portion of the IPv4 TOS byte.
const dscpMask = 0xfc
