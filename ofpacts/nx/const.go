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

// Package nx implements the Nicira vendor-extension action family carried
// inside the OpenFlow vendor/experimenter action.
package nx

// NX_VENDOR_ID identifies Nicira extension actions.
const NX_VENDOR_ID uint32 = 0x00002320

// NXAST action subtypes.
const (
	NXAST_SNAT__OBSOLETE             uint16 = 0
	NXAST_RESUBMIT                   uint16 = 1
	NXAST_SET_TUNNEL                 uint16 = 2
	NXAST_DROP_SPOOFED_ARP__OBSOLETE uint16 = 3
	NXAST_SET_QUEUE                  uint16 = 4
	NXAST_POP_QUEUE                  uint16 = 5
	NXAST_REG_MOVE                   uint16 = 6
	NXAST_REG_LOAD                   uint16 = 7
	NXAST_NOTE                       uint16 = 8
	NXAST_SET_TUNNEL64               uint16 = 9
	NXAST_MULTIPATH                  uint16 = 10
	NXAST_AUTOPATH                   uint16 = 11
	NXAST_BUNDLE                     uint16 = 12
	NXAST_BUNDLE_LOAD                uint16 = 13
	NXAST_RESUBMIT_TABLE             uint16 = 14
	NXAST_OUTPUT_REG                 uint16 = 15
	NXAST_LEARN                      uint16 = 16
	NXAST_EXIT                       uint16 = 17
	NXAST_DEC_TTL                    uint16 = 18
	NXAST_FIN_TIMEOUT                uint16 = 19
	NXAST_CONTROLLER                 uint16 = 20
)

// nxActionHeaderLen is the size of the generic vendor action header
// {type, len, vendor, subtype, pad[6]}; no vendor action is shorter.
const nxActionHeaderLen = 16

// noteOffset is where the note payload starts within NXAST_NOTE.
const noteOffset = 10

// learnOffset is where the flow_mod spec list starts within NXAST_LEARN.
const learnOffset = 32

// bundleOffset is where the slave list starts within NXAST_BUNDLE.
const bundleOffset = 32

// Wire sizes of the fixed part of each subtype, with the extensible flag.
var subtypes = map[uint16]struct {
	size       int
	extensible bool
}{
	NXAST_RESUBMIT:       {size: 16},
	NXAST_SET_TUNNEL:     {size: 16},
	NXAST_SET_QUEUE:      {size: 16},
	NXAST_POP_QUEUE:      {size: 16},
	NXAST_REG_MOVE:       {size: 24},
	NXAST_REG_LOAD:       {size: 24},
	NXAST_NOTE:           {size: 16, extensible: true},
	NXAST_SET_TUNNEL64:   {size: 24},
	NXAST_MULTIPATH:      {size: 32},
	NXAST_AUTOPATH:       {size: 24},
	NXAST_BUNDLE:         {size: 32, extensible: true},
	NXAST_BUNDLE_LOAD:    {size: 32, extensible: true},
	NXAST_RESUBMIT_TABLE: {size: 16},
	NXAST_OUTPUT_REG:     {size: 24},
	NXAST_LEARN:          {size: 32, extensible: true},
	NXAST_EXIT:           {size: 16},
	NXAST_DEC_TTL:        {size: 16},
	NXAST_FIN_TIMEOUT:    {size: 16},
	NXAST_CONTROLLER:     {size: 16},
}
