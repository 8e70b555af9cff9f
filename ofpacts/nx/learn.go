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

// NXAST_LEARN: {header, idle_timeout, hard_timeout, priority, cookie,
// flags, table_id, pad, fin_idle_timeout, fin_hard_timeout, specs...}. The
// flow_mod spec list is kept verbatim, trailing padding included, so the
// action re-encodes byte-identically.
func decodeLearn(rec []byte, out *ofpacts.Buffer) error {
	if rec[27] != 0 {
		return ofpacts.ErrBadArgument
	}

	learn := ofpacts.Learn{
		IdleTimeout:    binary.BigEndian.Uint16(rec[10:12]),
		HardTimeout:    binary.BigEndian.Uint16(rec[12:14]),
		Priority:       binary.BigEndian.Uint16(rec[14:16]),
		Cookie:         binary.BigEndian.Uint64(rec[16:24]),
		Flags:          binary.BigEndian.Uint16(rec[24:26]),
		TableID:        rec[26],
		FinIdleTimeout: binary.BigEndian.Uint16(rec[28:30]),
		FinHardTimeout: binary.BigEndian.Uint16(rec[30:32]),
		Specs:          append([]byte(nil), rec[learnOffset:]...),
	}
	if err := learn.Check(nil); err != nil {
		return err
	}

	out.Append(learn)
	return nil
}

func encodeLearn(v ofpacts.Learn, out *ofpacts.Buffer) {
	start := out.Len()

	rec := make([]byte, learnOffset)
	putHeader(rec, NXAST_LEARN)
	binary.BigEndian.PutUint16(rec[10:12], v.IdleTimeout)
	binary.BigEndian.PutUint16(rec[12:14], v.HardTimeout)
	binary.BigEndian.PutUint16(rec[14:16], v.Priority)
	binary.BigEndian.PutUint64(rec[16:24], v.Cookie)
	binary.BigEndian.PutUint16(rec[24:26], v.Flags)
	rec[26] = v.TableID
	binary.BigEndian.PutUint16(rec[28:30], v.FinIdleTimeout)
	binary.BigEndian.PutUint16(rec[30:32], v.FinHardTimeout)
	out.Put(rec)
	out.Put(v.Specs)

	if rem := (out.Len() - start) % 8; rem > 0 {
		out.PutZeros(8 - rem)
	}
	out.SetUint16(start+2, uint16(out.Len()-start))
}
