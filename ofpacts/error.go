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
	"errors"
)

// The decoder, validator and encoders report failures from this closed set.
// The first error aborts the conversion and the output buffer is cleared.
var (
	ErrBadLen      = errors.New("inconsistent, misaligned, or overrunning length field")
	ErrBadType     = errors.New("unknown or obsolete action type")
	ErrBadVendor   = errors.New("unknown vendor id in vendor action")
	ErrBadArgument = errors.New("bad action argument")
	ErrBadOutPort  = errors.New("invalid output port")

	ErrUnknownInstruction     = errors.New("unknown instruction type")
	ErrUnsupportedInstruction = errors.New("unsupported instruction type")
	ErrDuplicateInstruction   = errors.New("duplicate instruction type")
	ErrBadExperimenter        = errors.New("unknown experimenter id in instruction")

	// ErrUnsupportedAction is returned by an encoder asked to emit an
	// action the target protocol version cannot express.
	ErrUnsupportedAction = errors.New("action not expressible in this protocol version")
)
