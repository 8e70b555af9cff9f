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
	"sync"

	"github.com/op/go-logging"
	"golang.org/x/time/rate"
)

var logger = logging.MustGetLogger("ofpacts")

// DiagnosticSink receives rate-limited diagnostic messages about malformed
// input. It never affects what the codec returns.
type DiagnosticSink func(format string, args ...interface{})

var (
	diagMutex   sync.RWMutex
	diagSink    DiagnosticSink = logger.Warningf
	diagLimiter                = rate.NewLimiter(rate.Limit(1), 5)
)

// SetDiagnosticSink replaces the destination for diagnostic messages. A nil
// sink restores the default module logger.
func SetDiagnosticSink(sink DiagnosticSink) {
	diagMutex.Lock()
	defer diagMutex.Unlock()

	if sink == nil {
		sink = logger.Warningf
	}
	diagSink = sink
}

// Diagf emits a diagnostic message about malformed input through the
// rate-limited sink.
func Diagf(format string, args ...interface{}) {
	if !diagLimiter.Allow() {
		return
	}

	diagMutex.RLock()
	sink := diagSink
	diagMutex.RUnlock()

	sink(format, args...)
}
