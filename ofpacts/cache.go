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
	lru "github.com/hashicorp/golang-lru"
)

// DecodeCache memoizes wire-span to internal-stream conversions. Controllers
// tend to install many flows that share the same action list, so the decoded
// stream is worth keeping. Entries are copies; the cache never aliases a
// caller's buffer.
type DecodeCache struct {
	cache *lru.Cache
}

func NewDecodeCache(size int) (*DecodeCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}

	return &DecodeCache{cache: cache}, nil
}

// Get copies a previously decoded stream for the wire span into out.
func (r *DecodeCache) Get(wire []byte, out *Buffer) bool {
	v, ok := r.cache.Get(string(wire))
	if !ok {
		return false
	}

	out.Clear()
	out.Put(v.([]byte))
	return true
}

// Put stores the decoded stream for the wire span.
func (r *DecodeCache) Put(wire []byte, decoded *Buffer) {
	v := append([]byte(nil), decoded.Bytes()...)
	r.cache.Add(string(wire), v)
}
