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
	"fmt"
	"strings"
)

// PACKET_IN reasons, as carried by the controller action.
const (
	ReasonNoMatch    uint8 = 0
	ReasonAction     uint8 = 1
	ReasonInvalidTTL uint8 = 2
)

func reasonString(v uint8) string {
	switch v {
	case ReasonNoMatch:
		return "no_match"
	case ReasonAction:
		return "action"
	case ReasonInvalidTTL:
		return "invalid_ttl"
	default:
		return fmt.Sprintf("%d", v)
	}
}

// FormatPort renders a port number, using the well-known name for reserved
// ports.
func FormatPort(port uint16) string {
	switch port {
	case PortInPort:
		return "IN_PORT"
	case PortTable:
		return "TABLE"
	case PortNormal:
		return "NORMAL"
	case PortFlood:
		return "FLOOD"
	case PortAll:
		return "ALL"
	case PortController:
		return "CONTROLLER"
	case PortLocal:
		return "LOCAL"
	case PortNone:
		return "NONE"
	default:
		return fmt.Sprintf("%d", port)
	}
}

func hashFieldsString(v uint16) string {
	switch v {
	case HashFieldsEthSrc:
		return "eth_src"
	case HashFieldsSymmetricL4:
		return "symmetric_l4"
	default:
		return fmt.Sprintf("%d", v)
	}
}

func multipathAlgorithmString(v uint16) string {
	switch v {
	case MultipathModuloN:
		return "modulo_n"
	case MultipathHashThreshold:
		return "hash_threshold"
	case MultipathHRW:
		return "hrw"
	case MultipathIterHash:
		return "iter_hash"
	default:
		return fmt.Sprintf("%d", v)
	}
}

func bundleAlgorithmString(v uint16) string {
	switch v {
	case BundleActiveBackup:
		return "active_backup"
	case BundleHRW:
		return "hrw"
	default:
		return fmt.Sprintf("%d", v)
	}
}

func formatMAC(mac []byte) string {
	if len(mac) < 6 {
		mac = make([]byte, 6)
	}
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		mac[0], mac[1], mac[2], mac[3], mac[4], mac[5])
}

func formatController(v Controller, sb *strings.Builder) {
	if v.Reason == ReasonAction && v.ID == 0 {
		fmt.Fprintf(sb, "CONTROLLER:%d", v.MaxLen)
		return
	}

	var parts []string
	if v.Reason != ReasonAction {
		parts = append(parts, "reason="+reasonString(v.Reason))
	}
	if v.MaxLen != 0xffff {
		parts = append(parts, fmt.Sprintf("max_len=%d", v.MaxLen))
	}
	if v.ID != 0 {
		parts = append(parts, fmt.Sprintf("id=%d", v.ID))
	}
	sb.WriteString("controller(" + strings.Join(parts, ",") + ")")
}

func formatBundle(v Bundle, sb *strings.Builder) {
	if v.Dst.Field != nil {
		sb.WriteString("bundle_load(")
	} else {
		sb.WriteString("bundle(")
	}

	fmt.Fprintf(sb, "%s,%d,%s,", hashFieldsString(v.Fields), v.Basis,
		bundleAlgorithmString(v.Algorithm))
	if v.SlaveType == NXMOfInPort {
		sb.WriteString("ofport,")
	} else {
		fmt.Fprintf(sb, "%#x,", v.SlaveType)
	}
	if v.Dst.Field != nil {
		sb.WriteString(v.Dst.String() + ",")
	}

	sb.WriteString("slaves:")
	for i, slave := range v.Slaves {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(sb, "%d", slave)
	}
	sb.WriteByte(')')
}

func formatResubmit(v Resubmit, sb *strings.Builder) {
	if v.InPort != PortInPort && v.TableID == 0xff {
		fmt.Fprintf(sb, "resubmit:%d", v.InPort)
		return
	}

	sb.WriteString("resubmit(")
	if v.InPort != PortInPort {
		sb.WriteString(FormatPort(v.InPort))
	}
	sb.WriteByte(',')
	if v.TableID != 0xff {
		fmt.Fprintf(sb, "%d", v.TableID)
	}
	sb.WriteByte(')')
}

func formatFinTimeout(v FinTimeout, sb *strings.Builder) {
	var parts []string
	if v.IdleTimeout != 0 {
		parts = append(parts, fmt.Sprintf("idle_timeout=%d", v.IdleTimeout))
	}
	if v.HardTimeout != 0 {
		parts = append(parts, fmt.Sprintf("hard_timeout=%d", v.HardTimeout))
	}
	sb.WriteString("fin_timeout(" + strings.Join(parts, ",") + ")")
}

func formatNote(v Note, sb *strings.Builder) {
	sb.WriteString("note:")
	for i, b := range v.Data {
		if i > 0 {
			sb.WriteByte('.')
		}
		fmt.Fprintf(sb, "%02x", b)
	}
}

func formatAction(a Action, sb *strings.Builder) {
	switch v := a.(type) {
	case Output:
		if v.Port < PortMax {
			fmt.Fprintf(sb, "output:%d", v.Port)
		} else {
			sb.WriteString(FormatPort(v.Port))
			if v.Port == PortController {
				fmt.Fprintf(sb, ":%d", v.MaxLen)
			}
		}
	case Controller:
		formatController(v, sb)
	case Enqueue:
		fmt.Fprintf(sb, "enqueue:%sq%d", FormatPort(v.Port), v.Queue)
	case OutputReg:
		sb.WriteString("output:" + v.Src.String())
	case Bundle:
		formatBundle(v, sb)
	case SetVLANVID:
		fmt.Fprintf(sb, "mod_vlan_vid:%d", v.VID)
	case SetVLANPCP:
		fmt.Fprintf(sb, "mod_vlan_pcp:%d", v.PCP)
	case StripVLAN:
		sb.WriteString("strip_vlan")
	case SetEthSrc:
		sb.WriteString("mod_dl_src:" + formatMAC(v.MAC))
	case SetEthDst:
		sb.WriteString("mod_dl_dst:" + formatMAC(v.MAC))
	case SetIPv4Src:
		sb.WriteString("mod_nw_src:" + v.IP.String())
	case SetIPv4Dst:
		sb.WriteString("mod_nw_dst:" + v.IP.String())
	case SetIPv4DSCP:
		fmt.Fprintf(sb, "mod_nw_tos:%d", v.DSCP)
	case SetL4SrcPort:
		fmt.Fprintf(sb, "mod_tp_src:%d", v.Port)
	case SetL4DstPort:
		fmt.Fprintf(sb, "mod_tp_dst:%d", v.Port)
	case RegMove:
		sb.WriteString("move:" + v.Src.String() + "->" + v.Dst.String())
	case RegLoad:
		fmt.Fprintf(sb, "load:%#x->%s", v.Value, v.Dst.String())
	case DecTTL:
		sb.WriteString("dec_ttl")
	case SetTunnel:
		suffix := ""
		if v.ID > 0xffffffff || v.Compat == CompatSetTunnel64 {
			suffix = "64"
		}
		fmt.Fprintf(sb, "set_tunnel%s:%#x", suffix, v.ID)
	case SetQueue:
		fmt.Fprintf(sb, "set_queue:%d", v.Queue)
	case PopQueue:
		sb.WriteString("pop_queue")
	case FinTimeout:
		formatFinTimeout(v, sb)
	case Resubmit:
		formatResubmit(v, sb)
	case Learn:
		v.format(sb)
	case Multipath:
		fmt.Fprintf(sb, "multipath(%s,%d,%s,%d,%d,%s)",
			hashFieldsString(v.Fields), v.Basis,
			multipathAlgorithmString(v.Algorithm),
			int(v.MaxLink)+1, v.Arg, v.Dst.String())
	case Autopath:
		fmt.Fprintf(sb, "autopath(%d,%s)", v.Port, v.Dst.String())
	case Note:
		formatNote(v, sb)
	case Exit:
		sb.WriteString("exit")
	}
}

// Format appends the canonical human-readable rendering of the stream to sb:
// "actions=" followed by "drop" for an empty stream or a comma-separated
// list of per-record forms. The rendering is stable but not parseable back.
func Format(b *Buffer, sb *strings.Builder) error {
	actions, err := b.Actions()
	if err != nil {
		return err
	}

	sb.WriteString("actions=")
	if len(actions) == 0 {
		sb.WriteString("drop")
		return nil
	}

	for i, a := range actions {
		if i > 0 {
			sb.WriteByte(',')
		}
		formatAction(a, sb)
	}

	return nil
}
