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

// ofpactl decodes hex-encoded OpenFlow action spans or instruction blocks
// and prints their canonical text rendering, the way ovs-ofctl shows flow
// actions. Spans are read from the command line or, when no arguments are
// given, one per line from standard input.
package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fraant/openvswitch/ofpacts"
	"github.com/fraant/openvswitch/ofpacts/of10"
	"github.com/fraant/openvswitch/ofpacts/of11"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	programName    = "ofpactl"
	programVersion = "0.1.0"

	decodeCacheSize = 512
)

var (
	logger      = logging.MustGetLogger("main")
	showVersion = flag.Bool("version", false, "Show program version and exit")
	configFile  = flag.String("config", "", "absolute path of an optional configuration file")
	protocol    = flag.String("protocol", "", "wire dialect: of10 actions or of11 instructions (default of10)")
	check       = flag.Bool("check", false, "validate decoded actions against the port bound")
	maxPorts    = flag.Int("max-ports", 0, "port count bound used by -check (default 255)")
)

type decoder struct {
	protocol string
	maxPorts int
	check    bool
	cache    *ofpacts.DecodeCache
}

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Printf("Version: %v\n", programVersion)
		os.Exit(0)
	}

	initConfig()
	initLog(getLogLevel(viper.GetString("default.log_level")))

	cache, err := ofpacts.NewDecodeCache(decodeCacheSize)
	if err != nil {
		logger.Fatalf("failed to create the decode cache: %v", err)
	}
	d := &decoder{
		protocol: viper.GetString("default.protocol"),
		maxPorts: viper.GetInt("default.max_ports"),
		check:    *check,
		cache:    cache,
	}
	if *protocol != "" {
		d.protocol = *protocol
	}
	if *maxPorts != 0 {
		d.maxPorts = *maxPorts
	}
	if d.protocol != "of10" && d.protocol != "of11" {
		logger.Fatalf("unknown protocol %q", d.protocol)
	}

	if flag.NArg() > 0 {
		for _, arg := range flag.Args() {
			d.run(arg)
		}
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	initSignalHandler(cancel)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			d.run(line)
		}
	}
}

func (r *decoder) run(span string) {
	text, err := r.decode(span)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", span, err)
		return
	}
	fmt.Println(text)
}

func (r *decoder) decode(span string) (string, error) {
	wire, err := hex.DecodeString(strings.Map(dropSpace, span))
	if err != nil {
		return "", errors.Wrap(err, "invalid hex span")
	}

	buf := new(ofpacts.Buffer)
	if !r.cache.Get(wire, buf) {
		switch r.protocol {
		case "of10":
			err = of10.DecodeActions(wire, len(wire), buf)
		case "of11":
			err = of11.DecodeInstructions(wire, len(wire), buf)
		}
		if err != nil {
			return "", errors.Wrap(err, "failed to decode actions")
		}
		r.cache.Put(wire, buf)
	}

	if r.check {
		if err := ofpacts.Check(buf, &ofpacts.Flow{}, r.maxPorts); err != nil {
			return "", errors.Wrap(err, "invalid actions")
		}
	}

	var sb strings.Builder
	if err := ofpacts.Format(buf, &sb); err != nil {
		return "", errors.Wrap(err, "failed to format actions")
	}
	return sb.String(), nil
}

func dropSpace(r rune) rune {
	if r == ' ' || r == '\t' {
		return -1
	}
	return r
}

func initConfig() {
	viper.SetDefault("default.log_level", "info")
	viper.SetDefault("default.protocol", "of10")
	viper.SetDefault("default.max_ports", int(ofpacts.PortMax>>8))

	if *configFile == "" {
		return
	}
	viper.SetConfigFile(*configFile)
	if err := viper.ReadInConfig(); err != nil {
		logger.Fatalf("failed to read the config file: %v", err)
	}
}

func initSignalHandler(cancel context.CancelFunc) {
	go func() {
		c := make(chan os.Signal, 5)
		signal.Notify(c, syscall.SIGTERM, syscall.SIGINT)
		<-c
		cancel()
	}()
}

func getLogLevel(level string) logging.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logging.DEBUG
	case "info":
		return logging.INFO
	case "notice":
		return logging.NOTICE
	case "warning":
		return logging.WARNING
	case "error":
		return logging.ERROR
	case "critical":
		return logging.CRITICAL
	default:
		logger.Warningf("invalid log level %v, defaulting to info", level)
		return logging.INFO
	}
}

func initLog(level logging.Level) {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	formatted := logging.NewBackendFormatter(backend,
		logging.MustStringFormatter(`%{level}: %{shortpkg}.%{shortfunc}: %{message}`))

	leveled := logging.AddModuleLevel(formatted)
	// Set log level for all modules
	leveled.SetLevel(level, "")
	logging.SetBackend(leveled)
}
