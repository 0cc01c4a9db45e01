// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"strings"

	"github.com/apex/log"

	"github.com/staranto/aclctl/internal/config"
)

// ExpandArgSets splices a named argument set from the config file into args.
// A "@name" argument, wherever it appears, selects <command>.name; without
// one, <command>.defaults is used. The set's entries go right after the
// command and may each hold several whitespace-separated arguments. All
// explicit arguments follow them, so they win.
func ExpandArgSets(args []string) []string {
	if len(args) < 2 || strings.HasPrefix(args[1], "-") {
		return args
	}

	// Short-circuit for --help/-h. If help is requested, just keep the
	// preamble and add --help flag.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return []string{args[0], args[1], "--help"}
		}
	}

	set := "defaults"
	named := false
	explicit := make([]string, 0, len(args)-2)
	for _, a := range args[2:] {
		if !named && strings.HasPrefix(a, "@") && len(a) > 1 {
			set, named = a[1:], true
			continue
		}
		explicit = append(explicit, a)
	}

	setArgs, err := config.GetStringSlice(args[1] + "." + set)
	if err != nil {
		log.Debugf("no arg set %s.%s", args[1], set)
	}

	var parts []string
	for _, arg := range setArgs {
		parts = append(parts, strings.Fields(arg)...)
	}
	out := make([]string, 0, len(args)+len(parts))
	out = append(out, args[:2]...)
	out = append(out, parts...)
	out = append(out, explicit...)

	log.Debugf("set=%s, args=%v", set, out)
	return out
}
