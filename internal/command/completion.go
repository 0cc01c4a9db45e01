// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/aclctl/internal/meta"
)

const bashCompletionScript = `# bash completion for aclctl
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_aclctl()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "list get ui serve completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local conn="--host -H --retries"
    local common="--color -c --filter -f --local --output -o --relative -r --sort -s --titles -t --schema"

    case "$cmd" in
        list)
            local opts="$conn $common --interactive -i"
            ;;
        get)
            local opts="$conn $common"
            ;;
        ui)
            local opts="$conn --local --relative -r --route"
            if [[ "$cur" != -* ]]; then
                COMPREPLY=( $(compgen -W "/dashboard /cache/home /cache/detail/" -- "$cur") )
                return 0
            fi
            ;;
        serve)
            local opts="--addr -a --context --refresh"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json yaml raw" -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _aclctl aclctl
`

const zshCompletionScript = `#compdef aclctl

_aclctl() {
  local -a cmds
  cmds=(
    'list:list the caches on the server'
    'get:show a single cache'
    'ui:browse the caches in an interactive console'
    'serve:run a demo admin server'
    'completion:generate shell completion script'
  )

  local -a conn
  conn=(
  '(-H --host)'{-H,--host}'[admin server base URL]:url'
  '--retries[retries per request]:retries'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[enable colored text]'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '--local[local time zone]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml raw)'
  '(-r --relative)'{-r,--relative}'[relative times]'
  '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--schema[dump schema]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'aclctl commands' cmds
    return
  fi

  case $words[2] in
    list)
      _arguments -C $conn $common \
        '(-i --interactive)'{-i,--interactive}'[open the console]'
      ;;
    get)
      _arguments -C $conn $common '1:cache id'
      ;;
    ui)
      _arguments -C $conn \
        '--local[local time zone]' \
        '(-r --relative)'{-r,--relative}'[relative times]' \
        '--route[start route]:route' \
        '1::route:(/dashboard /cache/home)'
      ;;
    serve)
      _arguments -C \
        '(-a --addr)'{-a,--addr}'[listen address]:addr' \
        '--context[context path]:path' \
        '--refresh[refresh interval]:duration'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _aclctl aclctl
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	if shell == "" {
		// Try to detect from SHELL
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		fmt.Fprint(m.Out(), bashCompletionScript)
	case "zsh":
		fmt.Fprint(m.Out(), zshCompletionScript)
	default:
		fmt.Fprintln(m.Err(), "usage: aclctl completion [bash|zsh]")
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "aclctl completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
