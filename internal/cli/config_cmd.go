// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/codehelp/codehelp-tui/internal/config"
)

const configUsage = "codehelp config [show|get KEY|set KEY VALUE|path]"

func runConfig(env *Env, args Args) error {
	sub := "show"
	if len(args.Positional) > 0 {
		sub = strings.ToLower(args.Positional[0])
	}

	switch sub {
	case "show":
		return configShow(env, args)
	case "get":
		if len(args.Positional) < 2 {
			return ErrMissingArgument("key", "codehelp config get api.base_url")
		}
		return configGet(env, args, args.Positional[1])
	case "set":
		if len(args.Positional) < 3 {
			return ErrMissingArgument("key and value", "codehelp config set ui.theme light")
		}
		return configSet(env, args, args.Positional[1], strings.Join(args.Positional[2:], " "))
	case "path":
		if args.JSON {
			return OutputJSON(env.Stdout, "config path", map[string]string{"path": env.ConfigPath})
		}
		fmt.Fprintln(env.Stdout, env.ConfigPath)
		return nil
	default:
		return &ValidationError{
			Field:   "config subcommand",
			Value:   sub,
			Reason:  "must be show, get, set or path",
			Example: configUsage,
		}
	}
}

func configShow(env *Env, args Args) error {
	if args.Raw {
		fmt.Fprint(env.Stdout, env.Config.String())
		return nil
	}
	if args.JSON {
		values := make(map[string]interface{}, len(config.GetAllKeys()))
		for _, key := range config.GetAllKeys() {
			v, err := env.Config.Get(key)
			if err != nil {
				return configError(err)
			}
			values[key] = v
		}
		return OutputJSON(env.Stdout, "config show", values)
	}

	if !args.Quiet {
		fmt.Fprintln(env.Stdout, TitleStyle.Render("Configuration"))
		fmt.Fprintln(env.Stdout, DimStyle.Render(env.ConfigPath))
		fmt.Fprintln(env.Stdout, RenderSeparator())
	}
	for _, key := range config.GetAllKeys() {
		v, err := env.Config.Get(key)
		if err != nil {
			return configError(err)
		}
		fmt.Fprintf(env.Stdout, "%-20s %v\n", key, v)
	}
	return nil
}

func configGet(env *Env, args Args, key string) error {
	v, err := env.Config.Get(key)
	if err != nil {
		return configError(err)
	}
	if args.JSON {
		return OutputJSON(env.Stdout, "config get", map[string]interface{}{"key": key, "value": v})
	}
	fmt.Fprintln(env.Stdout, v)
	return nil
}

// configSet edits the file on disk rather than the effective config, so
// environment overrides are never written back.
func configSet(env *Env, args Args, key, value string) error {
	if env.ConfigPath == "" {
		return configError(fmt.Errorf("no configuration path"))
	}

	cfg := config.Default()
	if _, statErr := os.Stat(env.ConfigPath); statErr == nil {
		if err := config.LoadTOML(cfg, env.ConfigPath); err != nil {
			return configError(err)
		}
	}
	if err := cfg.Set(key, value); err != nil {
		return configError(err)
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return configError(err)
	}
	if err := config.SaveTOML(cfg, env.ConfigPath); err != nil {
		return configError(err)
	}

	if args.JSON {
		v, _ := cfg.Get(key)
		return OutputJSON(env.Stdout, "config set", map[string]interface{}{"key": key, "value": v})
	}
	if !args.Quiet {
		v, _ := cfg.Get(key)
		fmt.Fprintf(env.Stdout, "%s %s = %v\n", SuccessStyle.Render("[OK]"), key, v)
	}
	return nil
}
