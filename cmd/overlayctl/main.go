/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"overlaykit/internal/config"
	"overlaykit/internal/crash"
	applog "overlaykit/internal/log"
	"overlaykit/internal/version"
)

// errUsage marks a bad command line; main exits with code 2 for it.
type errUsage struct{ msg string }

func (e errUsage) Error() string { return e.msg }

func usage(w io.Writer) {
	fmt.Fprintln(w, "overlayctl: render and inspect inspector overlays")
	fmt.Fprintf(w, "Version: %s\n", version.String())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  overlayctl version|-v|--version                  Show version")
	fmt.Fprintln(w, "  overlayctl render [flags] <frame.json> <out>       Render a frame to png, svg or pdf")
	fmt.Fprintln(w, "  overlayctl bounds <frame.json>                     Print the bounds of every shape")
	fmt.Fprintln(w, "  overlayctl trace <frame.json>                      Print the drawing calls of a frame")
	fmt.Fprintln(w, "  overlayctl protocol [flags] <log.jsonl> [query]    Show a recorded protocol log")
	fmt.Fprintln(w, "  overlayctl config [path]                           Show the effective configuration")
}

// osExit and closeLog are replaced in tests.
var (
	osExit   = os.Exit
	closeLog = applog.Close
)

// exit closes the log file, which deferred calls would miss, and exits.
func exit(code int) {
	if err := closeLog(); err != nil {
		fmt.Fprintln(os.Stderr, "close log:", err)
	}
	osExit(code)
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(cfg.LogOptions())
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config", slog.Any("err", cfgErr))
	}

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	code := 0
	func() {
		defer crash.Recover(crash.Options{Dir: cfg.Crash.Dir, Command: cmd, Details: map[string]string{"args": fmt.Sprint(os.Args[1:])}})
		code = run(context.Background(), cfg, os.Args[1:], os.Stdout)
	}()
	exit(code)
}

// run executes one command line and returns the process exit code.
func run(ctx context.Context, cfg config.AppConfig, args []string, stdout io.Writer) int {
	if len(args) == 0 {
		usage(stdout)
		return 0
	}
	ctx = applog.WithAttrs(ctx, slog.String("cmd", args[0]))
	l := applog.WithComponent("cli")
	l.DebugContext(ctx, "start", slog.Int("args", len(args)))

	var err error
	switch args[0] {
	case "version", "--version", "-v":
		fmt.Fprintln(stdout, "overlayctl", version.String())
		return 0
	case "help", "--help", "-h":
		usage(stdout)
		return 0
	case "render":
		err = cmdRender(ctx, cfg, args[1:], stdout)
	case "bounds":
		err = cmdBounds(ctx, args[1:], stdout)
	case "trace":
		err = cmdTrace(ctx, args[1:], stdout)
	case "protocol":
		err = cmdProtocol(ctx, cfg, args[1:], stdout)
	case "config":
		err = cmdConfig(cfg, args[1:], stdout)
	default:
		err = errUsage{msg: fmt.Sprintf("unknown command %q", args[0])}
	}
	if err == nil {
		return 0
	}
	if u, ok := err.(errUsage); ok {
		fmt.Fprintln(stdout, u.msg)
		usage(stdout)
		return 2
	}
	l.ErrorContext(ctx, "command failed", slog.Any("err", err))
	fmt.Fprintln(stdout, "Error:", err)
	return 1
}

func cmdConfig(cfg config.AppConfig, args []string, stdout io.Writer) error {
	if len(args) > 0 && args[0] == "path" {
		p, err := config.ConfigPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, p)
		return nil
	}
	out, err := cfg.YAML()
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}
