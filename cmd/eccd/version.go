package main

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/peterbourgon/ff/v4"
)

func versionCmd(root *rootConfig) {
	cmd := &ff.Command{
		Name:      "version",
		Usage:     appName + " version",
		ShortHelp: "print version and build information",
		Exec: func(ctx context.Context, args []string) error {
			fmt.Printf("%s %s %s/%s %s\n", appName, buildVersion(), runtime.GOOS, runtime.GOARCH, runtime.Version())
			return nil
		},
	}
	root.command.Subcommands = append(root.command.Subcommands, cmd)
}

// buildVersion 未通过 ldflags 注入时取模块版本
func buildVersion() string {
	if version != "dev" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return version
	}
	return info.Main.Version
}
