package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docpub/internal/errors"
	"git.home.luguber.info/inful/docpub/internal/version"
)

var CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docpub.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `help:"Print version information and exit"`

	Build struct {
		Output         string `short:"o" help:"Output directory for the generated site"`
		ProjectVersion string `help:"Version label overriding config and CMake detection"`
	} `cmd:"" help:"Generate documentation without publishing"`

	Publish struct {
		Output         string `short:"o" help:"Output directory for the generated site"`
		ProjectVersion string `help:"Version label overriding config and CMake detection"`
		DryRun         bool   `help:"Stage the publish commit locally without pushing"`
	} `cmd:"" help:"Generate documentation and push it to the publish target"`

	Init struct {
		Force bool `help:"Overwrite existing configuration file"`
	} `cmd:"" help:"Initialize a new configuration file"`

	Watch struct {
		Output string `short:"o" help:"Output directory for the generated site"`
	} `cmd:"" help:"Rebuild on source changes and serve the site locally"`

	History struct {
		Limit  int  `short:"n" help:"Maximum number of runs to list" default:"20"`
		Failed bool `help:"Only list failed runs"`
		Prune  int  `help:"Retain only the N newest runs and delete the rest" default:"-1"`
	} `cmd:"" help:"List recorded pipeline runs"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("docpub"),
		kong.Description("Generate doxygen documentation and publish it to a git pages branch."),
		kong.Vars{"version": version.Version},
	)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	adapter := errors.NewCLIErrorAdapter(CLI.Verbose, slog.Default())

	var err error
	switch ctx.Command() {
	case "build":
		err = runBuild(CLI.Build.Output, CLI.Build.ProjectVersion)
	case "publish":
		err = runPublish(CLI.Publish.Output, CLI.Publish.ProjectVersion, CLI.Publish.DryRun)
	case "init":
		err = runInit(CLI.Config, CLI.Init.Force)
	case "watch":
		err = runWatch(CLI.Watch.Output)
	case "history":
		err = runHistory(CLI.History.Limit, CLI.History.Failed, CLI.History.Prune)
	}
	adapter.HandleError(err)
}
