package cmd

import (
	"os"
	"path/filepath"

	"sablec/common"
	"sablec/depm"
	"sablec/report"

	"github.com/ComedicChimera/olive"
)

// Execute runs the main `sable` application.
func Execute() {
	// set up the argument parser and all its extended commands and arguments
	cli := olive.NewCLI("sable", "sable is a tool for managing Sable projects", true)
	logLvlArg := cli.AddSelectorArg("loglevel", "ll", "the compiler log level", false, []string{"silent", "error", "warn", "verbose"})
	logLvlArg.SetDefaultValue("verbose")

	checkCmd := cli.AddSubcommand("check", "analyze a module and report errors", true)
	checkCmd.AddPrimaryArg("module-path", "the path to the module to check", true)

	modCmd := cli.AddSubcommand("mod", "manage modules", true)
	modInitCmd := modCmd.AddSubcommand("init", "initialize a module", true)
	modInitCmd.AddPrimaryArg("module-name", "the name of the new module", true)

	cli.AddSubcommand("version", "print the Sable version", false)

	// run the argument parser
	result, err := olive.ParseArgs(cli, os.Args)
	if err != nil {
		report.DisplayInfoMessage("Usage Error", err.Error())
		os.Exit(1)
	}

	// initialize the global reporter before any compilation machinery runs
	report.InitReporter(logLevelFromArg(result.Arguments["loglevel"].(string)))

	// process the inputed command line
	subcmdName, subResult, _ := result.Subcommand()
	switch subcmdName {
	case "check":
		execCheckCommand(subResult)
	case "mod":
		execModCommand(subResult)
	case "version":
		report.DisplayInfoMessage("Sable Version", common.SableVersion)
	}
}

// execCheckCommand executes the `check` subcommand and handles all its errors.
func execCheckCommand(result *olive.ArgParseResult) {
	modRelPath, _ := result.PrimaryArg()

	modPath, err := filepath.Abs(modRelPath)
	if err != nil {
		report.DisplayInfoMessage("Path Error", err.Error())
		os.Exit(1)
	}

	os.Exit(NewCompiler(modPath).Check())
}

// execModCommand executes the `mod` subcommand and its subcommands.  It handles
// all errors related to this command.
func execModCommand(result *olive.ArgParseResult) {
	subcmdName, subResult, _ := result.Subcommand()

	workDir, err := os.Getwd()
	if err != nil {
		report.DisplayInfoMessage("Path Error", err.Error())
		os.Exit(1)
	}

	switch subcmdName {
	case "init":
		modName, _ := subResult.PrimaryArg()
		if err := depm.InitModuleFile(workDir, modName); err != nil {
			report.DisplayInfoMessage("Module Init Error", err.Error())
			os.Exit(1)
		}
	}
}

// logLevelFromArg converts a CLI log level selector value into one of the
// reporter's enumerated log levels.
func logLevelFromArg(value string) int {
	switch value {
	case "silent":
		return report.LogLevelSilent
	case "error":
		return report.LogLevelError
	case "warn":
		return report.LogLevelWarn
	default:
		return report.LogLevelVerbose
	}
}
