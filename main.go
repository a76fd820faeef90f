package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/davecgh/go-spew/spew"

	"github.com/mcncl/jsonkdl/internal/config"
	"github.com/mcncl/jsonkdl/internal/errors"
	"github.com/mcncl/jsonkdl/internal/kdl"
	"github.com/mcncl/jsonkdl/internal/mapper"
	"github.com/mcncl/jsonkdl/internal/models"
	"github.com/mcncl/jsonkdl/internal/parser"
)

// CLI defines the command-line interface
var CLI struct {
	Input      string           `arg:"" help:"Path to input JSON file." type:"path"`
	Output     string           `arg:"" help:"Path to output KDL file." type:"path"`
	KdlV1      bool             `help:"Convert to KDL v1." name:"kdl-v1" short:"1" xor:"grammar"`
	KdlV2      bool             `help:"Convert to KDL v2 (default)." name:"kdl-v2" short:"2" xor:"grammar"`
	Force      bool             `help:"Overwrite output if it exists." short:"f"`
	Verbose    bool             `help:"Print extra information during conversion." short:"v"`
	NodeSchema bool             `help:"Treat input as node-shaped JSON describing the KDL document." short:"n"`
	JSONC      bool             `help:"Allow comments and trailing commas in the input." short:"c"`
	Config     string           `help:"Path to a YAML config file with converter defaults." type:"path"`
	Version    kong.VersionFlag `help:"Show version information."`
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("jsonkdl"),
		kong.Description("Converts JSON to KDL. By default, KDL spec v2 is used."),
		kong.UsageOnError(),
		kong.Vars{"version": fmt.Sprintf("jsonkdl version %s", Version)},
	)

	_, err := parser.Parse(os.Args[1:])
	if err != nil {
		// Usage was already shown by kong.UsageOnError()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonkdl --help\n")
		os.Exit(1)
	}
}

// run executes the conversion pipeline: resolve config, validate the
// paths, parse, map, render, write. Nothing is written before every
// fallible step has succeeded.
func run() error {
	cfg, err := config.Load(CLI.Config)
	if err != nil {
		return err
	}

	verbose := CLI.Verbose || cfg.Verbose
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	logger := newLogger(os.Stderr, level)

	version := cfg.GrammarVersion()
	switch {
	case CLI.KdlV1:
		version = kdl.V1
	case CLI.KdlV2:
		version = kdl.V2
	}

	if err := checkInput(CLI.Input); err != nil {
		return err
	}
	if err := checkOutput(CLI.Output, CLI.Force); err != nil {
		return err
	}

	allowJSONC := CLI.JSONC || cfg.JSONC
	logger.Debug("parsing input", "path", CLI.Input, "jsonc", allowJSONC)
	root, err := parseInput(CLI.Input, allowJSONC)
	if err != nil {
		return err
	}

	var doc kdl.Document
	if CLI.NodeSchema {
		doc, err = mapper.MapNodeSchema(root)
		if err != nil {
			return err
		}
	} else {
		doc = mapper.Map(root)
	}
	logger.Debug("mapped document", "nodes", len(doc.Nodes), "version", version)
	logger.Debugf("document dump:\n%s", spew.Sdump(doc))

	text := kdl.Render(doc, kdl.ForVersion(version), kdl.Options{Indent: cfg.Indent})

	if err := writeOutput(CLI.Output, text); err != nil {
		return err
	}

	if verbose {
		fmt.Printf("converted %s -> %s\n", CLI.Input, CLI.Output)
	}
	return nil
}

// newLogger creates a logger writing to w at the given level.
// Timestamps are formatted as "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// checkInput verifies the input path exists and is a regular file.
func checkInput(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NewInputError(fmt.Sprintf("no such file: %s", path), errors.ErrFileNotFound)
		}
		return errors.NewInputError(fmt.Sprintf("cannot read input '%s'", path), err)
	}
	if !info.Mode().IsRegular() {
		return errors.NewInputError(fmt.Sprintf("not a file: %s", path), errors.ErrNotAFile)
	}
	return nil
}

// checkOutput refuses to clobber an existing output file unless
// --force was given.
func checkOutput(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return errors.NewOutputError(
			fmt.Sprintf("file exists: %s (use --force to overwrite)", path),
			errors.ErrOutputExists,
		)
	}
	return nil
}

// parseInput reads and parses the input file, optionally stripping
// JSONC comments first.
func parseInput(path string, allowJSONC bool) (models.Value, error) {
	if allowJSONC {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.NewInputError(fmt.Sprintf("failed to read file '%s'", path), err)
		}
		return parser.ParseJSONC(data)
	}
	return parser.ParseFile(path)
}

// writeOutput writes the rendered text through a temporary file in the
// destination directory and renames it into place, so a failed write
// never leaves a partial output file behind.
func writeOutput(path, content string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jsonkdl-*.tmp")
	if err != nil {
		return errors.NewOutputError(fmt.Sprintf("failed to create output file in '%s'", dir), err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.NewOutputError(fmt.Sprintf("failed to write output file '%s'", path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.NewOutputError(fmt.Sprintf("failed to write output file '%s'", path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.NewOutputError(fmt.Sprintf("failed to move output into place at '%s'", path), err)
	}
	return nil
}
