package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"

	"archsim/emu/log"
	"archsim/hw/hwio"
)

type mode byte

const (
	infosMode   mode = iota // Show program image infos
	loadMode                // Load images and dump memory snapshots
	peekMode                // Read a value from a snapshot
	versionMode             // Show archsim version
)

type (
	CLI struct {
		Infos   Infos   `cmd:"" help:"Show program image infos."`
		Load    Load    `cmd:"" help:"Load program images into memory and dump memory snapshots."`
		Peek    Peek    `cmd:"" help:"Read a value from a memory snapshot."`
		Version Version `cmd:"" help:"Show archsim version."`

		Log    logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
		Config string     `help:"${config_help}" type:"existingfile" placeholder:"FILE"`

		mode mode
	}

	Infos struct {
		ImagePath string `arg:"" name:"/path/to/image" type:"existingfile"`
		Data      bool   `name:"data" help:"Image is a data image (default: instruction image)."`
	}

	Load struct {
		IImage string   `name:"iimage" help:"Instruction image." required:"" type:"existingfile"`
		DImage string   `name:"dimage" help:"Data image." required:"" type:"existingfile"`
		Out    *outfile `name:"out" help:"Write memory snapshots (one JSON object per line)." placeholder:"FILE|stdout|stderr"`
	}

	Peek struct {
		SnapshotPath string `arg:"" name:"/path/to/snapshot" type:"existingfile"`
		Offset       string `name:"offset" help:"Byte offset (decimal, or hexadecimal with 0x prefix)." required:""`
		Width        int    `name:"width" help:"Access width in bytes: 1, 2 or 4." default:"4"`
		Signed       bool   `name:"signed" help:"Sign-extend the value."`
	}

	Version struct{}
)

var vars = kong.Vars{
	"log_help":    "Enable logging for specified modules.",
	"config_help": "Configuration file (default: archsim config directory).",
}

func parseArgs(args []string) CLI {
	var cfg CLI
	parser, err := kong.New(&cfg,
		kong.Name("archsim"),
		kong.Description("Memory substrate of a MIPS-like machine simulator."),
		kong.UsageOnError(),
		kong.Help(printHelp),
		vars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	checkf(err, "failed to parse command line")

	switch ctx.Command() {
	case "infos </path/to/image>":
		cfg.mode = infosMode
	case "load":
		cfg.mode = loadMode
	case "peek </path/to/snapshot>":
		cfg.mode = peekMode
	case "version":
		cfg.mode = versionMode
	}
	return cfg
}

func printHelp(options kong.HelpOptions, ctx *kong.Context) error {
	if err := kong.DefaultHelpPrinter(options, ctx); err != nil {
		return err
	}
	loggingHelp := `
Log modules:
  The --log flag accepts a comma-separated list of modules.

  Valid log modules are:
%s

  As a special case, the following values are accepted:
    - no                     Disable all logging.
    - all                    Enable all logs.
`
	var strs []string
	for _, m := range log.ModuleNames() {
		strs = append(strs, "    - "+m)
	}

	fmt.Fprintf(os.Stderr, loggingHelp, strings.Join(strs, "\n"))
	return nil
}

// parseOffset parses a decimal or 0x-prefixed hexadecimal memory offset.
func parseOffset(s string) (uint32, error) {
	off, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q", s)
	}
	return uint32(off), nil
}

func parseWidth(w int) (hwio.Width, error) {
	switch w {
	case 1:
		return hwio.Byte, nil
	case 2:
		return hwio.Half, nil
	case 4:
		return hwio.Word, nil
	}
	return 0, fmt.Errorf("invalid access width %d", w)
}

type logModMask log.ModuleMask

// Decode decodes a comma-separated list of module names into a module mask.
//
// Implements kong.MapperValue interface.
func (lm *logModMask) Decode(ctx *kong.DecodeContext) error {
	nolog := false
	allLogs := false

	var mask log.ModuleMask
	tok := ctx.Scan.Pop()
	for _, v := range strings.Split(tok.Value.(string), ",") {
		switch v {
		case "all":
			allLogs = true
		case "no":
			nolog = true
		default:
			mod, ok := log.ModuleByName(v)
			if !ok {
				return fmt.Errorf("unknown log module %s", v)
			}
			mask |= mod.Mask()
		}
	}

	if nolog {
		if allLogs {
			return fmt.Errorf("cannot use 'all' and 'no' together")
		}
		if mask != 0 {
			return fmt.Errorf("cannot combine 'no' with other log modules")
		}
		log.Disable()
		*lm = 0
		return nil
	}

	if allLogs {
		mask = log.ModuleMaskAll
	}

	*lm = logModMask(mask)
	log.EnableDebugModules(mask)
	return nil
}

type outfile struct {
	w    io.Writer
	name string
	fd   *os.File
}

// Decode decodes FILE|stdout|stderr. A file is only created on the first
// write, so that failed commands don't leave empty files behind.
//
// Implements kong.MapperValue interface.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	name, ok := tok.Value.(string)
	if !ok || name == "" {
		return fmt.Errorf("expected FILE|stdout|stderr")
	}
	f.name = name

	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	}
	return nil
}

func (f *outfile) String() string { return f.name }

func (f *outfile) Write(p []byte) (int, error) {
	if f.w == nil {
		fd, err := os.Create(f.name)
		if err != nil {
			return 0, err
		}
		f.fd, f.w = fd, fd
	}
	return f.w.Write(p)
}

// Close closes the underlying file, if one was created.
func (f *outfile) Close() error {
	if f.fd == nil {
		return nil
	}
	return f.fd.Close()
}

func checkf(err error, format string, args ...any) {
	if err == nil {
		return
	}
	fatalf("%s.\n\t%s", fmt.Sprintf(format, args...), err)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "fatal error:")
	fmt.Fprintf(os.Stderr, "\n\t%s\n", fmt.Sprintf(format, args...))
	os.Exit(1)
}
