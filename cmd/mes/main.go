// Command mes is a minimal Scheme interpreter: it reads a boot script,
// evaluates it form by form, and (with -i, or no script argument) drops
// into a read-eval-write loop on standard input.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"mesgo"
)

var (
	arenaCells    = pflag.Int64("arena", 0, "initial heap arena size in cells (MES_ARENA)")
	maxArenaCells = pflag.Int64("max-arena", 0, "maximum heap arena size in cells (MES_MAX_ARENA)")
	stackCells    = pflag.Int("stack", 0, "marker stack depth in cells (MES_STACK)")
	bootPath      = pflag.String("boot", "", "boot script to load before entering the REPL (MES_BOOT)")
	interactive   = pflag.BoolP("interactive", "i", false, "drop into a REPL after loading the boot script")
	debug         = pflag.Bool("debug", false, "enable debug-level GC/eval tracing (MES_DEBUG)")
)

func main() {
	pflag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stderr)
	if envDebug() || *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg := mesgo.DefaultConfig()
	cfg.Logger = log
	if n := envOrFlagInt64("MES_ARENA", *arenaCells); n > 0 {
		cfg.ArenaCells = mesgo.Obj(n)
	}
	if n := envOrFlagInt64("MES_MAX_ARENA", *maxArenaCells); n > 0 {
		cfg.MaxArenaCells = mesgo.Obj(n)
	}
	if n := envOrFlagInt("MES_STACK", *stackCells); n > 0 {
		cfg.StackCells = n
	}

	interp, err := mesgo.NewInterp(cfg)
	if err != nil {
		fatal(err)
	}

	boot := *bootPath
	if boot == "" {
		boot = os.Getenv("MES_BOOT")
	}

	if boot != "" {
		if err := runFile(interp, boot); err != nil {
			fatal(err)
		}
	}

	if *interactive || boot == "" {
		repl(interp, log)
	}
}

func runFile(interp *mesgo.Interp, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &mesgo.FatalError{Msg: fmt.Sprintf("cannot open boot file %s: %v", path, err)}
	}
	defer f.Close()

	p := interp.NewFilePort(path, f)
	for {
		form, err := interp.ReadForm(p)
		if err != nil {
			return err
		}
		if form == interp.Eof {
			return nil
		}
		expanded, err := interp.Expand(form)
		if err != nil {
			return err
		}
		if _, err := interp.Eval(expanded, interp.TopLevelEnv()); err != nil {
			return err
		}
	}
}

// repl is the interactive loop: read, macro-expand, evaluate, and print
// the result, running a collection before each top-level form the way
// the original's main driver does at the start of every REPL turn.
func repl(interp *mesgo.Interp, log *logrus.Logger) {
	stdin := interp.StandardInputPort()
	stdout := interp.StandardOutputPort()

	for {
		interp.GC()
		form, err := interp.ReadForm(stdin)
		if err != nil {
			reportError(log, err)
			continue
		}
		if form == interp.Eof {
			return
		}

		expanded, err := interp.Expand(form)
		if err != nil {
			reportError(log, err)
			continue
		}

		result, err := interp.Eval(expanded, interp.TopLevelEnv())
		if err != nil {
			reportError(log, err)
			continue
		}
		interp.WriteForm(stdout, result, true)
		stdout.WriteByte('\n')
	}
}

func reportError(log *logrus.Logger, err error) {
	if fe, ok := err.(*mesgo.FatalError); ok {
		fatal(fe)
	}
	log.Errorf("%v", err)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}

func envDebug() bool {
	v := os.Getenv("MES_DEBUG")
	if v == "" {
		return false
	}
	n, err := strconv.Atoi(v)
	return err == nil && n > 0
}

func envOrFlagInt64(name string, flagVal int64) int64 {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return flagVal
}

func envOrFlagInt(name string, flagVal int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return flagVal
}
