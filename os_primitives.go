package mesgo

import (
	"os"
	"os/exec"
	"time"

	"golang.org/x/sys/unix"
)

// osPrimitives is spec §6.2's host/OS boundary surface: environment
// access, file permission/duplication primitives taken from
// golang.org/x/sys/unix (the pack's convention for syscalls `os` does
// not expose directly), and subprocess execution through os/exec rather
// than a raw fork - see DESIGN.md for why bare unix.Fork is not wired
// into a goroutine-scheduled runtime.
func osPrimitives() []primitive {
	return []primitive{
		{"getenv", primGetenv},
		{"setenv", primSetenv},
		{"file-exists?", primFileExistsP},
		{"chmod", primChmod},
		{"dup-port", primDupPort},
		{"current-time", primCurrentTime},
		{"system", primSystem},
	}
}

func primGetenv(in *Interp, args Obj) Obj {
	name := in.StringValue(in.Car(args))
	v, ok := os.LookupEnv(name)
	if !ok {
		return in.False
	}
	return in.MakeString(v)
}

func primSetenv(in *Interp, args Obj) Obj {
	name := in.StringValue(in.Car(args))
	value := in.StringValue(in.Car(in.Cdr(args)))
	if err := os.Setenv(name, value); err != nil {
		in.raise(in.intern("system-error"), in.MakeString(err.Error()))
	}
	return in.Unspecified
}

func primFileExistsP(in *Interp, args Obj) Obj {
	name := in.StringValue(in.Car(args))
	_, err := os.Stat(name)
	return in.Bool(err == nil)
}

// primChmod exercises unix.Chmod directly (spec §6.2's `chmod`), rather
// than os.Chmod, matching the pack's preference for x/sys/unix on the
// primitive surface that mirrors a specific POSIX call by name.
func primChmod(in *Interp, args Obj) Obj {
	name := in.StringValue(in.Car(args))
	mode := uint32(in.NumberValue(in.Car(in.Cdr(args))))
	if err := unix.Chmod(name, mode); err != nil {
		in.raise(in.intern("system-error"), in.MakeString(err.Error()))
	}
	return in.Unspecified
}

// primDupPort duplicates a port's underlying file descriptor with
// unix.Dup2 (spec §6.2's `dup`/`dup2`) and registers the duplicate as a
// new port, so the duplicate survives independently of the original's
// lifetime.
func primDupPort(in *Interp, args Obj) Obj {
	p := in.portAt(in.Car(args))
	if p.file == nil {
		in.errWrongType("dup-port", in.Car(args))
	}
	newFd := int(in.Car(in.Cdr(args)))
	if err := unix.Dup2(p.fd, newFd); err != nil {
		in.raise(in.intern("system-error"), in.MakeString(err.Error()))
	}
	dup := os.NewFile(uintptr(newFd), p.name)
	return in.registerPort(newFilePort(p.name, dup, newFd))
}

// primCurrentTime reads the real-time (wall) clock with unix.ClockGettime
// (spec §6.2's `clock_gettime`), returning whole seconds since the
// epoch - the int64 numeric tower (Non-goals) has no room for the
// nanosecond remainder.
func primCurrentTime(in *Interp, args Obj) Obj {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_REALTIME, &ts); err != nil {
		return in.MakeNumber(time.Now().Unix())
	}
	return in.MakeNumber(ts.Sec)
}

// primSystem runs a shell command to completion via os/exec, the safe
// replacement for a raw fork/execve pair: forking the Go runtime
// directly would duplicate only the calling thread, leaving every other
// goroutine's state behind in the child (see DESIGN.md).
func primSystem(in *Interp, args Obj) Obj {
	command := in.StringValue(in.Car(args))
	cmd := exec.Command("/bin/sh", "-c", command)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return in.MakeNumber(int64(exitErr.ExitCode()))
		}
		return in.MakeNumber(-1)
	}
	return in.MakeNumber(0)
}
