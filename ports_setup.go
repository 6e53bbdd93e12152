package mesgo

import "os"

// installPorts registers the three standard ports and sets the
// current-{input,output,error}-port registers spec §3.2/§4.8 expect to
// find already populated.
func (in *Interp) installPorts() {
	in.currentInput = in.registerPort(newFilePort("/dev/stdin", os.Stdin, 0))
	in.currentOutput = in.registerPort(newFilePort("/dev/stdout", os.Stdout, 1))
	in.currentError = in.registerPort(newFilePort("/dev/stderr", os.Stderr, 2))
}
