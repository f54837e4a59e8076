// Command lispkit evaluates a single Lisp datum and prints its value.
//
// Unlike the teacher's interactive ReadEvalPrintLoop, this is
// deliberately single-shot: a REPL loop is out of scope for this
// interpreter (see the embedding entrypoint in package lisp), so the
// binary exists mainly to exercise Interpreter.Run from the command
// line, not to serve as a user-facing shell.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/hisuzuki/lispkit/lisp"
)

func main() {
	source, err := readSource()
	if err != nil {
		fmt.Fprintln(os.Stderr, "lispkit:", err)
		os.Exit(1)
	}

	interp := lisp.NewInterpreter()
	result, err := interp.Run(source)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lispkit:", err)
		os.Exit(1)
	}
	fmt.Println(result)
}

func readSource() (string, error) {
	if len(os.Args) >= 2 {
		data, err := os.ReadFile(os.Args[1])
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
