package main

import (
	"io"

	"github.com/chzyer/readline"
)

// newInputReader builds a readline instance with history, the teacher's
// bufio.Reader swapped for line editing and recall.
func newInputReader(historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          "db > ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       ".exit",
	})
}

// readInput reads one line (without its newline; surrounding spaces are
// kept), translating both io.EOF and
// readline.ErrInterrupt into io.EOF so the caller has a single exit
// signal.
func readInput(rl *readline.Instance) (string, error) {
	line, err := rl.Readline()
	if err == readline.ErrInterrupt || err == io.EOF {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	return line, nil
}
