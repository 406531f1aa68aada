package main

import (
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/sirupsen/logrus"

	"bptreedb/config"
	"bptreedb/table"
)

func main() {
	configureLogging()
	cfg := config.Load(os.Args[1:])

	db, err := table.OpenFile(cfg.DBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to open database:", err)
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "error closing database:", err)
		}
	}()

	rl, err := newInputReader(cfg.DBPath + ".history")
	if err != nil {
		fmt.Fprintln(os.Stderr, "unable to start shell:", err)
		os.Exit(1)
	}
	defer rl.Close()

	runRepl(rl, db, os.Stdout)
}

func runRepl(rl *readline.Instance, db *table.Database, out io.Writer) {
	for {
		line, err := readInput(rl)
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintln(out, "error reading input:", err)
			return
		}
		if line == "" {
			continue
		}

		if line[0] == '.' {
			switch handleMetaCommand(line, db, out) {
			case MetaCommandExit:
				return
			case MetaCommandUnrecognizedCommand:
				fmt.Fprintf(out, "Unrecognized command %q.\n", line)
			}
			continue
		}

		var stmt Statement
		if result := prepareStatement(line, &stmt); result != PrepareSuccess {
			fmt.Fprintln(out, prepareResultMessage(result))
			continue
		}

		executeStatement(&stmt, db, out)
	}
}

func executeStatement(stmt *Statement, db *table.Database, out io.Writer) {
	switch stmt.Type {
	case StatementInsert:
		if err := db.Insert(stmt.RowToInsert); err != nil {
			fmt.Fprintln(out, executeErrorMessage(err))
			return
		}
		fmt.Fprintln(out, "Executed.")
	case StatementSelect:
		executeSelect(db, out)
	}
}

func executeSelect(db *table.Database, out io.Writer) {
	cursor, err := db.Start()
	if err != nil {
		fmt.Fprintln(out, executeErrorMessage(err))
		return
	}
	for !db.EndOfTable(cursor) {
		row, err := db.Value(cursor)
		if err != nil {
			fmt.Fprintln(out, executeErrorMessage(err))
			return
		}
		fmt.Fprintf(out, "(%d, %s, %s)\n", row.ID, row.Username, row.Email)
		if err := db.Advance(cursor); err != nil {
			fmt.Fprintln(out, executeErrorMessage(err))
			return
		}
	}
	fmt.Fprintln(out, "Executed.")
}

func executeErrorMessage(err error) string {
	return fmt.Sprintf("Error: %v", err)
}

func configureLogging() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetLevel(logrus.InfoLevel)
}
