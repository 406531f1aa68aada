package main

import (
	"fmt"
	"io"
	"strings"

	"bptreedb/column"
	"bptreedb/pager"
	"bptreedb/table"
)

// MetaCommandResult is the outcome of handling a "." prefixed command.
type MetaCommandResult int

const (
	MetaCommandSuccess MetaCommandResult = iota
	MetaCommandExit
	MetaCommandUnrecognizedCommand
)

// handleMetaCommand dispatches a "." command against db, writing any
// diagnostic output to out. It never terminates the process itself;
// MetaCommandExit tells the caller to stop the REPL loop.
func handleMetaCommand(line string, db *table.Database, out io.Writer) MetaCommandResult {
	switch strings.TrimSpace(line) {
	case ".exit":
		return MetaCommandExit
	case ".constants":
		printConstants(out)
		return MetaCommandSuccess
	case ".btree":
		if err := db.PrintTree(out); err != nil {
			fmt.Fprintf(out, "error printing tree: %v\n", err)
		}
		return MetaCommandSuccess
	default:
		return MetaCommandUnrecognizedCommand
	}
}

func printConstants(out io.Writer) {
	fmt.Fprintln(out, "Constants:")
	fmt.Fprintf(out, "ROW_SIZE: %d\n", column.RowSize)
	fmt.Fprintf(out, "COMMON_NODE_HEADER_SIZE: %d\n", table.CommonHeaderSize)
	fmt.Fprintf(out, "LEAF_NODE_HEADER_SIZE: %d\n", table.LeafHeaderSize)
	fmt.Fprintf(out, "LEAF_NODE_CELL_SIZE: %d\n", table.LeafCellSize)
	fmt.Fprintf(out, "LEAF_NODE_SPACE_FOR_CELLS: %d\n", pager.PageSize-table.LeafHeaderSize)
	fmt.Fprintf(out, "LEAF_NODE_MAX_CELLS: %d\n", table.LeafMaxCells)
}
