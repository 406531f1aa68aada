package main

import (
	"fmt"
	"strconv"
	"strings"

	"bptreedb/column"
	"bptreedb/table"
)

// PrepareResult is the outcome of parsing an input line into a Statement.
type PrepareResult int

const (
	PrepareSuccess PrepareResult = iota
	PrepareUnrecognizedStatement
	PrepareSyntaxError
	PrepareStringTooLong
	PrepareNegativeID
)

// StatementType names the two operations this shell understands.
type StatementType int

const (
	StatementInsert StatementType = iota
	StatementSelect
)

// Statement is the parsed form of one input line, ready for execution.
type Statement struct {
	Type        StatementType
	RowToInsert table.Row
}

// prepareStatement parses line into stmt. insert takes exactly three
// arguments: id, username, email.
func prepareStatement(line string, stmt *Statement) PrepareResult {
	if strings.HasPrefix(line, "insert") {
		stmt.Type = StatementInsert
		return prepareInsert(line, stmt)
	}
	if strings.TrimSpace(line) == "select" {
		stmt.Type = StatementSelect
		return PrepareSuccess
	}
	return PrepareUnrecognizedStatement
}

func prepareInsert(line string, stmt *Statement) PrepareResult {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return PrepareSyntaxError
	}

	id, err := strconv.Atoi(fields[1])
	if err != nil {
		return PrepareSyntaxError
	}
	if id < 0 {
		return PrepareNegativeID
	}

	username, email := fields[2], fields[3]
	if len(username) > column.UsernameSize || len(email) > column.EmailSize {
		return PrepareStringTooLong
	}

	stmt.RowToInsert = table.Row{ID: uint32(id), Username: username, Email: email}
	return PrepareSuccess
}

func prepareResultMessage(result PrepareResult) string {
	switch result {
	case PrepareSyntaxError:
		return "Syntax error. Could not parse statement."
	case PrepareStringTooLong:
		return "String is too long."
	case PrepareNegativeID:
		return "ID must be positive."
	case PrepareUnrecognizedStatement:
		return "Unrecognized keyword at start of statement."
	default:
		return fmt.Sprintf("prepare result %d", result)
	}
}
