// Copyright 2022 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package testing

import (
	"bufio"
	"bytes"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	jc "github.com/juju/testing/checkers"
	gc "gopkg.in/check.v1"
)

// DumpTable dumps the contents of the given tables to stdout.
// This is useful for debugging tests. It is not intended for use
// in production code.
func DumpTable(c *gc.C, db *sql.DB, table string, extraTables ...string) {
	for _, t := range append([]string{table}, extraTables...) {
		writeTable(c, os.Stdout, db, t)
	}
}

func writeTable(c *gc.C, out io.Writer, db *sql.DB, table string) {
	rows, err := db.Query(fmt.Sprintf("SELECT * FROM %q", table))
	c.Assert(err, jc.ErrorIsNil)
	defer rows.Close()

	cols, err := rows.Columns()
	c.Assert(err, jc.ErrorIsNil)

	buffer := new(bytes.Buffer)
	writer := tabwriter.NewWriter(buffer, 0, 8, 4, ' ', 0)
	for _, col := range cols {
		fmt.Fprintf(writer, "%s\t", col)
	}
	fmt.Fprintln(writer)

	vals := make([]any, len(cols))
	for i := range vals {
		vals[i] = new(any)
	}

	for rows.Next() {
		err = rows.Scan(vals...)
		c.Assert(err, jc.ErrorIsNil)

		for _, val := range vals {
			fmt.Fprintf(writer, "%v\t", *val.(*any))
		}
		fmt.Fprintln(writer)
	}
	c.Assert(rows.Err(), jc.ErrorIsNil)
	writer.Flush()

	fmt.Fprintf(out, "Table - %s:\n", table)

	var width int
	scanner := bufio.NewScanner(bytes.NewBuffer(buffer.Bytes()))
	for scanner.Scan() {
		if num := len(scanner.Text()); num > width {
			width = num
		}
	}

	rule := strings.Repeat("-", max(width-4, 0))
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, buffer.String())
	fmt.Fprintln(out, rule)
	fmt.Fprintln(out)
}
