package core

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/pokedex-ingest/internal/database"
)

// ErrNoHeader is returned when a load source has no header line.
var ErrNoHeader = errors.New("source has no header line")

// Load copies CSV rows from src into table without touching rows that
// already exist there. The rows are staged in a scratch table shaped like
// the destination and then inserted with ON CONFLICT DO NOTHING, so loading
// the same data twice is a no-op.
//
// src must start with a header line naming the columns. With
// opts.GeneratedKey the rows omit the destination's generated primary key:
// the scratch table generates it and the insert overrides the destination's
// identity column with those values.
func Load(ctx context.Context, tx database.Tx, table string, src io.Reader, opts LoadOptions) (LoadResult, error) {
	result := LoadResult{Table: table}

	br := bufio.NewReader(NewBOMSkippingReader(src))
	headerLine, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return result, fmt.Errorf("load %s: read header: %w", table, err)
	}
	columns, err := parseHeaderLine(headerLine)
	if err != nil {
		return result, fmt.Errorf("load %s: %w", table, err)
	}
	result.Columns = columns

	target := database.QuoteIdentifier(table)
	scratch := database.QuoteIdentifier("tmp_" + table)

	createSQL := fmt.Sprintf("CREATE TEMP TABLE %s (LIKE %s INCLUDING ALL) ON COMMIT DROP", scratch, target)
	if _, err := tx.Exec(ctx, createSQL); err != nil {
		return result, fmt.Errorf("load %s: create scratch table: %w", table, err)
	}

	copySQL := fmt.Sprintf("COPY %s FROM STDIN WITH (FORMAT csv, HEADER true)", scratch)
	if opts.GeneratedKey {
		copySQL = fmt.Sprintf("COPY %s (%s) FROM STDIN WITH (FORMAT csv, HEADER true)",
			scratch, database.QuoteIdentifiers(columns))
	}

	body := io.MultiReader(strings.NewReader(headerLine), br)
	tag, err := tx.CopyFrom(ctx, body, copySQL)
	if err != nil {
		return result, fmt.Errorf("load %s: copy: %w", table, err)
	}
	result.Staged = tag.RowsAffected()

	override := ""
	if opts.GeneratedKey {
		override = " OVERRIDING SYSTEM VALUE"
	}
	insertSQL := fmt.Sprintf("INSERT INTO %s%s SELECT * FROM %s ON CONFLICT DO NOTHING", target, override, scratch)
	tag, err = tx.Exec(ctx, insertSQL)
	if err != nil {
		return result, fmt.Errorf("load %s: insert: %w", table, err)
	}
	result.Inserted = tag.RowsAffected()

	if _, err := tx.Exec(ctx, fmt.Sprintf("DROP TABLE %s", scratch)); err != nil {
		return result, fmt.Errorf("load %s: drop scratch table: %w", table, err)
	}

	return result, nil
}

func parseHeaderLine(line string) ([]string, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.TrimSpace(line) == "" {
		return nil, ErrNoHeader
	}
	header, err := csv.NewReader(strings.NewReader(line)).Read()
	if err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	return header, nil
}
