package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// seedRow una fila del CSV ya validada.
type seedRow struct {
	Line         int
	Name         string
	Type         string
	Colour       *string
	Supplier     string
	InitialStock decimal.Decimal
	Rolls        []decimal.Decimal
}

type importResult struct {
	Imported int
	Skipped  int
	Rolls    int
}

var charsets = map[string]encoding.Encoding{
	"iso-8859-1":   charmap.ISO8859_1,
	"iso-8859-9":   charmap.ISO8859_9,
	"windows-1252": charmap.Windows1252,
	"windows-1254": charmap.Windows1254,
}

// decodeReader convierte la entrada a UTF-8 según charset.
func decodeReader(r io.Reader, charset string) (io.Reader, error) {
	name := strings.ToLower(strings.TrimSpace(charset))
	if name == "" || name == "utf-8" || name == "utf8" {
		return r, nil
	}
	enc, ok := charsets[name]
	if !ok {
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}

// parseRows lee el CSV. Acepta una cabecera opcional (primera columna "name") y líneas
// que empiezan con '#'.
func parseRows(r io.Reader) ([]seedRow, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []seedRow
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if len(rows) == 0 && strings.EqualFold(strings.TrimSpace(rec[0]), "name") {
			continue
		}
		row, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		row.Line = line
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRecord(rec []string) (seedRow, error) {
	if len(rec) < 4 {
		return seedRow{}, fmt.Errorf("se esperaban al menos 4 columnas, hay %d", len(rec))
	}
	for len(rec) < 6 {
		rec = append(rec, "")
	}
	row := seedRow{
		Name:     strings.TrimSpace(rec[0]),
		Type:     strings.ToLower(strings.TrimSpace(rec[1])),
		Supplier: strings.TrimSpace(rec[3]),
	}
	if c := strings.TrimSpace(rec[2]); c != "" {
		row.Colour = &c
	}
	if s := strings.TrimSpace(rec[4]); s != "" {
		v, err := decimal.NewFromString(s)
		if err != nil {
			return seedRow{}, fmt.Errorf("initial_stock %q: %w", s, err)
		}
		if v.IsNegative() {
			return seedRow{}, fmt.Errorf("initial_stock negativo: %s", s)
		}
		row.InitialStock = v
	}
	if s := strings.TrimSpace(rec[5]); s != "" {
		for _, part := range strings.Split(s, "|") {
			v, err := decimal.NewFromString(strings.TrimSpace(part))
			if err != nil {
				return seedRow{}, fmt.Errorf("rollo %q: %w", part, err)
			}
			row.Rolls = append(row.Rolls, v)
		}
	}
	return row, nil
}

// importRows registra cada material, carga su stock inicial y sus rollos. Un material
// ya existente se omite para que el seed pueda re-ejecutarse.
func importRows(ctx context.Context, uc *inventory.StockLedgerUseCase, rows []seedRow, log *logger.Logger) importResult {
	var res importResult
	for _, row := range rows {
		id, err := uc.RegisterMaterial(ctx, dto.RegisterMaterialRequest{
			Name: row.Name, Type: row.Type, Colour: row.Colour, Supplier: row.Supplier,
		})
		if errors.Is(err, domain.ErrDuplicateMaterial) {
			log.Warn().Int("line", row.Line).Str("name", row.Name).Msg("material existente, se omite")
			res.Skipped++
			continue
		}
		if err != nil {
			log.Error().Err(err).Int("line", row.Line).Str("name", row.Name).Msg("registrar material")
			res.Skipped++
			continue
		}
		if row.InitialStock.IsPositive() {
			if _, err := uc.AdjustStock(ctx, id, dto.AdjustStockRequest{Delta: row.InitialStock, Reason: "seed"}); err != nil {
				log.Error().Err(err).Int("line", row.Line).Msg("stock inicial")
			}
		}
		if len(row.Rolls) > 0 {
			supplier := row.Supplier
			out, err := uc.AddRolls(ctx, dto.AddRollsRequest{
				Name: row.Name, Type: row.Type, Supplier: &supplier, Quantities: row.Rolls,
			})
			if err != nil {
				log.Error().Err(err).Int("line", row.Line).Msg("agregar rollos")
			} else {
				res.Rolls += len(out.RollIDs)
			}
		}
		res.Imported++
	}
	return res
}
