package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/stock-ledger/internal/application/audit"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/memory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

const sample = `name;type;colour;supplier;initial_stock;rolls
# comentario
Lino;enli;beige;Textiles Sur;120;40|40|40
Saten;ensiz;;Akın Tekstil;;
`

func TestParseRows(t *testing.T) {
	rows, err := parseRows(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Lino", rows[0].Name)
	require.NotNil(t, rows[0].Colour)
	assert.Equal(t, "beige", *rows[0].Colour)
	assert.Equal(t, "120", rows[0].InitialStock.String())
	assert.Len(t, rows[0].Rolls, 3)

	assert.Nil(t, rows[1].Colour)
	assert.True(t, rows[1].InitialStock.IsZero())
	assert.Empty(t, rows[1].Rolls)
}

func TestParseRows_Errores(t *testing.T) {
	_, err := parseRows(strings.NewReader("Lino;enli\n"))
	assert.ErrorContains(t, err, "línea 1")

	_, err = parseRows(strings.NewReader("Lino;enli;;Sur;abc;\n"))
	assert.ErrorContains(t, err, "initial_stock")

	_, err = parseRows(strings.NewReader("Lino;enli;;Sur;-5;\n"))
	assert.ErrorContains(t, err, "negativo")

	_, err = parseRows(strings.NewReader("Lino;enli;;Sur;5;1|x\n"))
	assert.ErrorContains(t, err, "rollo")
}

func TestDecodeReader_ISO8859_9(t *testing.T) {
	encoded, err := charmap.ISO8859_9.NewEncoder().String("Kumaş;enli;;Akın;1;\n")
	require.NoError(t, err)

	r, err := decodeReader(bytes.NewReader([]byte(encoded)), "ISO-8859-9")
	require.NoError(t, err)
	rows, err := parseRows(r)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Kumaş", rows[0].Name)
	assert.Equal(t, "Akın", rows[0].Supplier)

	_, err = decodeReader(strings.NewReader(""), "ebcdic")
	assert.Error(t, err)
}

func TestImportRows(t *testing.T) {
	store := memory.New()
	repos := store.Repos()
	uc := inventory.NewStockLedgerUseCase(store, repos.Materials, repos.Rolls, audit.NewRecorder())
	ctx := audit.WithActor(context.Background(), "seed")

	rows, err := parseRows(strings.NewReader(sample))
	require.NoError(t, err)

	res := importRows(ctx, uc, rows, logger.Nop())
	assert.Equal(t, importResult{Imported: 2, Rolls: 3}, res)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "120", list[0].TotalQuantity.String())
	assert.Equal(t, "120", list[0].RollsTotal.String())

	// Re-ejecutar no duplica materiales.
	res = importRows(ctx, uc, rows, logger.Nop())
	assert.Equal(t, importResult{Skipped: 2}, res)

	logs, err := audit.NewUseCase(repos.Logs).List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, logs)
	for _, l := range logs {
		assert.Equal(t, "seed", l.Actor)
	}
}
