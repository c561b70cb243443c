// seed importa un inventario inicial desde un CSV separado por ';' y lo registra en el
// ledger con el mismo flujo que la API (cada fila queda en la bitácora con actor "seed").
//
// Formato: name;type;colour;supplier;initial_stock;rolls
// donde rolls es una lista de cantidades separadas por '|'. Ej.:
//
//	Lino;enli;beige;Textiles Sur;120;40|40|40
//
// Uso: go run ./cmd/seed [-charset iso-8859-9] inventario.csv
// El backend se elige con STORE_DRIVER igual que la API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/stock-ledger/internal/application/audit"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/internal/infrastructure/storage"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

func main() {
	charset := flag.String("charset", "utf-8", "codificación del CSV: utf-8, iso-8859-1, iso-8859-9, windows-1252, windows-1254")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed [-charset nombre] archivo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Msg("abrir CSV")
	}
	defer f.Close()

	in, err := decodeReader(f, *charset)
	if err != nil {
		log.Fatal().Err(err).Msg("codificación")
	}
	rows, err := parseRows(in)
	if err != nil {
		log.Fatal().Err(err).Msg("leer CSV")
	}

	ctx := audit.WithActor(context.Background(), "seed")
	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.Close()

	repos := store.Repos()
	uc := inventory.NewStockLedgerUseCase(store, repos.Materials, repos.Rolls, audit.NewRecorder())
	res := importRows(ctx, uc, rows, log)

	log.Info().
		Int("importados", res.Imported).
		Int("omitidos", res.Skipped).
		Int("rollos", res.Rolls).
		Msg("seed terminado")
}
