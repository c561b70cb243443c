// token emite un JWT firmado con JWT_SECRET para operar la API desde scripts o Swagger.
//
// Uso: go run ./cmd/token -user ana -role vendedor
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/jhoicas/stock-ledger/pkg/jwt"
)

func main() {
	user := flag.String("user", "", "identificador del usuario (queda como actor en la bitácora)")
	role := flag.String("role", jwt.RoleConsulta, "rol: admin, vendedor o consulta")
	flag.Parse()

	if *user == "" {
		fmt.Fprintln(os.Stderr, "uso: token -user <id> [-role admin|vendedor|consulta]")
		os.Exit(2)
	}
	switch *role {
	case jwt.RoleAdmin, jwt.RoleVendedor, jwt.RoleConsulta:
	default:
		fmt.Fprintf(os.Stderr, "rol inválido: %s\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
