// AngelaMos | 2026
// main.go

package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/agritrace/agritrace-api/internal/auth"
)

func main() {
	privatePath := flag.String("private", "keys/private.pem", "private key output path")
	publicPath := flag.String("public", "keys/public.pem", "public key output path")
	flag.Parse()

	for _, p := range []string{*privatePath, *publicPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			slog.Error("create key directory", "path", p, "error", err)
			os.Exit(1)
		}
	}

	if err := auth.GenerateKeyPair(*privatePath, *publicPath); err != nil {
		slog.Error("generate key pair", "error", err)
		os.Exit(1)
	}

	slog.Info("ES256 key pair written",
		"private", *privatePath,
		"public", *publicPath,
	)
}
