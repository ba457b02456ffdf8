// Command admin-token issues an operator JWT for the admin routes, signed
// with the configured admin secret, and prints it to stdout.
//
// Flags:
//
//	-sub   token subject, usually the operator's e-mail (required)
//	-role  role claim (default "admin")
//	-ttl   lifetime; 0 uses admin.token_ttl
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/heartmarshall/hangyeol/internal/auth"
	"github.com/heartmarshall/hangyeol/internal/config"
	"github.com/heartmarshall/hangyeol/pkg/ctxutil"
)

func main() {
	sub := flag.String("sub", "", "token subject")
	role := flag.String("role", ctxutil.RoleAdmin, "role claim")
	ttl := flag.Duration("ttl", 0, "token lifetime (0 = admin.token_ttl)")
	flag.Parse()

	if *sub == "" {
		fmt.Fprintln(os.Stderr, "usage: admin-token -sub ops@example.com [-role admin] [-ttl 1h]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !cfg.Admin.Enabled() {
		log.Fatal("admin.jwt_secret is not set")
	}

	tokens := auth.NewJWTManager(cfg.Admin.JWTSecret, cfg.Admin.JWTIssuer, cfg.Admin.TokenTTL)
	token, err := tokens.Issue(*sub, *role, *ttl)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	lifetime := *ttl
	if lifetime <= 0 {
		lifetime = cfg.Admin.TokenTTL
	}
	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Now().Add(lifetime).Format(time.RFC3339))
	fmt.Println(token)
}
