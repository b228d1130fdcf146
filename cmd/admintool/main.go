// Command admintool loads seed data and mints access tokens.
//
//	admintool seed  [-config path] [-file data/seed.yaml]
//	admintool token [-config path] -name "A. Sharma" [-role officer]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/sristy17/sgay-v1/config"
	"github.com/sristy17/sgay-v1/internal/model"
	"github.com/sristy17/sgay-v1/internal/repository"
	"github.com/sristy17/sgay-v1/internal/service"
	"github.com/sristy17/sgay-v1/pkg/jwt"
	applogger "github.com/sristy17/sgay-v1/pkg/logger"
	"github.com/sristy17/sgay-v1/pkg/seed"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "seed":
		err = runSeed(os.Args[2:])
	case "token":
		err = runToken(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: admintool seed|token [flags]")
}

func runSeed(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	configPath := fs.String("config", "", "config file (default config/config.yaml)")
	file := fs.String("file", "", "seed file (default seed.path from config)")
	fs.Parse(args)

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *file == "" {
		*file = cfg.Seed.Path
	}
	if strings.TrimSpace(*file) == "" {
		return fmt.Errorf("-file is required when seed.path is not configured")
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	data, err := seed.LoadFile(*file)
	if err != nil {
		return err
	}

	repo, closeStore, err := repository.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	res, err := seed.Apply(context.Background(), repo, data, logger)
	if err != nil {
		return err
	}

	logger.Info("seed applied",
		zap.String("file", *file),
		zap.Int("officers_added", res.OfficersAdded),
		zap.Int("officers_skipped", res.OfficersSkipped),
		zap.Int("beneficiaries_added", res.BeneficiariesAdded),
		zap.Int("beneficiaries_skipped", res.BeneficiariesSkipped),
	)
	return nil
}

func runToken(args []string) error {
	fs := flag.NewFlagSet("token", flag.ExitOnError)
	configPath := fs.String("config", "", "config file (default config/config.yaml)")
	name := fs.String("name", "", "officer or administrator name (required)")
	role := fs.String("role", model.RoleOfficer, "admin or officer")
	fs.Parse(args)

	if strings.TrimSpace(*name) == "" {
		return fmt.Errorf("-name is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	authSvc := service.NewAuthService(cfg, jwt.NewManager(&cfg.Auth), nil, zap.NewNop())
	tok, err := authSvc.IssueToken(*name, *role)
	if err != nil {
		return err
	}

	fmt.Println(tok.AccessToken)
	fmt.Fprintf(os.Stderr, "expires in %ds\n", tok.ExpiresIn)
	return nil
}
