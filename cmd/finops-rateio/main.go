package main

import (
	"fmt"
	"os"

	"github.com/diillson/finops-rateio/internal/adapter/driven/aws"
	"github.com/diillson/finops-rateio/internal/adapter/driven/config"
	"github.com/diillson/finops-rateio/internal/adapter/driven/export"
	"github.com/diillson/finops-rateio/internal/adapter/driven/input"
	"github.com/diillson/finops-rateio/internal/adapter/driving/cli"
	"github.com/diillson/finops-rateio/internal/application/usecase"
	"github.com/diillson/finops-rateio/pkg/console"
	"github.com/diillson/finops-rateio/pkg/version"
)

func main() {
	app := cli.NewCLIApp(version.Version)

	// Repositórios
	awsRepo := aws.NewAWSRepository()
	inputRepo := input.NewInputRepository()
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	rateioUseCase := usecase.NewRateioUseCase(
		awsRepo,
		inputRepo,
		exportRepo,
		configRepo,
		consoleImpl,
	)
	app.SetRateioUseCase(rateioUseCase)

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
