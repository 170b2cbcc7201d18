package main

import (
	"github.com/rs/zerolog/log"

	"github.com/caio126cf/bank-agent/agent/auth"
	"github.com/caio126cf/bank-agent/agent/credit"
	"github.com/caio126cf/bank-agent/agent/prompt"
	storex "github.com/caio126cf/bank-agent/agent/store"
	toolx "github.com/caio126cf/bank-agent/agent/tool"
	"github.com/caio126cf/bank-agent/pkg/awesomeapi"
	configx "github.com/caio126cf/bank-agent/pkg/config"
	_ "github.com/caio126cf/bank-agent/pkg/logger/autoload"
)

type AppConfig struct {
	AccountsPath string `envconfig:"ACCOUNTS_PATH" split_words:"true" default:"db/accounts.csv"`
	BandsPath    string `envconfig:"BANDS_PATH" split_words:"true" default:"db/score_bands.csv"`
	AuditPath    string `envconfig:"AUDIT_PATH" split_words:"true" default:"db/limit_requests.csv"`
}

func main() {
	appCfg := configx.MustNew[AppConfig]("BANK")

	accounts, err := storex.NewAccountTable(appCfg.AccountsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("account table init failed")
	}
	bands, err := storex.NewBandTable(appCfg.BandsPath)
	if err != nil {
		log.Fatal().Err(err).Msg("band table init failed")
	}
	audit, err := storex.NewAuditLog(appCfg.AuditPath)
	if err != nil {
		log.Fatal().Err(err).Msg("audit log init failed")
	}

	engine, err := credit.New(accounts, bands, audit)
	if err != nil {
		log.Fatal().Err(err).Msg("credit engine init failed")
	}
	authSvc, err := auth.New(accounts)
	if err != nil {
		log.Fatal().Err(err).Msg("auth service init failed")
	}

	quoteCfg := configx.MustNew[awesomeapi.Config]("AWESOMEAPI")
	quotes := awesomeapi.MustNew(*quoteCfg)

	gateway, err := toolx.NewGateway(engine, authSvc, quotes)
	if err != nil {
		log.Fatal().Err(err).Msg("tool gateway init failed")
	}
	_ = gateway

	log.Info().
		Int("tools", len(toolx.Infos())).
		Int("prompt_bytes", len(prompt.SystemPrompt())).
		Msg("bank agent tools ready")
}
