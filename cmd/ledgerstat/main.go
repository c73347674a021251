package main

import (
	"context"
	"os"

	"ledgerstat/internal/amqp"
	"ledgerstat/internal/backend"
	"ledgerstat/internal/cli"
	"ledgerstat/internal/config"
	"ledgerstat/internal/core"
	"ledgerstat/internal/locale"
	"ledgerstat/internal/log"
	"ledgerstat/internal/report"
	"ledgerstat/internal/services"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"))
	cfg := cli.LoadAndValidateConfig(logger)

	logger.Info("Starting ledgerstat",
		log.FieldOperation, log.OpStartup,
		log.FieldSource, cfg.LedgerSource,
		"sinks", cfg.ReportSinks)

	if err := run(cfg, logger); err != nil {
		logger.Error("Report run failed", log.FieldError, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *log.Logger) error {
	ctx, cancel := cli.SignalContext(context.Background(), logger)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, cfg.RunTimeout)
	defer cancelTimeout()

	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	if err := bcfg.Validate(); err != nil {
		return err
	}

	vocab, rules, err := cli.LoadTables(cfg, logger)
	if err != nil {
		return err
	}

	factory := backend.NewFactory(logger)
	src, err := factory.CreateSource(ctx, bcfg)
	if err != nil {
		return err
	}
	if src.Cleanup != nil {
		defer src.Cleanup()
	}

	sinks, err := factory.CreateSinks(ctx, bcfg)
	if err != nil {
		return err
	}
	fanout := backend.NewFanout(sinks, logger)
	defer fanout.Close()

	// AMQP is optional
	var notifier services.Notifier
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.WithComponent(log.ComponentAMQP).Warn("Failed to initialize AMQP client, continuing without notifications", log.FieldError, err)
		} else {
			defer amqpClient.Close()
			notifier = amqpClient
			logger.WithComponent(log.ComponentAMQP).Info("Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	opts, err := reportOptions(cfg)
	if err != nil {
		return err
	}

	svc := services.NewReportService(
		src.Reader,
		fanout,
		notifier,
		core.NewPipeline(rules, vocab),
		report.NewRenderer(locale.Russian()),
		logger,
	)

	res, err := svc.Run(ctx, opts)
	if err != nil {
		return err
	}
	logger.Info("Report written",
		log.FieldRunID, res.RunID,
		log.FieldMonth, res.Month.String(),
		log.FieldTables, len(res.Tables))
	return nil
}

func reportOptions(cfg *config.Config) (report.Options, error) {
	from, to, err := cfg.ListingWindow()
	if err != nil {
		return report.Options{}, err
	}
	opts := report.Options{Listing: report.Window{From: from, To: to}}
	if cfg.ReportMonth != "" {
		if opts.Month, err = core.ParseMonthKey(cfg.ReportMonth); err != nil {
			return report.Options{}, err
		}
	}
	return opts, nil
}
