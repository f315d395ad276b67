package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/KyberNetwork/list-all-transactions/pkg/config"
	"github.com/KyberNetwork/list-all-transactions/pkg/logging"
	"github.com/KyberNetwork/list-all-transactions/pkg/reconciler"
	"github.com/KyberNetwork/list-all-transactions/pkg/reconciler/data"
	"github.com/KyberNetwork/list-all-transactions/pkg/report"
)

func main() {
	cfg, err := config.Parse(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	l, err := logging.New(cfg.LogLevel, cfg.LogEncoding)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer l.Sync() // flushes buffer, if any

	if err := run(cfg, l, os.Stdout, os.Stderr); err != nil {
		l.Error("could not list duplicated transactions", zap.Error(err))
		l.Sync()
		os.Exit(1)
	}
}

// run loads, normalizes and aggregates everything before writing anything,
// so a malformed input produces no output at all.
func run(cfg *config.Config, l *zap.Logger, stdout, diag io.Writer) error {
	reconciler.UseLogger(l)
	log := l.Sugar()
	log.Debugw("config", "transactions", cfg.TransactionsPath, "aliases", cfg.AliasesPath, "output", cfg.OutputPath)

	raws, err := data.ReadTransactions(cfg.TransactionsPath)
	if err != nil {
		return err
	}
	log.Infow("loaded transactions", "count", len(raws))

	txs, err := reconciler.NormalizeAll(raws)
	if err != nil {
		return err
	}

	var aliases reconciler.AliasMap
	if cfg.AliasesPath != "" {
		m, err := data.ReadAliases(cfg.AliasesPath)
		if err != nil {
			return err
		}
		aliases = reconciler.AliasMap(m)
		log.Infow("loaded aliases", "count", len(aliases))
	}

	result, err := reconciler.Aggregate(txs, aliases)
	if err != nil {
		return err
	}

	out := new(bytes.Buffer)
	if err := report.WriteMintCSV(out, result.MintEntries(), cfg.Header); err != nil {
		return fmt.Errorf("could not render csv: %w", err)
	}
	summary := new(bytes.Buffer)
	if err := report.WriteSummary(summary, result); err != nil {
		return fmt.Errorf("could not render summary: %w", err)
	}

	if cfg.OutputPath != "" {
		if err := os.WriteFile(cfg.OutputPath, out.Bytes(), 0666); err != nil {
			return err
		}
		log.Infow("wrote csv", "path", cfg.OutputPath, "bytes", out.Len())
	} else if _, err := stdout.Write(out.Bytes()); err != nil {
		return err
	}
	_, err = diag.Write(summary.Bytes())
	return err
}
