package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/abhisek/mindscope/internal/arbiter"
	"github.com/abhisek/mindscope/internal/assessment"
	"github.com/abhisek/mindscope/internal/llm"
	"github.com/abhisek/mindscope/internal/logging"
	"github.com/abhisek/mindscope/internal/questionbank"
	"github.com/abhisek/mindscope/internal/remote"
	"github.com/abhisek/mindscope/internal/store"
)

// deps are the shared collaborators of the take and serve commands.
type deps struct {
	store   *store.Store
	bank    *questionbank.Bank
	arbiter *arbiter.Arbiter
	// provider is empty when no credential was found.
	provider string
	model    string
}

func (d *deps) Close() error {
	if d.store == nil {
		return nil
	}
	return d.store.Close()
}

// remoteEnabled reports whether reports can come from a provider.
func (d *deps) remoteEnabled() bool {
	return d.provider != ""
}

// mode is the short analysis mode label shown to users.
func (d *deps) mode() string {
	if d.remoteEnabled() {
		return "◆ AI " + d.model
	}
	return "◇ 本地"
}

// notice is the splash disclosure of where answers go.
func (d *deps) notice() string {
	if d.remoteEnabled() {
		return fmt.Sprintf("答案将发送至 %s 生成报告；超时或失败时改用本地分析。答案不会写入本地磁盘。", d.provider)
	}
	return "未配置 AI 服务，所有报告均在本机生成。答案不会写入本地磁盘。"
}

// buildDeps opens the store and wires catalog, bank, provider and arbiter.
// A missing LLM credential is not an error: the arbiter then resolves
// every report locally.
func buildDeps(ctx context.Context, v *viper.Viper) (*deps, error) {
	timeout, err := timeoutFrom(v)
	if err != nil {
		return nil, err
	}

	catalog := assessment.DefaultCatalog()
	if p := v.GetString("catalog"); p != "" {
		if catalog, err = assessment.LoadCatalogFile(p); err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}

	bank := questionbank.Default()
	if p := v.GetString("bank"); p != "" {
		if bank, err = questionbank.LoadFile(p); err != nil {
			return nil, fmt.Errorf("load question bank: %w", err)
		}
	}

	dbPath, err := resolveDBPath(v)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	d := &deps{store: st, bank: bank}

	var analyzer arbiter.Analyzer
	provider, cfg, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	switch {
	case err == nil:
		analyzer = remote.New(provider,
			remote.WithConfig(remote.Config{RequestTimeout: cfg.Timeout}),
			remote.WithCatalog(catalog),
			remote.WithLogger(logging.New("remote")),
		)
		d.provider = cfg.Provider
		d.model = cfg.Model()
		slog.Info("remote analysis enabled", "provider", d.provider, "model", d.model)
	case errors.Is(err, llm.ErrNotConfigured):
		slog.Warn("LLM provider not configured, reports are generated locally", "reason", err)
	default:
		slog.Warn("LLM provider unavailable, reports are generated locally", "error", err)
	}

	d.arbiter = arbiter.New(analyzer, assessment.NewSynthesizer(catalog),
		arbiter.WithTimeout(timeout),
		arbiter.WithLogger(logging.New("arbiter")),
	)
	return d, nil
}
