package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/KyberNetwork/list-all-transactions/pkg/config"
	"github.com/KyberNetwork/list-all-transactions/pkg/reconciler"
	"github.com/KyberNetwork/list-all-transactions/pkg/utils"
)

const transactionsJSON = `[
  {
    "origTime": "2023-05-17 08:09:10",
    "maxTime": "2023-05-17 09:00:00",
    "method": "tokens.mint",
    "height": "{100,205,310}",
    "hash": "\\xabcd",
    "argument": "{\"addr1\": \"50\", \"addr2\": \"30\"}",
    "count": "3",
    "neighborhood": "0"
  },
  {
    "origTime": "2023-05-17 08:09:10",
    "maxTime": "2023-05-17 09:00:00",
    "method": "ledger.send",
    "height": "{7,8}",
    "hash": "\\x01",
    "argument": "{\"from\": \"addr1\", \"to\": \"addr2\", \"amount\": \"10\", \"symbol\": \"MFX\"}",
    "count": "2",
    "neighborhood": "1"
  },
  {
    "origTime": "2023-05-17 08:09:10",
    "maxTime": "2023-05-17 09:00:00",
    "method": "unknown.op",
    "height": "{1,2}",
    "hash": "\\x02",
    "count": "2",
    "neighborhood": "1"
  }
]`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRun_Stdout(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		TransactionsPath: writeFile(t, dir, "txs.json", transactionsJSON),
		AliasesPath:      writeFile(t, dir, "aliases.json", `{"addr2": "faucet"}`),
	}

	stdout, diag := new(bytes.Buffer), new(bytes.Buffer)
	require.NoError(t, run(cfg, zaptest.NewLogger(t), stdout, diag))

	assert.Equal(t, "205,addr1,,50\n"+
		"205,addr2,faucet,30\n"+
		"310,addr1,,50\n"+
		"310,addr2,faucet,30\n", stdout.String())
	assert.Contains(t, diag.String(), "addr1 -> addr2 (faucet): 10")
	assert.Contains(t, diag.String(), "TOTAL")
}

func TestRun_OutputFile(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		TransactionsPath: writeFile(t, dir, "txs.json", transactionsJSON),
		OutputPath:       filepath.Join(dir, "out.csv"),
		Header:           true,
	}

	stdout, diag := new(bytes.Buffer), new(bytes.Buffer)
	require.NoError(t, run(cfg, zaptest.NewLogger(t), stdout, diag))
	assert.Empty(t, stdout.String())

	got, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, "height,address,alias,amount\n"+
		"205,addr1,,50\n"+
		"205,addr2,,30\n"+
		"310,addr1,,50\n"+
		"310,addr2,,30\n", string(got))
}

func TestRun_FailsWithoutOutput(t *testing.T) {
	dir := t.TempDir()
	broken := `[{"origTime": "2023-05-17 08:09:10", "maxTime": "2023-05-17 09:00:00", "method": "tokens.mint",
  "height": "{1,2}", "hash": "0x01", "argument": "{\"addr1\": \"lots\"}", "neighborhood": "0"}]`
	badHeights := `[{"origTime": "2023-05-17 08:09:10", "maxTime": "2023-05-17 09:00:00", "method": "tokens.mint",
  "height": "{1;2}", "hash": "0x01", "neighborhood": "0"}]`

	tests := []struct {
		name    string
		cfg     *config.Config
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name: "missing transactions file",
			cfg:  &config.Config{TransactionsPath: filepath.Join(dir, "missing.json")},
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, os.ErrNotExist, i...)
			},
		},
		{
			name: "missing aliases file",
			cfg: &config.Config{
				TransactionsPath: writeFile(t, dir, "ok.json", transactionsJSON),
				AliasesPath:      filepath.Join(dir, "missing-aliases.json"),
			},
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, os.ErrNotExist, i...)
			},
		},
		{
			name: "malformed amount",
			cfg:  &config.Config{TransactionsPath: writeFile(t, dir, "broken.json", broken)},
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, reconciler.ErrMalformedArgument, i...)
			},
		},
		{
			name: "malformed heights",
			cfg:  &config.Config{TransactionsPath: writeFile(t, dir, "heights.json", badHeights)},
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, utils.ErrMalformedHeights, i...)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.cfg.OutputPath = filepath.Join(t.TempDir(), "out.csv")
			stdout, diag := new(bytes.Buffer), new(bytes.Buffer)
			err := run(tt.cfg, zaptest.NewLogger(t), stdout, diag)
			tt.wantErr(t, err, tt.name)

			assert.Empty(t, stdout.String())
			assert.Empty(t, diag.String())
			_, statErr := os.Stat(tt.cfg.OutputPath)
			assert.ErrorIs(t, statErr, os.ErrNotExist, "no output file on failure")
		})
	}
}
