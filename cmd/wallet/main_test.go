package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/nansen-ai/nansen-cli-sub000/internal/model"

	"github.com/stretchr/testify/require"
)

func TestPrintErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, fmt.Errorf("%w: ghost", model.ErrWalletNotFound), true)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.Equal(t, "wallet not found: ghost", resp.Error)
	require.Equal(t, "WALLET_NOT_FOUND", resp.Code)
}

func TestPrintErrorJSONOmitsUnknownCode(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.New("wallet name is required"), true)
	require.JSONEq(t, `{"error":"wallet name is required"}`, buf.String())
}

func TestPrintErrorText(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, model.ErrIncorrectPassword, false)
	require.Equal(t, "error: incorrect password\n", buf.String())
}

func TestJSONOutput(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"nansen-wallet", "--json", "list"}, true},
		{[]string{"nansen-wallet", "export", "-json"}, true},
		{[]string{"nansen-wallet", "list"}, false},
		{[]string{"--json"}, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, jsonOutput(tt.args), "%v", tt.args)
	}
}
