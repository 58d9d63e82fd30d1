package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.SuccessWithRun("run-1", map[string]string{"result": "success"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "run-1", resp.RunID)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	details := map[string]string{"trials": "10"}
	require.NoError(t, formatter.Error("TRIAL_LIMIT", "too many trials", details))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "TRIAL_LIMIT", resp.Error.Code)
	assert.Equal(t, "too many trials", resp.Error.Message)
	assert.NotNil(t, resp.Error.Details)
}

func TestOutputFormatter_Text(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Success("all good"))
	require.NoError(t, formatter.Error("E_CONFIG", "bad window", nil))

	assert.Equal(t, "all good\nError [E_CONFIG]: bad window\n", buf.String())
}

func TestExitError(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"nil", nil, ExitSuccess, ""},
		{"plain", base, ExitFailure, "boom"},
		{"exit", NewExitError(ExitCommandError, "usage"), ExitCommandError, "usage"},
		{"wrapped", WrapExitError(ExitFailure, "generation failed", base), ExitFailure, "generation failed: boom"},
		{"nested", fmt.Errorf("outer: %w", NewExitError(ExitCommandError, "inner")), ExitCommandError, "outer: inner"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, GetExitCode(tt.err))
			if tt.err != nil {
				assert.Equal(t, tt.msg, tt.err.Error())
			}
		})
	}

	assert.ErrorIs(t, WrapExitError(ExitFailure, "x", base), base)
}
