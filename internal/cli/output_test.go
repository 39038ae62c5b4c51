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
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	data := map[string]string{"result": "logged_out"}
	err := formatter.Success(data)
	require.NoError(t, err)

	var resp CLIResponse
	err = json.Unmarshal(buf.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
}

func TestOutputFormatter_JSONFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "json",
		Writer: buf,
	}

	err := formatter.Failure("Validation failed", map[string][]string{
		"code": {"The code has already been taken."},
	})
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "Validation failed", resp.Error.Message)
	assert.Equal(t, []string{"The code has already been taken."}, resp.Error.Fields["code"])
}

func TestOutputFormatter_TextSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success("Backend reachable")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Backend reachable")
}

func TestOutputFormatter_TextSuccessStringer(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Success(message("Logged out"))
	require.NoError(t, err)
	assert.Equal(t, "Logged out\n", buf.String())
}

func TestOutputFormatter_TextFailure(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Failure("Validation failed", map[string][]string{
		"name": {"The name field is required."},
		"code": {"The code field is required."},
	})
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out := buf.String()
	assert.Contains(t, out, "Error: Validation failed")
	// Field lines come out in sorted key order.
	codeIdx := bytes.Index(buf.Bytes(), []byte("code:"))
	nameIdx := bytes.Index(buf.Bytes(), []byte("name:"))
	assert.Less(t, codeIdx, nameIdx)
}

func TestOutputFormatter_FailureDefaultMessage(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{
		Format: "text",
		Writer: buf,
	}

	err := formatter.Failure("", nil)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "Operation failed")
}

func TestExitError(t *testing.T) {
	t.Run("message_only", func(t *testing.T) {
		err := NewExitError(ExitCommandError, "invalid id")
		assert.Equal(t, "invalid id", err.Error())
		assert.Equal(t, ExitCommandError, GetExitCode(err))
	})

	t.Run("wrapped", func(t *testing.T) {
		cause := errors.New("dial tcp: connection refused")
		err := WrapExitError(ExitCommandError, "health check failed", cause)
		assert.Equal(t, "health check failed: dial tcp: connection refused", err.Error())
		assert.ErrorIs(t, err, cause)
	})

	t.Run("plain_error_defaults_to_failure", func(t *testing.T) {
		assert.Equal(t, ExitFailure, GetExitCode(fmt.Errorf("boom")))
	})

	t.Run("wrapped_exit_error_found_through_chain", func(t *testing.T) {
		inner := NewExitError(ExitCommandError, "inner")
		outer := fmt.Errorf("outer: %w", inner)
		assert.Equal(t, ExitCommandError, GetExitCode(outer))
	})
}
