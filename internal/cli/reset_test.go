package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/focusmode/focusmode/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTemporaryPasswordMinimumLength(t *testing.T) {
	t.Parallel()

	password, err := generateTemporaryPassword(4)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != 8 {
		t.Fatalf("generateTemporaryPassword minimum len = %d, want 8", len(password))
	}
}

func TestGenerateTemporaryPasswordAlphabet(t *testing.T) {
	t.Parallel()

	password, err := generateTemporaryPassword(24)
	if err != nil {
		t.Fatalf("generateTemporaryPassword returned error: %v", err)
	}
	if len(password) != 24 {
		t.Fatalf("generateTemporaryPassword len = %d, want 24", len(password))
	}

	for _, char := range password {
		if !strings.ContainsRune(security.ReadableAlphabet, char) {
			t.Fatalf("password %q contains char %q outside alphabet", password, char)
		}
	}
}

type recordingResetter struct {
	email    string
	password string
	err      error
}

func (resetter *recordingResetter) ResetPassword(_ context.Context, email string, password string) error {
	resetter.email = email
	resetter.password = password
	return resetter.err
}

func scriptedPrompt(answers ...string) PasswordPrompt {
	return func(string) (string, error) {
		if len(answers) == 0 {
			return "", io.EOF
		}
		answer := answers[0]
		answers = answers[1:]
		return answer, nil
	}
}

func TestResetPasswordPromptsTwice(t *testing.T) {
	resetter := &recordingResetter{}
	var out bytes.Buffer

	err := RunResetPasswordCommand(context.Background(), resetter, " ada@example.com ", ResetPasswordOptions{
		Prompt: scriptedPrompt("newsecret", "newsecret"),
		Out:    &out,
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", resetter.email)
	assert.Equal(t, "newsecret", resetter.password)
	assert.Contains(t, out.String(), "Password reset successful")
	assert.NotContains(t, out.String(), "newsecret")
}

func TestResetPasswordRejectsMismatch(t *testing.T) {
	resetter := &recordingResetter{}

	err := RunResetPasswordCommand(context.Background(), resetter, "ada@example.com", ResetPasswordOptions{
		Prompt: scriptedPrompt("newsecret", "other"),
	})
	assert.EqualError(t, err, "passwords do not match")
	assert.Empty(t, resetter.email, "nothing may be stored on mismatch")
}

func TestResetPasswordGeneratesTemporaryPassword(t *testing.T) {
	resetter := &recordingResetter{}
	var out bytes.Buffer

	err := RunResetPasswordCommand(context.Background(), resetter, "ada@example.com", ResetPasswordOptions{Generate: true, Out: &out})
	require.NoError(t, err)
	assert.Len(t, resetter.password, 12)
	assert.Contains(t, out.String(), "Temporary password: "+resetter.password)
}

func TestResetPasswordValidatesEmailAndWrapsErrors(t *testing.T) {
	resetter := &recordingResetter{err: errors.New("not found")}

	assert.Error(t, RunResetPasswordCommand(context.Background(), resetter, "", ResetPasswordOptions{Generate: true}))
	assert.Error(t, RunResetPasswordCommand(context.Background(), resetter, "not-an-email", ResetPasswordOptions{Generate: true}))

	err := RunResetPasswordCommand(context.Background(), resetter, "ada@example.com", ResetPasswordOptions{Generate: true})
	assert.ErrorContains(t, err, "reset password for ada@example.com")
}

func TestTerminalPromptReadsLinesFromPipe(t *testing.T) {
	reader, writer, err := os.Pipe()
	require.NoError(t, err)
	defer reader.Close()

	_, err = writer.WriteString("first\r\nsecond")
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	prompt := TerminalPrompt(reader, io.Discard)
	first, err := prompt("> ")
	require.NoError(t, err)
	assert.Equal(t, "first", first)
	second, err := prompt("> ")
	require.NoError(t, err)
	assert.Equal(t, "second", second)
	_, err = prompt("> ")
	assert.ErrorIs(t, err, io.EOF)
}
