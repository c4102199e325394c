package cli

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
)

func newTestFlagSet(def string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("email", def, "")
	return fs
}

func TestResolveString_FlagWins(t *testing.T) {
	t.Setenv("TEST_RESOLVE_EMAIL", "env@example.com")
	fs := newTestFlagSet("")
	_ = fs.Set("email", "flag@example.com")

	got := resolveString(fs, "email", "TEST_RESOLVE_EMAIL", "profile@example.com", "flag@example.com")
	assert.Equal(t, "flag@example.com", got)
}

func TestResolveString_EnvBeatsProfile(t *testing.T) {
	t.Setenv("TEST_RESOLVE_EMAIL", "env@example.com")
	fs := newTestFlagSet("")

	got := resolveString(fs, "email", "TEST_RESOLVE_EMAIL", "profile@example.com", "")
	assert.Equal(t, "env@example.com", got)
}

func TestResolveString_ProfileBeatsDefault(t *testing.T) {
	t.Setenv("TEST_RESOLVE_EMAIL", "")
	fs := newTestFlagSet("default@example.com")

	got := resolveString(fs, "email", "TEST_RESOLVE_EMAIL", "profile@example.com", "default@example.com")
	assert.Equal(t, "profile@example.com", got)
}

func TestResolveString_FallsBackToDefault(t *testing.T) {
	t.Setenv("TEST_RESOLVE_EMAIL", "")
	fs := newTestFlagSet("default@example.com")

	got := resolveString(fs, "email", "TEST_RESOLVE_EMAIL", "", "default@example.com")
	assert.Equal(t, "default@example.com", got)
}

func TestValidateBaseURL(t *testing.T) {
	assert.NoError(t, validateBaseURL("https://cloud.cdata.com/api"))
	assert.NoError(t, validateBaseURL("http://localhost:8080"))
	assert.Error(t, validateBaseURL(""))
	assert.Error(t, validateBaseURL("cloud.cdata.com/api"))
	assert.Error(t, validateBaseURL("ftp://cloud.cdata.com"))
}

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, validateOutputFormat(""))
	assert.NoError(t, validateOutputFormat("table"))
	assert.NoError(t, validateOutputFormat("json"))
	assert.NoError(t, validateOutputFormat("csv"))
	assert.Error(t, validateOutputFormat("xml"))
}
