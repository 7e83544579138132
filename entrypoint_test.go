package apigw

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/invopop/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gatewayConfig = `
info:
  title: Petstore Gateway
  description: Managed by API Gateway
x-google-backend:
  address: https://backend.run.app
path-defaults:
  x-google-backend:
    address: https://backend.run.app
    path_translation: APPEND_PATH_TO_ADDRESS
path-overrides:
  /pets:
    get:
      operationId: listPets
`

type cliFixture struct {
	dir    string
	input  string
	config string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func newCLIFixture(t *testing.T, input, config string) *cliFixture {
	t.Helper()
	f := &cliFixture{dir: t.TempDir()}
	f.input = filepath.Join(f.dir, "swagger.yaml")
	f.config = filepath.Join(f.dir, "gateway.yaml")
	require.NoError(t, os.WriteFile(f.input, []byte(input), 0o644))
	require.NoError(t, os.WriteFile(f.config, []byte(config), 0o644))
	return f
}

func (f *cliFixture) run(args ...string) error {
	e := NewEntrypoint().WithWriters(&f.stdout, &f.stderr)
	return e.App().Run(append([]string{appName, "generate", "--no-color"}, args...))
}

func TestEntrypoint_Generate(t *testing.T) {
	f := newCLIFixture(t, petstore, gatewayConfig)
	out := filepath.Join(f.dir, "dist", "api.yaml")

	err := f.run("-c", f.config, "-o", out, "--backend-host", "https://forced.run.app", f.input)
	require.NoError(t, err)
	assert.Empty(t, f.stderr.String())
	assert.Equal(t, "[OK] Provided spec '"+f.input+"' successfully converted and saved to "+out+"\n", f.stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	jsonData, err := yaml.YAMLToJSON(data)
	require.NoError(t, err)

	var doc openapi2.T
	require.NoError(t, json.Unmarshal(jsonData, &doc))

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "Petstore Gateway", doc.Info.Title)
	assert.Equal(t, []string{"https"}, doc.Schemes)
	assert.Empty(t, doc.Host)

	item := doc.Paths["/pets/{petId}"]
	require.NotNil(t, item)
	require.NotNil(t, item.Get)
	require.Len(t, item.Get.Parameters, 1)
	assert.Equal(t, "petId", item.Get.Parameters[0].Name)
	assert.Equal(t, "path", item.Get.Parameters[0].In)
	assert.True(t, item.Get.Parameters[0].Required)

	list := doc.Paths["/pets"]
	require.NotNil(t, list)
	require.NotNil(t, list.Get)
	assert.Equal(t, "listPets", list.Get.OperationID)
	assert.Equal(t, "List pets", list.Get.Summary)
	assert.Len(t, list.Get.Responses, 1)
	assert.Contains(t, list.Get.Responses, "200")
}

func TestEntrypoint_DefaultOutputDirectory(t *testing.T) {
	f := newCLIFixture(t, petstore, gatewayConfig)
	outDir := filepath.Join(f.dir, "out")
	require.NoError(t, os.Mkdir(outDir, 0o755))

	require.NoError(t, f.run("-c", f.config, "-o", outDir, "-p", f.input))

	data, err := os.ReadFile(filepath.Join(outDir, DefaultFilename))
	require.NoError(t, err)
	assert.Contains(t, string(data), "description: not found", "responses are preserved with -p")
}

func TestEntrypoint_DebugListsChanges(t *testing.T) {
	f := newCLIFixture(t, petstore, gatewayConfig)

	require.NoError(t, f.run("-c", f.config, "-o", filepath.Join(f.dir, "x.yaml"), "--log-level", "debug", f.input))
	assert.Contains(t, f.stdout.String(), "[DEBUG] multi-type at /definitions/Pet/properties/tag")
	assert.Contains(t, f.stdout.String(), "[DEBUG] unsupported-keyword at /definitions/Pet/properties/extra: removed patternProperties")
}

func TestEntrypoint_Timestamps(t *testing.T) {
	f := newCLIFixture(t, petstore, gatewayConfig)

	require.NoError(t, f.run("-c", f.config, "-o", filepath.Join(f.dir, "x.yaml"), "--timestamps", f.input))
	assert.Regexp(t, `^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} \[OK\] Provided spec`, f.stdout.String())
}

func TestEntrypoint_Failures(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		args     func(f *cliFixture) []string
		sentinel error
		message  string
	}{
		{
			name:     "input not found",
			input:    petstore,
			args:     func(f *cliFixture) []string { return []string{"-c", f.config, filepath.Join(f.dir, "missing.yaml")} },
			sentinel: ErrInputNotFound,
			message:  msgInputNotFound,
		},
		{
			name:     "no input argument",
			input:    petstore,
			args:     func(f *cliFixture) []string { return []string{"-c", f.config} },
			sentinel: ErrInputNotFound,
			message:  msgInputNotFound,
		},
		{
			name:     "config not found",
			input:    petstore,
			args:     func(f *cliFixture) []string { return []string{"-c", filepath.Join(f.dir, "missing.yaml"), f.input} },
			sentinel: ErrConfigNotFound,
			message:  msgConfigNotFound,
		},
		{
			name:     "no config flag",
			input:    petstore,
			args:     func(f *cliFixture) []string { return []string{f.input} },
			sentinel: ErrConfigNotFound,
			message:  msgConfigNotFound,
		},
		{
			name:     "config checked before parsing input",
			input:    "swagger: [2.0\n",
			args:     func(f *cliFixture) []string { return []string{"-c", filepath.Join(f.dir, "missing.yaml"), f.input} },
			sentinel: ErrConfigNotFound,
			message:  msgConfigNotFound,
		},
		{
			name:     "invalid version",
			input:    "swagger: \"1.0\"\npaths: {}\n",
			args:     func(f *cliFixture) []string { return []string{"-c", f.config, f.input} },
			sentinel: ErrInvalidInput,
			message:  "not a valid Swagger 2.0 spec file",
		},
		{
			name:     "malformed input",
			input:    "swagger: [2.0\n",
			args:     func(f *cliFixture) []string { return []string{"-c", f.config, f.input} },
			sentinel: ErrParse,
			message:  "parse error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newCLIFixture(t, tc.input, gatewayConfig)

			err := f.run(tc.args(f)...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.sentinel), "got %v", err)
			assert.Contains(t, f.stderr.String(), "[ERROR] ")
			assert.Contains(t, f.stderr.String(), tc.message)
			assert.NotContains(t, f.stdout.String(), "successfully converted")
		})
	}
}

func TestEnvVars(t *testing.T) {
	assert.Equal(t, []string{"APIGW_BACKEND_HOST"}, envVars("backend-host"))
	assert.Equal(t, []string{"APIGW_PRESERVE_RESPONSES"}, envVars("preserve-responses"))
}
