package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/switchyard/internal/errors"
	"github.com/toyz/switchyard/internal/generator"
)

func TestLoadConfig_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(LoadOptions{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "routes"), cfg.RoutesDir)
	assert.Equal(t, filepath.Join(dir, "guards"), cfg.GuardsDir)
	assert.Equal(t, filepath.Join(dir, generator.DefaultOutputFile), cfg.Output)
	assert.Equal(t, generator.DefaultPackage, cfg.Package)
	assert.Equal(t, generator.DefaultFuncName, cfg.FuncName)
	assert.Equal(t, generator.DefaultStateType, cfg.StateType)
	assert.Equal(t, []string{"doc.go"}, cfg.IndexFiles)
	assert.False(t, cfg.StrictGuards)
	assert.Empty(t, cfg.ConfigFile)
}

func TestLoadConfig_File(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"switchyard.yaml": `routes_dir: api/routes
guards_dir: api/guards
output: api/routes_gen.go
package: api
state_type: "*app.State"
state_import: example.com/app/internal/app
strict_guards: true
index_files: [doc.go, mod.go]
`,
	})

	cfg, err := LoadConfig(LoadOptions{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "switchyard.yaml"), cfg.ConfigFile)
	assert.Equal(t, filepath.Join(dir, "api", "routes"), cfg.RoutesDir)
	assert.Equal(t, filepath.Join(dir, "api", "routes_gen.go"), cfg.Output)
	assert.Equal(t, "api", cfg.Package)
	assert.Equal(t, "*app.State", cfg.StateType)
	assert.True(t, cfg.StrictGuards)
	assert.Equal(t, []string{"doc.go", "mod.go"}, cfg.IndexFiles)
}

func TestLoadConfig_ExplicitFileResolvesAgainstItsDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"config/custom.yaml": "routes_dir: ../handlers\n",
	})

	cfg, err := LoadConfig(LoadOptions{ConfigFile: filepath.Join(dir, "config", "custom.yaml"), Dir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "handlers"), cfg.RoutesDir)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(LoadOptions{ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
}

func TestLoadConfig_Precedence(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"switchyard.yaml": "package: fromfile\nfunc_name: FromFile\nstate_type: FileState\n",
		".env":            "SWITCHYARD_FUNC_NAME=FromDotEnv\nSWITCHYARD_STATE_TYPE=DotEnvState\n",
	})
	t.Setenv("SWITCHYARD_STATE_TYPE", "EnvState")
	// godotenv writes straight to the process environment
	t.Cleanup(func() { os.Unsetenv("SWITCHYARD_FUNC_NAME") })

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("package", "", "")
	flags.String("unrelated", "", "")
	require.NoError(t, flags.Parse([]string{"--package=fromflag"}))

	cfg, err := LoadConfig(LoadOptions{Dir: dir, Flags: flags})
	require.NoError(t, err)

	assert.Equal(t, "fromflag", cfg.Package)
	assert.Equal(t, "FromDotEnv", cfg.FuncName)
	// variables already in the environment win over the .env file
	assert.Equal(t, "EnvState", cfg.StateType)
}

func TestLoadConfig_UnchangedFlagKeepsFileValue(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"switchyard.yaml": "package: fromfile\n"})

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("package", "", "")
	require.NoError(t, flags.Parse(nil))

	cfg, err := LoadConfig(LoadOptions{Dir: dir, Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, "fromfile", cfg.Package)
}

func TestLoadConfig_MissingEnvFile(t *testing.T) {
	_, err := LoadConfig(LoadOptions{Dir: t.TempDir(), EnvFile: filepath.Join(t.TempDir(), "missing.env")})
	require.Error(t, err)
	assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			RoutesDir:     "routes",
			Output:        "routes_gen.go",
			Package:       "main",
			FuncName:      "RegisterRoutes",
			RuntimeImport: generator.DefaultRuntimeImport,
			StateType:     "any",
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{"missing routes dir", func(c *Config) { c.RoutesDir = "" }, "routes_dir is required"},
		{"bad package", func(c *Config) { c.Package = "my-pkg" }, `package "my-pkg" is not a Go identifier`},
		{"bad func name", func(c *Config) { c.FuncName = "Register Routes" }, "func_name"},
		{"output not go", func(c *Config) { c.Output = "routes.txt" }, "output must end with .go"},
		{"empty index file", func(c *Config) { c.IndexFiles = []string{""} }, "index_files"},
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.ConfigurationErrorCode, errors.CodeOf(err))
			assert.Contains(t, err.Error(), tt.message)
			assert.NotEmpty(t, errors.SuggestionsOf(err))
		})
	}
}
