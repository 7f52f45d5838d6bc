package cli

import (
	stderrors "errors"
	"fmt"
	"go/token"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/toyz/switchyard/internal/errors"
	"github.com/toyz/switchyard/internal/generator"
	"github.com/toyz/switchyard/internal/utils"
)

const (
	// ConfigName is the base name of the config file searched for
	ConfigName = "switchyard"

	// EnvPrefix prefixes every environment variable override
	EnvPrefix = "SWITCHYARD"

	// DefaultEnvFile is loaded when present and no env file is given
	DefaultEnvFile = ".env"
)

// Config holds the configuration for the CLI generator
type Config struct {
	// RoutesDir is the root scanned for route handlers
	RoutesDir string `mapstructure:"routes_dir" validate:"required"`

	// GuardsDir is the root scanned for guards; empty means no guards
	GuardsDir string `mapstructure:"guards_dir"`

	// Output is the generated file
	Output string `mapstructure:"output" validate:"required,endswith=.go"`

	Package  string `mapstructure:"package" validate:"required,goident"`
	FuncName string `mapstructure:"func_name" validate:"required,goident"`

	// Module overrides the module path read from go.mod
	Module string `mapstructure:"module"`

	RuntimeImport string `mapstructure:"runtime_import" validate:"required"`
	StateType     string `mapstructure:"state_type" validate:"required"`
	StateImport   string `mapstructure:"state_import"`

	IndexFiles          []string `mapstructure:"index_files" validate:"dive,required"`
	StrictGuards        bool     `mapstructure:"strict_guards"`
	AllowGuardShadowing bool     `mapstructure:"allow_guard_shadowing"`

	// ConfigFile is the config file that was read, if any
	ConfigFile string `mapstructure:"-"`
}

// LoadOptions tells LoadConfig where to look
type LoadOptions struct {
	ConfigFile string         // explicit config file; must exist when set
	EnvFile    string         // explicit .env file; must exist when set
	Dir        string         // directory searched for the config file and .env, defaults to the working directory
	Flags      *pflag.FlagSet // command-line overrides, matched by key with dashes
}

// SetDefaults registers the default value of every key
func SetDefaults(v *viper.Viper) {
	v.SetDefault("routes_dir", "routes")
	v.SetDefault("guards_dir", "guards")
	v.SetDefault("output", generator.DefaultOutputFile)
	v.SetDefault("package", generator.DefaultPackage)
	v.SetDefault("func_name", generator.DefaultFuncName)
	v.SetDefault("module", "")
	v.SetDefault("runtime_import", generator.DefaultRuntimeImport)
	v.SetDefault("state_type", generator.DefaultStateType)
	v.SetDefault("state_import", "")
	v.SetDefault("index_files", utils.DefaultIndexFiles)
	v.SetDefault("strict_guards", false)
	v.SetDefault("allow_guard_shadowing", false)
}

// LoadConfig merges defaults, the config file, the env file, SWITCHYARD_*
// variables and flags, in increasing precedence. Relative directories are
// resolved against the config file's directory, or Dir without one.
func LoadConfig(opts LoadOptions) (*Config, error) {
	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, errors.WrapConfigurationError("locate", err)
		}
		dir = wd
	}

	if err := loadEnvFile(dir, opts.EnvFile); err != nil {
		return nil, err
	}

	v := viper.New()
	SetDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(dir)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !stderrors.As(err, &notFound) {
			return nil, errors.WrapConfigurationError("read", err).
				WithLocation(errors.SourceLocation{File: opts.ConfigFile})
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if opts.Flags != nil {
		if err := bindFlags(v, opts.Flags); err != nil {
			return nil, errors.WrapConfigurationError("bind", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.WrapConfigurationError("decode", err)
	}

	base := dir
	if used := v.ConfigFileUsed(); used != "" {
		cfg.ConfigFile = used
		base = filepath.Dir(used)
	}
	cfg.resolvePaths(base)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadEnvFile(dir, envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return errors.WrapConfigurationError("load env file for", err).
				WithLocation(errors.SourceLocation{File: envFile})
		}
		return nil
	}

	path := filepath.Join(dir, DefaultEnvFile)
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return errors.WrapConfigurationError("load env file for", err).
			WithLocation(errors.SourceLocation{File: path})
	}
	return nil
}

// bindFlags binds every flag whose name matches a config key
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var bindErr error
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if !isConfigKey(key) {
			return
		}
		if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
			bindErr = err
		}
	})
	return bindErr
}

func isConfigKey(key string) bool {
	switch key {
	case "routes_dir", "guards_dir", "output", "package", "func_name", "module",
		"runtime_import", "state_type", "state_import", "index_files",
		"strict_guards", "allow_guard_shadowing":
		return true
	}
	return false
}

func (c *Config) resolvePaths(base string) {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.RoutesDir = resolve(c.RoutesDir)
	c.GuardsDir = resolve(c.GuardsDir)
	c.Output = resolve(c.Output)
}

var configValidator = newConfigValidator()

func newConfigValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("goident", func(fl validator.FieldLevel) bool {
		return token.IsIdentifier(fl.Field().String())
	})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the configuration, reporting every invalid key
func (c *Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.WrapConfigurationError("validate", err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describeFieldError(fe))
	}
	result := errors.Newf(errors.ConfigurationErrorCode, "invalid configuration: %s", strings.Join(problems, "; "))
	if c.ConfigFile != "" {
		result.WithLocation(errors.SourceLocation{File: c.ConfigFile})
	}
	return result.WithSuggestion(fmt.Sprintf("Set keys in %s.yaml, as %s_* variables or as flags", ConfigName, EnvPrefix))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "goident":
		return fmt.Sprintf("%s %q is not a Go identifier", fe.Field(), fe.Value())
	case "endswith":
		return fmt.Sprintf("%s must end with %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
