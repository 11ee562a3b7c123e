// Package config is the typed view of pcmkctl settings stored in viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/bgdnvk/pcmkctl/internal/pacemaker"
)

// Schema validators selectable with ocf.validator. ValidatorAuto uses
// xmllint when it is installed and the built-in validator otherwise.
const (
	ValidatorAuto    = "auto"
	ValidatorBuiltin = "builtin"
	ValidatorXmllint = "xmllint"
)

// Log formats selectable with log_format.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Viper keys.
const (
	KeyDebug        = "debug"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
	KeyCrmResource  = "pacemaker.crm_resource"
	KeyCrmAttribute = "pacemaker.crm_attribute"
	KeyDaemonDir    = "pacemaker.daemon_dir"
	KeyTimeout      = "pacemaker.timeout"
	KeyValidator    = "ocf.validator"
	KeySchemaDir    = "ocf.schema_dir"
	KeyXmllint      = "ocf.xmllint"
)

// EnvPrefix prefixes environment variables overriding settings, e.g.
// PCMKCTL_PACEMAKER_TIMEOUT.
const EnvPrefix = "PCMKCTL"

// DefaultSchemaDir is where resource-agents installs the OCF RelaxNG schemas.
// Schemas missing there are replaced by the copies built into pcmkctl.
const DefaultSchemaDir = "/usr/share/resource-agents"

// Settings holds all pcmkctl settings.
type Settings struct {
	Debug     bool
	LogLevel  string
	LogFormat string
	Pacemaker pacemaker.Config
	Ocf       OcfSettings
}

// OcfSettings selects how agent metadata is checked against the OCF schemas.
type OcfSettings struct {
	Validator string
	SchemaDir string
	Xmllint   string
}

// SetDefaults registers defaults of every key in v.
func SetDefaults(v *viper.Viper) {
	pcmk := pacemaker.DefaultConfig()
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFormat, LogFormatText)
	v.SetDefault(KeyCrmResource, pcmk.CrmResource)
	v.SetDefault(KeyCrmAttribute, pcmk.CrmAttribute)
	v.SetDefault(KeyDaemonDir, pcmk.DaemonDir)
	v.SetDefault(KeyTimeout, pcmk.Timeout)
	v.SetDefault(KeyValidator, ValidatorAuto)
	v.SetDefault(KeySchemaDir, DefaultSchemaDir)
	v.SetDefault(KeyXmllint, "xmllint")
}

// ConfigureEnv lets PCMKCTL_* environment variables override settings.
func ConfigureEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads settings from v and checks them.
func Load(v *viper.Viper) (Settings, error) {
	s := Settings{
		Debug:     v.GetBool(KeyDebug),
		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: strings.ToLower(v.GetString(KeyLogFormat)),
		Pacemaker: pacemaker.Config{
			CrmResource:  v.GetString(KeyCrmResource),
			CrmAttribute: v.GetString(KeyCrmAttribute),
			DaemonDir:    v.GetString(KeyDaemonDir),
			Timeout:      v.GetDuration(KeyTimeout),
		},
		Ocf: OcfSettings{
			Validator: strings.ToLower(v.GetString(KeyValidator)),
			SchemaDir: v.GetString(KeySchemaDir),
			Xmllint:   v.GetString(KeyXmllint),
		},
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate checks settings for values pcmkctl cannot work with.
func (s Settings) Validate() error {
	switch s.Ocf.Validator {
	case ValidatorBuiltin:
	case ValidatorAuto, ValidatorXmllint:
		if s.Ocf.Xmllint == "" {
			return fmt.Errorf("%s must be set when %s is %q", KeyXmllint, KeyValidator, s.Ocf.Validator)
		}
	default:
		return fmt.Errorf(
			"invalid %s %q, use %q, %q or %q",
			KeyValidator, s.Ocf.Validator, ValidatorAuto, ValidatorBuiltin, ValidatorXmllint,
		)
	}
	switch s.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		return fmt.Errorf("invalid %s %q, use %q or %q", KeyLogFormat, s.LogFormat, LogFormatText, LogFormatJSON)
	}
	if s.Pacemaker.CrmResource == "" {
		return fmt.Errorf("%s must not be empty", KeyCrmResource)
	}
	if s.Pacemaker.Timeout < 0 {
		return fmt.Errorf("%s must not be negative", KeyTimeout)
	}
	return nil
}

type fileSettings struct {
	Debug     bool          `yaml:"debug"`
	LogLevel  string        `yaml:"log_level"`
	LogFormat string        `yaml:"log_format"`
	Pacemaker filePacemaker `yaml:"pacemaker"`
	Ocf       fileOcf       `yaml:"ocf"`
}

type filePacemaker struct {
	CrmResource  string `yaml:"crm_resource"`
	CrmAttribute string `yaml:"crm_attribute"`
	DaemonDir    string `yaml:"daemon_dir"`
	Timeout      string `yaml:"timeout"`
}

type fileOcf struct {
	Validator string `yaml:"validator"`
	SchemaDir string `yaml:"schema_dir"`
	Xmllint   string `yaml:"xmllint"`
}

// YAML renders settings in the config file format.
func (s Settings) YAML() ([]byte, error) {
	return yaml.Marshal(fileSettings{
		Debug:     s.Debug,
		LogLevel:  s.LogLevel,
		LogFormat: s.LogFormat,
		Pacemaker: filePacemaker{
			CrmResource:  s.Pacemaker.CrmResource,
			CrmAttribute: s.Pacemaker.CrmAttribute,
			DaemonDir:    s.Pacemaker.DaemonDir,
			Timeout:      s.Pacemaker.Timeout.String(),
		},
		Ocf: fileOcf(s.Ocf),
	})
}

// DefaultYAML renders the default config file.
func DefaultYAML() ([]byte, error) {
	v := viper.New()
	SetDefaults(v)
	s, err := Load(v)
	if err != nil {
		return nil, err
	}
	body, err := s.YAML()
	if err != nil {
		return nil, err
	}
	header := "# pcmkctl configuration\n# Every key can be overridden by a " + EnvPrefix + "_<SECTION>_<KEY> environment variable.\n"
	return append([]byte(header), body...), nil
}
