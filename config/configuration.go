package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type S3Configuration struct {
	URL    string `json:"url" mapstructure:"url" default:""`
	Key    string `json:"key" mapstructure:"key" default:""`
	Secret string `json:"secret" mapstructure:"secret" default:""`
	Region string `json:"region" mapstructure:"region" default:""`
	Secure bool   `json:"secure" mapstructure:"secure" default:"true"`
}

type QAConfiguration struct {
	Root              string          `json:"root" mapstructure:"root" default:"."`
	FieldsDir         string          `json:"fields_dir" mapstructure:"fields_dir" default:"scan_plots_txt"`
	CaltablesDir      string          `json:"caltables_dir" mapstructure:"caltables_dir" default:"final_caltable_txt"`
	MinPartitionBytes int64           `json:"min_partition_bytes" mapstructure:"min_partition_bytes" default:"1000"`
	MaxHeaderLines    int             `json:"max_header_lines" mapstructure:"max_header_lines" default:"50"`
	Workers           int             `json:"workers" mapstructure:"workers" default:"4"`
	Corrs             []string        `json:"corrs" mapstructure:"corrs" default:"RR,LL"`
	AliasFile         string          `json:"alias_file" mapstructure:"alias_file" default:""`
	SpwMap            string          `json:"spw_map" mapstructure:"spw_map" default:""`
	LogLevel          string          `json:"log_level" mapstructure:"log_level" default:"info"`
	LogFormat         string          `json:"log_format" mapstructure:"log_format" default:"text"`
	S3                S3Configuration `json:"s3" mapstructure:"s3" default:""`
}

type HTTPConfiguration struct {
	Host string `json:"host" mapstructure:"host" default:"0.0.0.0"`
	Port string `json:"port" mapstructure:"port" default:"8123"`
}

type Configuration struct {
	QA   QAConfiguration   `json:"qa" mapstructure:"qa" default:""`
	HTTP HTTPConfiguration `json:"http" mapstructure:"http" default:""`
}

var Config *Configuration

func setDefaults(v *viper.Viper) {
	v.SetDefault("qa.root", ".")
	v.SetDefault("qa.fields_dir", "scan_plots_txt")
	v.SetDefault("qa.caltables_dir", "final_caltable_txt")
	v.SetDefault("qa.min_partition_bytes", 1000)
	v.SetDefault("qa.max_header_lines", 50)
	v.SetDefault("qa.workers", 4)
	v.SetDefault("qa.corrs", []string{"RR", "LL"})
	v.SetDefault("qa.alias_file", "")
	v.SetDefault("qa.spw_map", "")
	v.SetDefault("qa.log_level", "info")
	v.SetDefault("qa.log_format", "text")
	v.SetDefault("qa.s3.url", "")
	v.SetDefault("qa.s3.key", "")
	v.SetDefault("qa.s3.secret", "")
	v.SetDefault("qa.s3.region", "")
	v.SetDefault("qa.s3.secure", true)
	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", "8123")
}

// InitConfig loads file (optional) over the defaults. Every key can be
// overridden from the environment, e.g. QAPLOTTER_QA_ROOT.
func InitConfig(file string) error {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("qaplotter")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}
	cfg := &Configuration{}
	if err := v.Unmarshal(cfg); err != nil {
		return err
	}
	Config = cfg
	return nil
}

// FieldsLocation resolves the fields directory against the root. S3
// locations are left untouched.
func (c *QAConfiguration) FieldsLocation() string {
	return c.resolve(c.FieldsDir)
}

func (c *QAConfiguration) CaltablesLocation() string {
	return c.resolve(c.CaltablesDir)
}

func (c *QAConfiguration) resolve(dir string) string {
	if strings.HasPrefix(dir, "s3://") || filepath.IsAbs(dir) {
		return dir
	}
	if strings.HasPrefix(c.Root, "s3://") {
		return strings.TrimSuffix(c.Root, "/") + "/" + dir
	}
	return filepath.Join(c.Root, dir)
}
