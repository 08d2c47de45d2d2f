package model

// AliasConfig is the YAML file listing extra schema aliases:
//
//	columns:
//	  poln: corr
//	metadata:
//	  file: vis
type AliasConfig struct {
	Columns  map[string]string `yaml:"columns"`
	Metadata map[string]string `yaml:"metadata"`
}
