package model

// params for Flags
type CommandLineFlags struct {
	Config     *string `json:"config"`
	Root       *string `json:"root"`
	Host       *string `json:"host"`
	Port       *string `json:"port"`
	Field      *string `json:"field"`
	Table      *string `json:"table"`
	Out        *string `json:"out"`
	Where      *string `json:"where"`
	Sort       *string `json:"sort"`
	Corrs      *string `json:"corrs"`
	Query      *string `json:"query"`
	Stdin      *bool   `json:"stdin"`
	Format     *string `json:"format"`
	FieldNames *string `json:"fieldnames"`
}
