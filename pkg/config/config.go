package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/doodlesbykumbi/registrar/pkg/permission"
	"github.com/doodlesbykumbi/registrar/pkg/store"
	"github.com/doodlesbykumbi/registrar/pkg/university"
)

const (
	DefaultConfigPath = "/etc/registrar"
	ConfigFileName    = "registrar.yml"
	EnvPrefix         = "REGISTRAR"
)

// Attribute sources
const (
	SourceDefault     = "default"
	SourceFile        = "file"
	SourceEnvironment = "environment"
)

// Principal is a login account declared in configuration.
type Principal struct {
	Name   string          `yaml:"name" json:"name" validate:"required"`
	Secret string          `yaml:"secret" json:"-" validate:"required"`
	Role   permission.Role `yaml:"role" json:"role" validate:"login_role"`
}

// RegistrarConfig holds all registrar configuration settings
type RegistrarConfig struct {
	DBHost     string `yaml:"db_host" json:"db_host" validate:"required"`
	DBPort     int    `yaml:"db_port" json:"db_port" validate:"min=1,max=65535"`
	DBUser     string `yaml:"db_user" json:"db_user" validate:"required"`
	DBPassword string `yaml:"db_password" json:"-"`
	DBCatalog  string `yaml:"db_catalog" json:"db_catalog" validate:"required"`
	DBSSLMode  string `yaml:"db_sslmode" json:"db_sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`

	// TermSemester and TermYear are the term students register into
	TermSemester string `yaml:"term_semester" json:"term_semester" validate:"oneof=Spring Summer Fall"`
	TermYear     string `yaml:"term_year" json:"term_year" validate:"numeric,len=4"`

	LogLevel string `yaml:"log_level" json:"log_level" validate:"oneof=debug info warn error"`

	Principals []Principal `yaml:"principals" json:"principals" validate:"dive"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// newDefault returns a config with default values
func newDefault() *RegistrarConfig {
	return &RegistrarConfig{
		DBHost:       "localhost",
		DBPort:       5432,
		DBUser:       "postgres",
		DBCatalog:    "university",
		DBSSLMode:    "disable",
		TermSemester: university.DefaultTerm.Semester,
		TermYear:     university.DefaultTerm.Year,
		LogLevel:     "info",
		Principals: []Principal{
			{Name: "brown", Secret: "brown123", Role: permission.RoleStaff},
			{Name: "grey", Secret: "grey123", Role: permission.RoleStudent},
		},
		sources: make(map[string]string),
	}
}

// fileConfig mirrors RegistrarConfig with optional fields so a value
// present in the file can be told apart from one left out.
type fileConfig struct {
	DBHost       *string     `yaml:"db_host"`
	DBPort       *int        `yaml:"db_port"`
	DBUser       *string     `yaml:"db_user"`
	DBPassword   *string     `yaml:"db_password"`
	DBCatalog    *string     `yaml:"db_catalog"`
	DBSSLMode    *string     `yaml:"db_sslmode"`
	TermSemester *string     `yaml:"term_semester"`
	TermYear     *string     `yaml:"term_year"`
	LogLevel     *string     `yaml:"log_level"`
	Principals   []Principal `yaml:"principals"`
}

// envConfig is filled by envconfig. Unset variables leave fields nil.
// PrincipalList has a pointer-receiver Decode, so it is held by value.
type envConfig struct {
	DBHost       *string       `envconfig:"DB_HOST"`
	DBPort       *int          `envconfig:"DB_PORT"`
	DBUser       *string       `envconfig:"DB_USER"`
	DBPassword   *string       `envconfig:"DB_PASSWORD"`
	DBCatalog    *string       `envconfig:"DB_CATALOG"`
	DBSSLMode    *string       `envconfig:"DB_SSLMODE"`
	TermSemester *string       `envconfig:"TERM_SEMESTER"`
	TermYear     *string       `envconfig:"TERM_YEAR"`
	LogLevel     *string       `envconfig:"LOG_LEVEL"`
	Principals   PrincipalList `envconfig:"PRINCIPALS"`
}

// PrincipalList decodes name:secret:role entries separated by commas.
type PrincipalList []Principal

// Decode implements envconfig.Decoder.
func (l *PrincipalList) Decode(value string) error {
	var out PrincipalList
	for _, entry := range splitAndTrim(value) {
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return fmt.Errorf("principal %q: want name:secret:role", entry)
		}
		role, err := permission.RoleString(parts[2])
		if err != nil {
			return fmt.Errorf("principal %q: %w", parts[0], err)
		}
		out = append(out, Principal{Name: parts[0], Secret: parts[1], Role: role})
	}
	*l = out
	return nil
}

// Load loads configuration from file and environment variables
// Environment variables take precedence over file values
func Load() (*RegistrarConfig, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = SourceDefault
	}

	configPath := os.Getenv(EnvPrefix + "_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.apply(SourceFile, file.values())
	}

	var env envConfig
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	config.apply(SourceEnvironment, env.values())

	return config, nil
}

func attributeNames() []string {
	return []string{
		"db_host", "db_port", "db_user", "db_password", "db_catalog",
		"db_sslmode", "term_semester", "term_year", "log_level", "principals",
	}
}

// layer is one source's view of the settable attributes.
type layer struct {
	DBHost, DBUser, DBPassword, DBCatalog, DBSSLMode *string
	TermSemester, TermYear, LogLevel                 *string
	DBPort                                           *int
	Principals                                       []Principal
}

func (f fileConfig) values() layer {
	return layer{
		DBHost: f.DBHost, DBUser: f.DBUser, DBPassword: f.DBPassword,
		DBCatalog: f.DBCatalog, DBSSLMode: f.DBSSLMode,
		TermSemester: f.TermSemester, TermYear: f.TermYear, LogLevel: f.LogLevel,
		DBPort:     f.DBPort,
		Principals: f.Principals,
	}
}

func (e envConfig) values() layer {
	l := layer{
		DBHost: e.DBHost, DBUser: e.DBUser, DBPassword: e.DBPassword,
		DBCatalog: e.DBCatalog, DBSSLMode: e.DBSSLMode,
		TermSemester: e.TermSemester, TermYear: e.TermYear, LogLevel: e.LogLevel,
		DBPort:     e.DBPort,
		Principals: e.Principals,
	}
	return l
}

func (c *RegistrarConfig) apply(source string, l layer) {
	set := func(name string, dst *string, v *string) {
		if v != nil {
			*dst = *v
			c.sources[name] = source
		}
	}
	set("db_host", &c.DBHost, l.DBHost)
	set("db_user", &c.DBUser, l.DBUser)
	set("db_password", &c.DBPassword, l.DBPassword)
	set("db_catalog", &c.DBCatalog, l.DBCatalog)
	set("db_sslmode", &c.DBSSLMode, l.DBSSLMode)
	set("term_semester", &c.TermSemester, l.TermSemester)
	set("term_year", &c.TermYear, l.TermYear)
	set("log_level", &c.LogLevel, l.LogLevel)

	if l.DBPort != nil {
		c.DBPort = *l.DBPort
		c.sources["db_port"] = source
	}
	if len(l.Principals) > 0 {
		c.Principals = l.Principals
		c.sources["principals"] = source
	}
}

// ConfigFilePath returns the path to the config file
func (c *RegistrarConfig) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *RegistrarConfig) Source(name string) string {
	if c.sources == nil {
		return SourceDefault
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return SourceDefault
}

// Store returns the connection settings for the maintenance database. The
// catalog is selected separately once connected.
func (c *RegistrarConfig) Store() store.Config {
	return store.Config{
		Host:     c.DBHost,
		Port:     c.DBPort,
		User:     c.DBUser,
		Password: c.DBPassword,
		SSLMode:  c.DBSSLMode,
	}
}

// Term returns the registration term.
func (c *RegistrarConfig) Term() university.Term {
	return university.Term{Semester: c.TermSemester, Year: c.TermYear}
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *RegistrarConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("login_role", func(fl validator.FieldLevel) bool {
		role, ok := fl.Field().Interface().(permission.Role)
		return ok && (role == permission.RoleStaff || role == permission.RoleStudent)
	})
	return v
}

// Validate validates the configuration
func (c *RegistrarConfig) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q check (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}

// Attributes returns all configuration attributes with their values and sources
func (c *RegistrarConfig) Attributes() []Attribute {
	password := ""
	if c.DBPassword != "" {
		password = "********"
	}
	principals := make([]string, len(c.Principals))
	for i, p := range c.Principals {
		principals[i] = fmt.Sprintf("%s(%s)", p.Name, p.Role)
	}

	return []Attribute{
		{Name: "db_host", Value: c.DBHost, Source: c.Source("db_host")},
		{Name: "db_port", Value: strconv.Itoa(c.DBPort), Source: c.Source("db_port")},
		{Name: "db_user", Value: c.DBUser, Source: c.Source("db_user")},
		{Name: "db_password", Value: password, Source: c.Source("db_password")},
		{Name: "db_catalog", Value: c.DBCatalog, Source: c.Source("db_catalog")},
		{Name: "db_sslmode", Value: c.DBSSLMode, Source: c.Source("db_sslmode")},
		{Name: "term_semester", Value: c.TermSemester, Source: c.Source("term_semester")},
		{Name: "term_year", Value: c.TermYear, Source: c.Source("term_year")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
		{Name: "principals", Value: strings.Join(principals, ","), Source: c.Source("principals")},
	}
}

// FormatText returns a text representation of the configuration
func (c *RegistrarConfig) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-20s %-40s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *RegistrarConfig) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
