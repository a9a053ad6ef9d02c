package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string     `yaml:"env" env-default:"local"`
	HTTP     HTTPServer `yaml:"http"`
	Postgres Postgres   `yaml:"postgres"`
	Account  Account    `yaml:"account"`
	Message  Message    `yaml:"message"`
}

type HTTPServer struct {
	Port            int           `yaml:"port" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"5s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"10s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type Postgres struct {
	Host           string        `yaml:"host" env-required:"true"`
	Port           int           `yaml:"port" env-default:"5432"`
	User           string        `yaml:"user" env-required:"true"`
	Password       string        `yaml:"password" env-required:"true"`
	DBName         string        `yaml:"dbname" env-required:"true"`
	SSLMode        string        `yaml:"sslmode" env-default:"disable"`
	MaxConns       int32         `yaml:"max_conns" env-default:"10"`
	MinConns       int32         `yaml:"min_conns" env-default:"2"`
	ConnectTimeout time.Duration `yaml:"connect_timeout" env-default:"5s"`
}

type Account struct {
	MinPasswordLen int `yaml:"min_password_len" env-default:"4"`
}

type Message struct {
	MaxTextLen int `yaml:"max_text_len" env-default:"255"`
	// FailOpenReads governs the read-path policy: when set, storage errors on
	// reads are logged and converted to empty results instead of propagating.
	FailOpenReads bool `yaml:"fail_open_reads" env-default:"true"`
}

func MustLoad() *Config {
	// a local .env never overrides variables already set in the environment
	_ = godotenv.Load()

	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		panic("config file does not exist: " + path)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		panic("failed to read config: " + err.Error())
	}

	return &cfg
}

var configPath string

func init() {
	// --config
	flag.StringVar(&configPath, "config", "", "path to config file")
}

func fetchConfigPath() string {
	if !flag.Parsed() {
		flag.Parse()
	}

	res := configPath
	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
