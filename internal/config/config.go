package config

import "github.com/caarlos0/env/v11"

type Config struct {
	Addr              string `env:"ADDR"                envDefault:":8080"`
	CompletionAPIKey  string `env:"HUGGINGFACE_API_KEY"`
	CompletionBaseURL string `env:"COMPLETION_BASE_URL" envDefault:"https://router.huggingface.co/v1"`
	CompletionModel   string `env:"COMPLETION_MODEL"    envDefault:"Qwen/Qwen2.5-72B-Instruct:fastest"`
}

func LoadConfig() Config {
	var cfg Config
	env.Must(cfg, env.Parse(&cfg))
	return cfg
}
