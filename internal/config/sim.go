package config

import "github.com/caarlos0/env/v11"

type SimConfig struct {
	BaseURL     string `env:"SIM_BASE_URL" envDefault:"http://localhost:8080"`
	Parties     int    `env:"SIM_PARTIES" envDefault:"50"`
	MaxSize     int    `env:"SIM_MAX_PARTY_SIZE" envDefault:"6"`
	ArrivalMS   int    `env:"SIM_ARRIVAL_MS" envDefault:"200"`
	StayMinMS   int    `env:"SIM_STAY_MIN_MS" envDefault:"500"`
	StayMaxMS   int    `env:"SIM_STAY_MAX_MS" envDefault:"3000"`
	AbandonRate int    `env:"SIM_ABANDON_PERCENT" envDefault:"10"`
}

func LoadSim() (SimConfig, error) {
	var cfg SimConfig
	err := env.Parse(&cfg)
	return cfg, err
}
