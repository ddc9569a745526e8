package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port      int              `json:"port"`
	LogConfig logger.LogConfig `json:"log_config"`
	Database  DatabaseConfig   `json:"database"`
	Index     IndexConfig      `json:"index"`
	AI        AIConfig         `json:"ai"`
	Retrieval RetrievalConfig  `json:"retrieval"`
	Session   SessionConfig    `json:"session"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"dbname"`
	SSLMode  string `json:"sslmode"`
}

type IndexConfig struct {
	Type string `json:"type"` // pgvector or memory
}

type ProviderConfig struct {
	Provider string `json:"provider"`
	Model    string `json:"model"`
	APIKey   string `json:"api_key"`
	BaseURL  string `json:"base_url"`
}

type AIConfig struct {
	Generate            ProviderConfig `json:"generate"`
	Embed               ProviderConfig `json:"embed"`
	Timeout             int            `json:"timeout"`
	EmbedCacheSize      int            `json:"embed_cache_size"`
	EmbedCacheTTLMinute int            `json:"embed_cache_ttl_minutes"`
}

type RetrievalConfig struct {
	SkillTopK      int `json:"skill_top_k"`
	ExperienceTopK int `json:"experience_top_k"`
	EducationTopK  int `json:"education_top_k"`
	ProjectTopK    int `json:"project_top_k"`
}

type SessionConfig struct {
	TTLHours  int    `json:"ttl_hours"`
	SweepSpec string `json:"sweep_spec"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Index.Type == "" {
		cfg.Index.Type = "pgvector"
	}
	switch cfg.Index.Type {
	case "pgvector":
		if cfg.Database.DSN == "" && cfg.Database.Host == "" {
			return nil, fmt.Errorf("database.dsn or database.host is required for pgvector index")
		}
	case "memory":
	default:
		return nil, fmt.Errorf("index.type must be pgvector or memory")
	}
	if cfg.AI.Generate.Provider == "" {
		return nil, fmt.Errorf("ai.generate.provider is required")
	}
	if cfg.AI.Embed.Provider == "" {
		return nil, fmt.Errorf("ai.embed.provider is required")
	}
	if cfg.AI.Timeout == 0 {
		cfg.AI.Timeout = 30
	}
	if cfg.AI.EmbedCacheSize == 0 {
		cfg.AI.EmbedCacheSize = 4096
	}
	if cfg.AI.EmbedCacheTTLMinute == 0 {
		cfg.AI.EmbedCacheTTLMinute = 120
	}
	// Default caps are broad on skills and experience, narrow on
	// education and projects.
	if cfg.Retrieval.SkillTopK == 0 {
		cfg.Retrieval.SkillTopK = 10
	}
	if cfg.Retrieval.ExperienceTopK == 0 {
		cfg.Retrieval.ExperienceTopK = 10
	}
	if cfg.Retrieval.EducationTopK == 0 {
		cfg.Retrieval.EducationTopK = 2
	}
	if cfg.Retrieval.ProjectTopK == 0 {
		cfg.Retrieval.ProjectTopK = 2
	}
	if cfg.Session.TTLHours == 0 {
		cfg.Session.TTLHours = 24
	}
	if cfg.Session.SweepSpec == "" {
		cfg.Session.SweepSpec = "*/30 * * * *"
	}
	return &cfg, nil
}
