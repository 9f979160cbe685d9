package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Cfg 全局可访问的配置实例
var Cfg *Config

// LoadConfig 加载配置并填充到 Cfg。
// 默认读 ./configs/config.yaml，可用 PULSEBOARD_CONFIG_DIR 覆盖目录
func LoadConfig() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if dir := os.Getenv("PULSEBOARD_CONFIG_DIR"); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath("./configs")

	viper.SetDefault("server.port", 8080)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	Cfg = &cfg

	return nil
}
