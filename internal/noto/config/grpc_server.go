package config

import (
	"fmt"
)

// GRPCConfig конфигурация gRPC сервера проверки состояния.
type GRPCConfig struct {
	Host string `yaml:"host" env:"NOTO_GRPC_HOST" env-default:"0.0.0.0"`
	Port int    `yaml:"port" env:"NOTO_GRPC_PORT" env-default:"50051"`
}

// GetAddress возвращает адрес для gRPC сервера.
func (g *GRPCConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", g.Host, g.Port)
}
