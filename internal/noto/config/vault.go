package config

// VaultConfig содержит настройки токенов и хэширования кода доступа.
type VaultConfig struct {
	SecretKey  string `yaml:"secret_key" env:"NOTO_VAULT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	BCryptCost int    `yaml:"bcrypt_cost" env:"NOTO_VAULT_BCRYPT_COST" env-default:"10"`
}
