package config

// Warnings lists settings that load fine but are probably not what the
// operator wants
func (c *Config) Warnings() []string {
	var warnings []string

	if c.EnableCheats && c.IsProduction() {
		warnings = append(warnings, "ENABLE_CHEATS is on in production - every user can unlock the whole catalog")
	}
	if c.LedgerBaseURL == "" {
		warnings = append(warnings, "LEDGER_BASE_URL is not set - inventories and packs live only in memory")
	}
	if c.RelayURL == "" {
		warnings = append(warnings, "RELAY_URL is not set - chat runs in offline mode")
	}
	if c.CredentialsBackend == CredentialsBackendRedis && c.RedisPassword == "" && c.IsProduction() {
		warnings = append(warnings, "REDIS_PASSWORD is empty in production")
	}

	return warnings
}
