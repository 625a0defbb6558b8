package secrets

import (
	"os"
	"strings"

	"github.com/zalando/go-keyring"
	"go.uber.org/zap"
)

// KeyringService groups the app's secrets in the OS keychain.
const KeyringService = "jobradar"

// Provider resolves API credentials for sources. A missing credential is
// not an error: it means the source is skipped for this run.
type Provider interface {
	// Lookup returns the credential for keyName, or ok=false to mean
	// "skip this source".
	Lookup(keyName, sourceName string) (value string, ok bool)
}

// KeychainProvider checks the OS keyring first, then the environment
// (JOBRADAR_<KEY> uppercased).
type KeychainProvider struct {
	logger *zap.Logger
}

func NewKeychainProvider(logger *zap.Logger) *KeychainProvider {
	return &KeychainProvider{logger: logger}
}

func (p *KeychainProvider) Lookup(keyName, sourceName string) (string, bool) {
	if v, err := keyring.Get(KeyringService, keyName); err == nil && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v), true
	}

	envKey := "JOBRADAR_" + strings.ToUpper(strings.ReplaceAll(keyName, "-", "_"))
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v, true
	}

	p.logger.Debug("credential not found, skipping source",
		zap.String("key", keyName),
		zap.String("source", sourceName),
	)
	return "", false
}

// Set stores a credential in the OS keyring.
func Set(keyName, value string) error {
	return keyring.Set(KeyringService, keyName, value)
}

// Delete removes a credential from the OS keyring.
func Delete(keyName string) error {
	return keyring.Delete(KeyringService, keyName)
}

// Static is a map-backed Provider for tests.
type Static map[string]string

func (s Static) Lookup(keyName, _ string) (string, bool) {
	v, ok := s[keyName]
	return v, ok && v != ""
}
