package secrets

import (
	"errors"
	"net/url"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService groups the dashboard's secrets in the OS keychain.
	KeyringService = "jobmonitor"

	TokenEnv = "JOBMONITOR_API_TOKEN"
)

// APIKeyringAccount names the keychain entry for a monitor base URL.
func APIKeyringAccount(baseURL string) string {
	host := baseURL
	if u, err := url.Parse(baseURL); err == nil && u.Host != "" {
		host = u.Host
	}
	return "jobmonitor:api:" + strings.ToLower(host)
}

// GetAPIToken checks the environment first, then the keychain. A missing
// token is not an error: the monitor may not require one.
func GetAPIToken(keyringAccount string) (string, error) {
	if tok := strings.TrimSpace(os.Getenv(TokenEnv)); tok != "" {
		return tok, nil
	}
	if strings.TrimSpace(keyringAccount) == "" {
		return "", nil
	}
	tok, err := keyring.Get(KeyringService, keyringAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(tok), nil
}

func SetAPIToken(keyringAccount, token string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(token) == "" {
		return errors.New("token is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, strings.TrimSpace(token))
}

func DeleteAPIToken(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	err := keyring.Delete(KeyringService, keyringAccount)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
