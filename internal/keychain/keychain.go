package keychain

import "github.com/zalando/go-keyring"

const serviceName = "calcbot"

// TokenAccount is the keychain account holding the Telegram bot token.
const TokenAccount = "telegram_token"

// ErrNotFound is returned by Get when no secret is stored for the account.
var ErrNotFound = keyring.ErrNotFound

// Get retrieves a secret from the system keychain.
func Get(account string) (string, error) {
	return keyring.Get(serviceName, account)
}

// Set stores a secret in the system keychain.
func Set(account, value string) error {
	return keyring.Set(serviceName, account, value)
}

// Token returns the stored Telegram bot token.
func Token() (string, error) {
	return Get(TokenAccount)
}
