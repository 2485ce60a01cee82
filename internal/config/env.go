package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"

	"github.com/AlexZinkM/legacy-wallet/internal/crypto"
)

// Config contains all configuration parameters for the application.
// Note: Password is prompted at runtime and stored in memory - use GetPasswordBytes()
type Config struct {
	Port           string `envconfig:"PORT" default:"8080"`
	WalletFilePath string `envconfig:"WALLET_FILE_PATH" required:"true"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat      string `envconfig:"LOG_FORMAT" default:"console"`
	AmountDecimals int    `envconfig:"AMOUNT_DECIMALS" default:"12"`

	ScryptN           int  `envconfig:"SCRYPT_N" default:"262144"`
	ScryptR           int  `envconfig:"SCRYPT_R" default:"8"`
	ScryptP           int  `envconfig:"SCRYPT_P" default:"1"`
	AllowUnsafeScrypt bool `envconfig:"ALLOW_UNSAFE_SCRYPT" default:"false"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	c := &Config{}
	if err := envconfig.Process("", c); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	if err := c.validate(); err != nil {
		return err
	}
	cfg = c
	return nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.WalletFilePath) == "" {
		return errors.New("WALLET_FILE_PATH must not be empty")
	}
	if c.AmountDecimals < 0 || c.AmountDecimals > 18 {
		return fmt.Errorf("AMOUNT_DECIMALS must be between 0 and 18, got %d", c.AmountDecimals)
	}
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be console or json, got %q", c.LogFormat)
	}
	if err := c.KDFParams().Validate(); err != nil {
		return fmt.Errorf("invalid scrypt settings: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// KDFParams returns the scrypt parameters used for wallet files
func (c *Config) KDFParams() crypto.KDFParams {
	return crypto.KDFParams{
		N:           c.ScryptN,
		R:           c.ScryptR,
		P:           c.ScryptP,
		AllowUnsafe: c.AllowUnsafeScrypt,
	}
}

// GetPort returns port from configuration
func GetPort() string {
	return Get().Port
}

// GetWalletFilePath returns path to the wallet file from configuration
func GetWalletFilePath() string {
	return Get().WalletFilePath
}

// GetAmountDecimals returns the number of decimals of one coin
func GetAmountDecimals() int {
	return Get().AmountDecimals
}

var passwordBytes []byte

// ReadPassword prompts in the terminal and reads a password without echo.
// The caller owns the returned slice and should zero it after use.
func ReadPassword(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, errors.New("stdin is not a terminal: run the app interactively to enter password")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	return raw, nil
}

// PromptForPassword prompts the user for the wallet password in the terminal.
// The password is read without echoing (hidden input) and stored in memory.
// Call this at startup before the server begins handling requests.
func PromptForPassword() error {
	raw, err := ReadPassword("Enter wallet password: ")
	if err != nil {
		return err
	}
	SetPassword(raw)
	clear(raw)
	return nil
}

// SetPassword stores a copy of password in memory, replacing any previous
// one. The previous copy is zeroed.
func SetPassword(password []byte) {
	clear(passwordBytes)
	passwordBytes = make([]byte, len(password))
	copy(passwordBytes, password)
}

// ClearPassword zeroes and forgets the stored password.
func ClearPassword() {
	clear(passwordBytes)
	passwordBytes = nil
}

// GetPasswordBytes returns the password stored in memory (from PromptForPassword).
// Returns an error if the password was not set.
// Caller must zero the returned slice after use for security.
func GetPasswordBytes() ([]byte, error) {
	if len(passwordBytes) == 0 {
		return nil, ErrPasswordNotSet
	}
	out := make([]byte, len(passwordBytes))
	copy(out, passwordBytes)
	return out, nil
}

// ErrPasswordNotSet is returned by GetPasswordBytes before a password is stored
var ErrPasswordNotSet = errors.New("password not set: call PromptForPassword at startup")
