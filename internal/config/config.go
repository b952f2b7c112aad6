package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSheets   = "sheets"
	BackendTables   = "tables"
)

type Config struct {
	App struct {
		Name  string `envconfig:"APP_NAME" default:"Duo"`
		Port  int    `envconfig:"PORT" default:"8080"`
		Actor string `envconfig:"APP_ACTOR"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Ledger struct {
		Participants   []string `envconfig:"LEDGER_PARTICIPANTS" default:"A,B"`
		BaseCurrency   string   `envconfig:"LEDGER_BASE_CURRENCY" default:"CLP"`
		Timezone       string   `envconfig:"LEDGER_TIMEZONE" default:"America/Santiago"`
		PaymentMethods []string `envconfig:"LEDGER_PAYMENT_METHODS" default:"Efectivo,Débito,Crédito,Transferencia"`
	}

	Store struct {
		Backend string `envconfig:"STORE_BACKEND" default:"memory"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"duo"`
	}

	Sheets struct {
		SpreadsheetID   string `envconfig:"SHEETS_SPREADSHEET_ID"`
		SheetName       string `envconfig:"SHEETS_SHEET_NAME" default:"Registros"`
		CredentialsFile string `envconfig:"SHEETS_CREDENTIALS_FILE"`
	}

	Tables struct {
		ServiceURL string `envconfig:"TABLES_SERVICE_URL" default:"http://127.0.0.1:10002/devstoreaccount1"`
		Table      string `envconfig:"TABLES_TABLE" default:"ledger"`
	}

	Rates struct {
		URL          string            `envconfig:"RATES_URL" default:"https://mindicador.cl/api"`
		FallbackRate decimal.Decimal   `envconfig:"RATES_FALLBACK_RATE" default:"1"`
		Timeout      time.Duration     `envconfig:"RATES_TIMEOUT" default:"5s"`
		Indicators   map[string]string `envconfig:"RATES_INDICATORS"`
	}

	Auth struct {
		Secret string        `envconfig:"AUTH_SECRET"`
		Issuer string        `envconfig:"AUTH_ISSUER" default:"duo"`
		TTL    time.Duration `envconfig:"AUTH_TTL" default:"720h"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	}

	Archive struct {
		Backend    string `envconfig:"ARCHIVE_BACKEND" default:"none"`
		Bucket     string `envconfig:"ARCHIVE_BUCKET"`
		Prefix     string `envconfig:"ARCHIVE_PREFIX" default:"exports"`
		Container  string `envconfig:"ARCHIVE_CONTAINER" default:"exports"`
		ServiceURL string `envconfig:"ARCHIVE_SERVICE_URL" default:"http://127.0.0.1:10000/devstoreaccount1"`
		Dir        string `envconfig:"ARCHIVE_DIR" default:"exports"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func (c *Config) Participants() ledger.Participants {
	return ledger.Participants(c.Ledger.Participants)
}

func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Ledger.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Ledger.Timezone, err)
	}

	return loc, nil
}

// Actor is the participant acting from local entry points. It defaults to
// participant A.
func (c *Config) Actor() string {
	if c.App.Actor != "" {
		return c.App.Actor
	}

	return c.Participants().A()
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if len(c.Ledger.Participants) != 2 {
		return fmt.Errorf("LEDGER_PARTICIPANTS needs exactly two names, got %d", len(c.Ledger.Participants))
	}

	if c.Ledger.Participants[0] == c.Ledger.Participants[1] {
		return fmt.Errorf("LEDGER_PARTICIPANTS must be distinct")
	}

	switch c.Store.Backend {
	case BackendMemory, BackendPostgres, BackendSheets, BackendTables:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.Store.Backend)
	}

	if c.Store.Backend == BackendSheets && c.Sheets.SpreadsheetID == "" {
		return fmt.Errorf("SHEETS_SPREADSHEET_ID is required for the sheets backend")
	}

	if !c.Rates.FallbackRate.IsPositive() {
		return fmt.Errorf("RATES_FALLBACK_RATE must be positive")
	}

	return nil
}
