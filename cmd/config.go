package cmd

// Config carries everything the service needs to start. Values come from
// the environment, with a .env file loaded first when present.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST,required"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER,required"`
	DBPassword string `env:"DB_PASSWORD,required"`
	DBName     string `env:"DB_NAME,required"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	GeocoderURL string `env:"GEOCODER_URL,required"`
	BillingURL  string `env:"BILLING_URL,required"`

	// FCMCredentialsFile is optional. Without it notifications are
	// recorded in the store but only logged instead of pushed.
	FCMCredentialsFile string `env:"FCM_CREDENTIALS_FILE"`

	// BusinessTimezone anchors schedule windows for availability checks.
	BusinessTimezone string `env:"BUSINESS_TIMEZONE" envDefault:"Europe/Moscow"`

	// Service region bounding box. Home-visit orders outside it are
	// rejected at geocoding time. Defaults cover the Moscow area.
	RegionMinLat float64 `env:"REGION_MIN_LAT" envDefault:"55.1"`
	RegionMaxLat float64 `env:"REGION_MAX_LAT" envDefault:"56.1"`
	RegionMinLng float64 `env:"REGION_MIN_LNG" envDefault:"36.8"`
	RegionMaxLng float64 `env:"REGION_MAX_LNG" envDefault:"38.3"`
}
