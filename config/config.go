package config

import "github.com/caarlos0/env/v6"

type Config struct {
	// Port the HTTP server listens on
	Port string `env:"PORT" envDefault:"3000"`

	Mongo struct {
		URI      string `env:"MONGODB_URI" envDefault:"mongodb://localhost:27017"`
		Database string `env:"MONGODB_DATABASE" envDefault:"mgnrega_db"`

		// Connection timeout in seconds
		ConnectTimeout int `env:"MONGODB_CONNECT_TIMEOUT" envDefault:"10"`
	}

	Location struct {
		NominatimURL string `env:"NOMINATIM_URL" envDefault:"https://nominatim.openstreetmap.org/reverse"`
		IPAPIURL     string `env:"IPAPI_URL" envDefault:"https://ipapi.co"`

		// Reverse-geocoding timeout in seconds
		GeocodeTimeout int `env:"GEOCODE_TIMEOUT" envDefault:"5"`

		// IP-geolocation timeout in seconds
		IPLookupTimeout int `env:"IP_LOOKUP_TIMEOUT" envDefault:"10"`
	}

	Translation struct {
		BaseURL string `env:"TRANSLATION_URL" envDefault:"https://api.mymemory.translated.net/get"`

		// Translation request timeout in seconds
		Timeout int `env:"TRANSLATION_TIMEOUT" envDefault:"15"`
	}

	Gemini struct {
		APIKey  string `env:"GEMINI_API_KEY"`
		BaseURL string `env:"GEMINI_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
		Model   string `env:"GEMINI_MODEL" envDefault:"gemini-1.5-flash"`
		Timeout int    `env:"GEMINI_TIMEOUT" envDefault:"20"`
	}

	Collector struct {
		DataGovURL    string `env:"DATA_GOV_URL" envDefault:"https://api.data.gov.in/resource"`
		DataGovAPIKey string `env:"DATA_GOV_API_KEY"`
		Timeout       int    `env:"DATA_GOV_TIMEOUT" envDefault:"15"`

		// Hours between scheduled collection runs
		RefreshInterval int `env:"COLLECTOR_REFRESH_HOURS" envDefault:"24"`
	}

	RateLimit struct {
		// Requests allowed per client IP per window on the API group
		Max int `env:"RATE_LIMIT_MAX" envDefault:"100"`

		// Window length in minutes
		WindowMinutes int `env:"RATE_LIMIT_WINDOW_MINUTES" envDefault:"15"`
	}

	Charts struct {
		PythonPath string `env:"PYTHON_PATH" envDefault:"python"`
		ScriptPath string `env:"CHART_SCRIPT_PATH" envDefault:"scripts/chart_generator.py"`

		// Hard timeout for the chart subprocess in seconds
		Timeout int `env:"CHART_TIMEOUT" envDefault:"30"`
	}
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
