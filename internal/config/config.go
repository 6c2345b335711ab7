package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Infrastructure settings are required;
// seat-map policy knobs fall back to the defaults the map was designed
// with when unset.
type Config struct {
    Env          string // application environment (e.g. "dev", "prod")
    Port         string // HTTP port to listen on
    DBUser       string // database username
    DBPass       string // database password (optional)
    DBHost       string // database host address
    DBPort       string // database port number
    DBName       string // database name
    JWTSecret    string // secret used to verify and sign viewer JWTs
    ViewerTTLMin int    // guest viewer token time-to-live in minutes

    HoldDurationSec    int     // seconds a selection may be held before it expires
    MaxSelectableSeats int     // maximum seats across all selection lines
    FeeType            string  // convenience fee type: "percentage" or "flat"
    FeePercent         float64 // fee percentage when FeeType is "percentage"
    FeeFlatCents       int     // fee in cents when FeeType is "flat"

    ViewCacheTTLMin int    // minutes a saved zoom/pan view survives in Redis
    AssetsDir       string // directory holding seat icon assets
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing
// values cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:          must("APP_ENV"),      // environment (dev/test/prod)
        Port:         must("APP_PORT"),     // port to bind the HTTP server
        DBUser:       must("DB_USER"),      // database user
        DBPass:       os.Getenv("DB_PASS"), // database password (empty allowed)
        DBHost:       must("DB_HOST"),      // database host
        DBPort:       must("DB_PORT"),      // database port
        DBName:       must("DB_NAME"),      // database name
        JWTSecret:    must("JWT_SECRET"),   // secret for viewer tokens
        ViewerTTLMin: envIntDefault("VIEWER_TOKEN_TTL_MIN", 720),

        HoldDurationSec:    envIntDefault("HOLD_DURATION_SEC", 600),
        MaxSelectableSeats: envIntDefault("MAX_SELECTABLE_SEATS", 10),
        FeeType:            getenv("CONVENIENCE_FEE_TYPE", "percentage"),
        FeePercent:         envFloatDefault("CONVENIENCE_FEE_PERCENT", 4),
        FeeFlatCents:       envIntDefault("CONVENIENCE_FEE_FLAT_CENTS", 2000),

        ViewCacheTTLMin: envIntDefault("VIEW_CACHE_TTL_MIN", 60),
        AssetsDir:       getenv("ASSETS_DIR", "assets"),
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// envIntDefault reads an integer environment variable, falling back to
// the default when unset and exiting when the value is not an integer.
func envIntDefault(key string, def int) int {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// envFloatDefault reads a float environment variable with a default.
func envFloatDefault(key string, def float64) float64 {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    f, err := strconv.ParseFloat(s, 64)
    if err != nil {
        log.Fatalf("invalid float for %s: %q", key, s)
    }
    return f
}
