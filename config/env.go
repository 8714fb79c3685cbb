package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	defaultBaseURL     = "http://127.0.0.1:5000"
	defaultAppEnv      = "local"
	defaultGuardMode   = "open"
	defaultHTTPTimeout = "30"
	defaultJWTSecret   = "super-secret-change-me"
)

var (
	loadOnce sync.Once
	loadErr  error

	mu     sync.RWMutex
	values = defaultValues()
)

func Load() error {
	loadOnce.Do(func() {
		loadErr = loadFromFiles("config/app.json", ".env")
	})
	return loadErr
}

func defaultValues() map[string]string {
	return map[string]string{
		"BASE_URL":             defaultBaseURL,
		"APP_ENV":              defaultAppEnv,
		"GUARD_MODE":           defaultGuardMode,
		"SESSION_PATH":         "",
		"NAV_DELAY_MS":         "",
		"LOG_FILE":             "",
		"HTTP_TIMEOUT_SECONDS": defaultHTTPTimeout,
		"JWT_SECRET":           defaultJWTSecret,
	}
}

// BaseURL is the root of the remote shop API, without a trailing slash.
func BaseURL() string {
	_ = Load()
	return strings.TrimRight(get("BASE_URL", defaultBaseURL), "/")
}

func AppEnv() string {
	_ = Load()
	return get("APP_ENV", defaultAppEnv)
}

// GuardMode controls what happens when an authenticated route is visited
// without a token: "open" degrades the screen in place (the historical
// behaviour), "redirect" sends the visitor to /login first.
func GuardMode() string {
	_ = Load()
	mode := strings.ToLower(get("GUARD_MODE", defaultGuardMode))
	switch mode {
	case "open", "redirect":
		return mode
	default:
		return defaultGuardMode
	}
}

// SessionPath is where the durable session file lives. Defaults to
// ~/.bazaar/session.json when unset.
func SessionPath() string {
	_ = Load()

	if override := get("SESSION_PATH", ""); override != "" {
		return override
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".bazaar", "session.json")
	}
	return filepath.Join(home, ".bazaar", "session.json")
}

// NavDelay scales a screen's fixed post-success redirect delay. An empty
// NAV_DELAY_MS keeps the original delay; any set value (including 0)
// replaces it, which the test suite uses to run without sleeping.
func NavDelay(original time.Duration) time.Duration {
	_ = Load()

	raw := get("NAV_DELAY_MS", "")
	if raw == "" {
		return original
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return original
	}
	return time.Duration(ms) * time.Millisecond
}

func HTTPTimeout() time.Duration {
	_ = Load()

	secs, err := strconv.Atoi(get("HTTP_TIMEOUT_SECONDS", defaultHTTPTimeout))
	if err != nil || secs <= 0 {
		secs = 30
	}
	return time.Duration(secs) * time.Second
}

// JWTSecret signs tokens minted by the in-process stub backend. The real
// remote API holds its own secret; the client never verifies signatures.
func JWTSecret() string {
	_ = Load()
	return get("JWT_SECRET", defaultJWTSecret)
}

func loadFromFiles(configPath, envPath string) error {
	loaded := defaultValues()

	if err := mergeJSONConfig(configPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	if err := mergeDotEnv(envPath, loaded); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	}

	mu.Lock()
	values = loaded
	mu.Unlock()

	return nil
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]interface{}
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}

	for key, val := range raw {
		s, ok := val.(string)
		if !ok {
			continue
		}

		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		out[k] = strings.TrimSpace(s)
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue
		}

		key := strings.ToUpper(strings.TrimSpace(line[:idx]))
		value := strings.TrimSpace(line[idx+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}
		out[key] = value
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return nil
}

func get(key, fallback string) string {
	mu.RLock()
	defer mu.RUnlock()

	if value := strings.TrimSpace(values[key]); value != "" {
		return value
	}

	return fallback
}

// Get reads any config key by name with an optional fallback.
// Keys from .env and app.json are available after config.Load().
func Get(key, fallback string) string {
	_ = Load()
	return get(key, fallback)
}

// Set overrides a single key in place. Intended for tests and for CLI
// flags that need to take precedence over .env values.
func Set(key, value string) {
	_ = Load()

	mu.Lock()
	values[strings.ToUpper(strings.TrimSpace(key))] = value
	mu.Unlock()
}
