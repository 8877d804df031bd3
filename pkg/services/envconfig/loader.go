package envconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/de-tools/ai-foundry/pkg/models/domain"
	"github.com/joho/godotenv"
)

const DefaultPath = ".env"

// LoadError reports a configuration that cannot be validated at all: the
// source is unreadable or required keys are missing.
type LoadError struct {
	Path    string
	Missing []domain.Key
	Err     error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
	}
	keys := make([]string, 0, len(e.Missing))
	for _, k := range e.Missing {
		keys = append(keys, string(k))
	}
	return fmt.Sprintf("required variables missing or empty: %s", strings.Join(keys, ", "))
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Messages renders the failure as one line per problem.
func (e *LoadError) Messages() []string {
	if e.Err != nil {
		if errors.Is(e.Err, fs.ErrNotExist) {
			return []string{fmt.Sprintf("Environment file not found: %s", e.Path)}
		}
		return []string{fmt.Sprintf("Environment file could not be read: %s (%v)", e.Path, e.Err)}
	}
	msgs := make([]string, 0, len(e.Missing))
	for _, k := range e.Missing {
		msgs = append(msgs, fmt.Sprintf("Required environment variable missing or empty: %s", k))
	}
	return msgs
}

type Option func(*Loader)

// WithLookup lets keys absent from the source fall back to another provider,
// typically os.LookupEnv. Values in the source always win.
func WithLookup(lookup func(string) (string, bool)) Option {
	return func(l *Loader) {
		l.lookup = lookup
	}
}

// Loader turns a flat key/value source into a domain.Configuration.
type Loader struct {
	lookup func(string) (string, bool)
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads a KEY=value file. Comment lines are ignored, values are split on
// the first '=' and one layer of surrounding quotes is stripped.
func (l *Loader) Load(path string) (domain.Configuration, error) {
	if path == "" {
		path = DefaultPath
	}

	if _, err := os.Stat(path); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	// godotenv has already unquoted the values
	cfg, err := l.parse(values, strings.TrimSpace)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			loadErr.Path = path
		}
		return nil, err
	}
	return cfg, nil
}

// Parse applies the required/optional key rules to an in-memory mapping.
// Unknown keys are ignored and empty optional keys are dropped.
func (l *Loader) Parse(values map[string]string) (domain.Configuration, error) {
	return l.parse(values, clean)
}

func (l *Loader) parse(values map[string]string, normalize func(string) string) (domain.Configuration, error) {
	cfg := make(domain.Configuration)
	var missing []domain.Key

	for _, key := range domain.RequiredKeys {
		v, ok := l.value(values, key, normalize)
		if !ok {
			missing = append(missing, key)
			continue
		}
		cfg[key] = v
	}

	if len(missing) > 0 {
		return nil, &LoadError{Missing: missing}
	}

	for _, key := range domain.OptionalKeys {
		if v, ok := l.value(values, key, normalize); ok {
			cfg[key] = v
		}
	}

	return cfg, nil
}

func (l *Loader) value(values map[string]string, key domain.Key, normalize func(string) string) (string, bool) {
	if raw, ok := values[string(key)]; ok {
		v := normalize(raw)
		return v, v != ""
	}
	if l.lookup == nil {
		return "", false
	}
	raw, ok := l.lookup(string(key))
	if !ok {
		return "", false
	}
	v := clean(raw)
	return v, v != ""
}

func clean(v string) string {
	v = strings.TrimSpace(v)
	if len(v) >= 2 {
		first, last := v[0], v[len(v)-1]
		if (first == '"' || first == '\'') && first == last {
			v = strings.TrimSpace(v[1 : len(v)-1])
		}
	}
	return v
}
