package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/argon2"
)

const DefaultFile = "auth.secret"

// Argon2id parameters (OWASP recommended)
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

var ErrInvalidAuthFile = errors.New("invalid auth file format (expected: username:hash)")

// Credentials is the single user allowed to change shared favorites.
type Credentials struct {
	User string
	Hash string
}

// LoadCredentials reads a "username:hash" file. A missing file yields nil
// credentials and no error; callers treat that as auth disabled.
func LoadCredentials(path string) (*Credentials, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read auth file: %w", err)
	}

	line := strings.TrimSpace(string(data))
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, ErrInvalidAuthFile
	}
	return &Credentials{User: parts[0], Hash: parts[1]}, nil
}

func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	// $argon2id$v=19$m=65536,t=1,p=4$salt$hash
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		argon2Memory, argon2Time, argon2Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

func VerifyPassword(password, hash string) (bool, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		return false, errors.New("invalid hash format")
	}
	if parts[1] != "argon2id" {
		return false, errors.New("not an argon2id hash")
	}

	var memory, time, threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, fmt.Errorf("failed to parse hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}
	decodedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	computed := argon2.IDKey([]byte(password), salt, time, memory, uint8(threads), uint32(len(decodedHash)))
	return subtle.ConstantTimeCompare(decodedHash, computed) == 1, nil
}

// Guard enforces Basic Auth on the routes it wraps. A Guard without
// credentials lets every request through.
type Guard struct {
	creds  *Credentials
	realm  string
	logger *log.Logger
}

func NewGuard(creds *Credentials, realm string, logger *log.Logger) *Guard {
	if logger == nil {
		logger = log.Default()
	}
	if realm == "" {
		realm = "World Holidays"
	}
	return &Guard{creds: creds, realm: realm, logger: logger}
}

func (g *Guard) Enabled() bool {
	return g != nil && g.creds != nil
}

func (g *Guard) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !g.Enabled() {
			next(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()
		userMatch := subtle.ConstantTimeCompare([]byte(user), []byte(g.creds.User)) == 1

		passMatch := false
		if ok && userMatch {
			var err error
			passMatch, err = VerifyPassword(pass, g.creds.Hash)
			if err != nil {
				g.logger.Printf("error verifying password: %v", err)
				passMatch = false
			}
		}

		if !ok || !userMatch || !passMatch {
			w.Header().Set("WWW-Authenticate", fmt.Sprintf("Basic realm=%q", g.realm))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":"unauthorized"}` + "\n"))
			g.logger.Printf("failed auth attempt from %s (user: %q)", r.RemoteAddr, user)
			return
		}

		next(w, r)
	}
}

// WriteAuthFile stores username and the Argon2id hash of password at path
// with read-only permissions. An existing file is replaced only when
// overwrite is set.
func WriteAuthFile(path, username, password string, overwrite bool) error {
	if strings.TrimSpace(path) == "" {
		path = DefaultFile
	}
	if username == "" || strings.Contains(username, ":") {
		return errors.New("username must be non-empty and must not contain ':'")
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}

	if _, err := os.Stat(path); err == nil {
		if !overwrite {
			return fmt.Errorf("auth file already exists: %s", path)
		}
		// The file is 0400, so it has to be removed before rewriting.
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("failed to remove existing auth file: %w", err)
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, []byte(username+":"+hash+"\n"), 0o400); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}
	return nil
}
