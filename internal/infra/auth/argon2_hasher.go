// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"

	"savvy/config"
	domainerrors "savvy/internal/domain/errors"
	"savvy/internal/domain/service"
	"savvy/internal/errors"
)

const argon2Variant = "argon2id"

// Ceilings for parameters read back from stored hashes. Memory is capped
// relative to the configured cost.
const (
	maxMemoryFactor  = 4
	maxIterations    = 16
	maxParallelism   = 16
	maxSaltLength    = 64
	maxKeyLength     = 64
	minSaltKeyLength = 8
)

var b64 = base64.RawStdEncoding

// argon2Hasher implements service.PasswordHasher with argon2id and the PHC
// string format: $argon2id$v=19$m=65536,t=3,p=4$<salt>$<key>.
type argon2Hasher struct {
	params config.Argon2Config
	slots  *semaphore.Weighted // bounds concurrent memory-hard derivations
	logger *slog.Logger
}

// NewArgon2Hasher is the constructor for argon2Hasher.
func NewArgon2Hasher(cfg *config.Config, logger *slog.Logger) service.PasswordHasher {
	params := cfg.Argon2

	return &argon2Hasher{
		params: params,
		slots:  semaphore.NewWeighted(params.MaxConcurrent),
		logger: logger,
	}
}

// Hash derives a key from password with a fresh random salt.
func (h *argon2Hasher) Hash(ctx context.Context, password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		h.logger.Error("Failed to generate password salt", slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, "salt generation failed")
	}

	key, err := h.derive(ctx, []byte(password), salt, h.params.Iterations, h.params.MemoryKiB, h.params.Parallelism, h.params.KeyLength)
	if err != nil {
		h.logger.Error("Failed to hash password", slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Variant,
		argon2.Version,
		h.params.MemoryKiB,
		h.params.Iterations,
		h.params.Parallelism,
		b64.EncodeToString(salt),
		b64.EncodeToString(key),
	), nil
}

// Check re-derives the key with the parameters embedded in hash. Any parse
// or derivation failure is reported as a mismatch.
func (h *argon2Hasher) Check(ctx context.Context, password, hash string) bool {
	decoded, err := decodeArgon2Hash(hash)
	if err == nil {
		err = h.withinLimits(decoded)
	}
	if err != nil {
		h.logger.Debug("Rejecting unreadable password hash", slog.Any("error", err))

		return false
	}

	key, err := h.derive(ctx, []byte(password), decoded.salt, decoded.iterations, decoded.memory, decoded.parallelism, uint32(len(decoded.key)))
	if err != nil {
		h.logger.Warn("Password verification aborted", slog.Any("error", err))

		return false
	}

	return subtle.ConstantTimeCompare(key, decoded.key) == 1
}

func (h *argon2Hasher) derive(ctx context.Context, password, salt []byte, iterations, memory uint32, parallelism uint8, keyLen uint32) (key []byte, err error) {
	if err := h.slots.Acquire(ctx, 1); err != nil {
		return nil, errors.Wrap(err, "waiting for a hashing slot")
	}
	defer h.slots.Release(1)

	defer func() {
		if r := recover(); r != nil {
			key = nil
			err = errors.Errorf("argon2 panicked: %v", r)
		}
	}()

	return argon2.IDKey(password, salt, iterations, memory, parallelism, keyLen), nil
}

// withinLimits rejects stored parameters that would make a single check
// allocate or spin far beyond what this hasher produces.
func (h *argon2Hasher) withinLimits(decoded *argon2Hash) error {
	maxMemory := uint64(h.params.MemoryKiB) * maxMemoryFactor
	switch {
	case uint64(decoded.memory) > maxMemory:
		return errors.Errorf("memory cost %d KiB exceeds %d KiB", decoded.memory, maxMemory)
	case decoded.iterations > max(maxIterations, h.params.Iterations):
		return errors.Errorf("iteration count %d exceeds the ceiling", decoded.iterations)
	case decoded.parallelism > max(maxParallelism, h.params.Parallelism):
		return errors.Errorf("parallelism %d exceeds the ceiling", decoded.parallelism)
	case len(decoded.salt) < minSaltKeyLength || len(decoded.salt) > max(maxSaltLength, int(h.params.SaltLength)):
		return errors.Errorf("salt length %d out of range", len(decoded.salt))
	case len(decoded.key) < minSaltKeyLength || len(decoded.key) > max(maxKeyLength, int(h.params.KeyLength)):
		return errors.Errorf("key length %d out of range", len(decoded.key))
	}

	return nil
}

type argon2Hash struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	salt        []byte
	key         []byte
}

func decodeArgon2Hash(encoded string) (*argon2Hash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, errors.New("hash is not in PHC format")
	}
	if parts[1] != argon2Variant {
		return nil, errors.Errorf("unsupported variant %q", parts[1])
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, errors.Wrap(err, "bad version segment")
	}
	if version != argon2.Version {
		return nil, errors.Errorf("unsupported version %d", version)
	}

	decoded := &argon2Hash{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &decoded.memory, &decoded.iterations, &decoded.parallelism); err != nil {
		return nil, errors.Wrap(err, "bad parameter segment")
	}
	if decoded.memory == 0 || decoded.iterations == 0 || decoded.parallelism == 0 {
		return nil, errors.New("zero cost parameter")
	}

	var err error
	if decoded.salt, err = b64.DecodeString(parts[4]); err != nil {
		return nil, errors.Wrap(err, "bad salt encoding")
	}
	if decoded.key, err = b64.DecodeString(parts[5]); err != nil {
		return nil, errors.Wrap(err, "bad key encoding")
	}
	if len(decoded.key) == 0 {
		return nil, errors.New("empty key")
	}

	return decoded, nil
}
