// Package cryptoenv implements the shared cryptographic envelope: password
// derived keys, AES-256-CTR stream encryption, and the binary envelope
// format (salt || iv || ciphertext) that the LSB and PVD stego engines
// both produce and consume.
package cryptoenv

import (
	"crypto/aes"
	"crypto/cipher"
	crand "crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"hash"
	"io"

	"golang.org/x/crypto/pbkdf2"

	"github.com/hidenseek-go/imgcrypt/internal/imgerr"
)

const (
	// KeyLen is the AES-256 key length in bytes.
	KeyLen = 32
	// SaltLen and IVLen are fixed by the wire format.
	SaltLen = 16
	IVLen   = 16
	// PBKDF2Iterations is fixed so that images produced by one build stay
	// decryptable by the same build (§4.B, §9 DESIGN NOTES).
	PBKDF2Iterations = 100_000
)

// Sha256HMAC identifies the PRF used by Derive; exported for callers that
// need to document it (e.g. in recipe metadata) without importing crypto/sha256.
const Sha256HMAC = "PBKDF2-HMAC-SHA256"

func newSHA256() hash.Hash { return sha256.New() }

// Derive runs PBKDF2-HMAC-SHA256 over (password, salt) for
// PBKDF2Iterations rounds, producing a 32-byte AES-256 key. Deterministic
// for a given (password, salt) pair.
func Derive(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, PBKDF2Iterations, KeyLen, newSHA256)
}

// Envelope is the serialized encrypted-payload wire format:
//
//	[ size: u32 LE ][ salt: 16B ][ iv: 16B ][ ciphertext: size-32 B ]
//
// size counts bytes from the first salt byte through the last ciphertext
// byte (i.e. it excludes the 4-byte size field itself).
type Envelope struct {
	Salt       []byte
	IV         []byte
	Ciphertext []byte
}

// Encode serializes the envelope with its leading u32 size header.
func (e *Envelope) Encode() []byte {
	size := uint32(len(e.Salt) + len(e.IV) + len(e.Ciphertext))
	buf := make([]byte, 4+int(size))
	binary.LittleEndian.PutUint32(buf[0:4], size)
	n := 4
	n += copy(buf[n:], e.Salt)
	n += copy(buf[n:], e.IV)
	copy(buf[n:], e.Ciphertext)
	return buf
}

// DecodeEnvelope parses the wire format produced by Encode, validating the
// size header against the supplied buffer length.
func DecodeEnvelope(buf []byte) (*Envelope, error) {
	if len(buf) < 4 {
		return nil, imgerr.New(imgerr.ExtractionFailed, "envelope shorter than its 4-byte size header")
	}
	size := binary.LittleEndian.Uint32(buf[0:4])
	if int(size) < SaltLen+IVLen || 4+int(size) > len(buf) {
		return nil, imgerr.New(imgerr.ExtractionFailed, "envelope size header %d inconsistent with buffer length %d", size, len(buf))
	}
	body := buf[4 : 4+int(size)]
	return &Envelope{
		Salt:       append([]byte(nil), body[0:SaltLen]...),
		IV:         append([]byte(nil), body[SaltLen:SaltLen+IVLen]...),
		Ciphertext: append([]byte(nil), body[SaltLen+IVLen:]...),
	}, nil
}

// Seal compresses nothing itself; it derives a key from (password, a fresh
// random salt), generates a fresh random IV, and AES-256-CTR encrypts
// plaintext, returning the full envelope. RNG draws for salt and IV happen
// before any ciphertext computation (§5 ordering requirement).
func Seal(password string, plaintext []byte) (*Envelope, error) {
	salt := make([]byte, SaltLen)
	iv := make([]byte, IVLen)
	if _, err := io.ReadFull(crand.Reader, salt); err != nil {
		return nil, imgerr.Wrap(imgerr.CryptoFailure, err, "generating salt")
	}
	if _, err := io.ReadFull(crand.Reader, iv); err != nil {
		return nil, imgerr.Wrap(imgerr.CryptoFailure, err, "generating iv")
	}
	ct, err := CTR(password, salt, iv, plaintext)
	if err != nil {
		return nil, err
	}
	return &Envelope{Salt: salt, IV: iv, Ciphertext: ct}, nil
}

// Open derives the key from (password, e.Salt) and decrypts e.Ciphertext
// with e.IV, returning the plaintext.
func Open(password string, e *Envelope) ([]byte, error) {
	return CTR(password, e.Salt, e.IV, e.Ciphertext)
}

// CTR performs AES-256-CTR over data; it is its own inverse given the same
// (password, salt, iv), since CTR mode XORs a keystream with the input.
func CTR(password string, salt, iv, data []byte) ([]byte, error) {
	if len(iv) != IVLen {
		return nil, imgerr.New(imgerr.CryptoFailure, "iv must be %d bytes, got %d", IVLen, len(iv))
	}
	key := Derive(password, salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, imgerr.Wrap(imgerr.CryptoFailure, err, "invalid key material")
	}
	stream := cipher.NewCTR(block, iv)
	out := make([]byte, len(data))
	stream.XORKeyStream(out, data)
	return out, nil
}
