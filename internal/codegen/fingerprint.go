package codegen

import (
	"bufio"
	"encoding/binary"
	"encoding/hex"
	"os"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/blake2b"
)

const fingerprintPrefix = "// Fingerprint: "

var buildNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://"+RuntimeImport))

// Fingerprint hashes the inputs of one generated file with BLAKE2b-256.
// Parts are length-prefixed so that their boundaries are part of the hash.
func Fingerprint(parts ...[]byte) string {
	h, _ := blake2b.New256(nil)

	var n [8]byte
	for _, p := range parts {
		binary.LittleEndian.PutUint64(n[:], uint64(len(p)))
		h.Write(n[:])
		h.Write(p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// BuildID is a name-based UUID of a fingerprint.
func BuildID(fingerprint string) string {
	return uuid.NewSHA1(buildNamespace, []byte(fingerprint)).String()
}

// ReadFingerprint returns the fingerprint recorded in the header of a
// generated file, or "" when there is none.
func ReadFingerprint(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "//") {
			break
		}
		if fp, ok := strings.CutPrefix(line, fingerprintPrefix); ok {
			return strings.TrimSpace(fp), nil
		}
	}
	return "", scanner.Err()
}
