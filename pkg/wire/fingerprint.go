package wire

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"

	"github.com/tizenorg/platform.core.iot.iotcon-sub001/pkg/model"
)

// FingerprintSize is the length of a content fingerprint in bytes.
const FingerprintSize = 16

// Fingerprint returns a BLAKE2b digest of the deterministic binary encoding
// of r. A tree keeps its fingerprint across text and binary round trips.
func Fingerprint(r *model.Representation) (string, error) {
	data, err := EncodeBinary(r)
	if err != nil {
		return "", err
	}
	h, err := blake2b.New(FingerprintSize, nil)
	if err != nil {
		return "", err
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
