package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// TextToMd5Hash returns the hex md5 digest of the input, used to derive
// stable object-store keys.
func TextToMd5Hash(text string) (string, error) {
	h := md5.New()
	if _, err := h.Write([]byte(text)); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
