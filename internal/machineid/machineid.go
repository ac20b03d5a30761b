// Package machineid derives application-specific machine identifiers.
//
// The derivation matches systemd's sd_id128_get_machine_app_specific(): the
// confidential machine id (machine-id(5)) keys an HMAC-SHA256 over the
// application id, the first 16 bytes of the digest are kept and the UUID
// version and variant fields are forced to v4 / DCE. The result is stable per
// (machine, application) pair and does not reveal the machine id.
package machineid

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// Size is the length in bytes of machine, application and derived ids.
const Size = 16

// Derive computes the application-specific id for machineID and appID.
// Both inputs must be exactly 16 bytes.
func Derive(machineID, appID []byte) ([Size]byte, error) {
	var id [Size]byte

	if len(machineID) != Size {
		return id, fmt.Errorf("%w: machine id is %d bytes", ErrInvalidLength, len(machineID))
	}
	if len(appID) != Size {
		return id, fmt.Errorf("%w: app id is %d bytes", ErrInvalidLength, len(appID))
	}

	mac := hmac.New(sha256.New, machineID)
	mac.Write(appID)
	digest := mac.Sum(nil) // 32 bytes

	copy(id[:], digest[:Size])

	// Version 4
	id[6] = (id[6] & 0x0F) | 0x40
	// Variant DCE (RFC 4122)
	id[8] = (id[8] & 0x3F) | 0x80

	return id, nil
}

// ParseText decodes the on-disk machine-id(5) form: 32 lowercase hex
// characters with at most one trailing newline.
func ParseText(text string) ([Size]byte, error) {
	var id [Size]byte

	s := text
	if n := len(s); n > 0 && s[n-1] == '\n' {
		s = s[:n-1]
	}

	if len(s) != 2*Size {
		return id, fmt.Errorf("%w: expected %d hex characters, got %d", ErrMalformedMachineID, 2*Size, len(s))
	}
	for i := 0; i < len(s); i++ {
		if !isLowerHex(s[i]) {
			return id, fmt.Errorf("%w: invalid character %q at offset %d", ErrMalformedMachineID, s[i], i)
		}
	}

	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return id, fmt.Errorf("%w: %v", ErrMalformedMachineID, err)
	}
	return id, nil
}

// FormatUUID returns id as xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx in lowercase.
func FormatUUID(id [Size]byte) string {
	return uuid.UUID(id).String()
}

// FormatPlain returns id as 32 lowercase hex characters, the machine-id(5) form.
func FormatPlain(id [Size]byte) string {
	return hex.EncodeToString(id[:])
}

// DeriveAppSpecific parses machineIDText, derives the id for appID and
// formats it as a hyphenated UUID string.
func DeriveAppSpecific(machineIDText string, appID []byte) (string, error) {
	machineID, err := ParseText(machineIDText)
	if err != nil {
		return "", err
	}

	id, err := Derive(machineID[:], appID)
	if err != nil {
		return "", err
	}

	return FormatUUID(id), nil
}

// ParseAppID parses an application id given in any textual UUID form
// (hyphenated, urn:uuid:, braced or 32 plain hex digits).
func ParseAppID(s string) ([Size]byte, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return [Size]byte{}, fmt.Errorf("%w: %v", ErrInvalidAppID, err)
	}
	return u, nil
}

func isLowerHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f')
}
