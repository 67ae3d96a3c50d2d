package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/roach88/streamtv/internal/model"
)

// Domain prefixes. The version suffix allows the encoding to change
// without colliding with digests already stored in a journal.
const (
	DomainInput   = "streamtv/input/v1"
	DomainAction  = "streamtv/action/v1"
	DomainRecords = "streamtv/records/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Of hashes the canonical encoding of v under domain.
func Of(domain string, v any) (string, error) {
	canonical, err := Canonical(v)
	if err != nil {
		return "", fmt.Errorf("digest %s: %w", domain, err)
	}
	return hashWithDomain(domain, canonical), nil
}

// Input identifies a whole replay document.
func Input(in model.Input) (string, error) {
	return Of(DomainInput, in)
}

// Action identifies one action at its position in a run.
func Action(seq int64, action model.Action) (string, error) {
	return Of(DomainAction, struct {
		Seq    int64        `json:"seq"`
		Action model.Action `json:"action"`
	}{seq, action})
}

// Records identifies the output of one action. A nil slice and an empty
// slice hash the same.
func Records(records []model.Record) (string, error) {
	if records == nil {
		records = []model.Record{}
	}
	return Of(DomainRecords, records)
}
