package pkg

import (
	"errors"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
)

func GenerateULID() ulid.ULID {
	entropy := ulid.DefaultEntropy()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
}

func ParseULID(s string) (ulid.ULID, error) {
	if s == "" {
		return ulid.ULID{}, errors.New("ULID vacío")
	}

	parsed, err := ulid.Parse(s)
	if err != nil {
		return ulid.ULID{}, errors.New("formato ULID inválido")
	}

	return parsed, nil
}

func ParseULIDPtr(s *string) (*ulid.ULID, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	parsed, err := ParseULID(*s)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func IsEmptyULID(id ulid.ULID) bool {
	return id == ulid.ULID{}
}

func SetTimestamps() time.Time {
	return time.Now()
}

func ParseInt(s string) (int, error) {
	return strconv.Atoi(s)
}
