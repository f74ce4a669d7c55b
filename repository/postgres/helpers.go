package postgres

import (
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kaamsetu/backend/domain"
)

const uniqueViolation = "23505"

func marshalSkills(skills []string) []byte {
	if skills == nil {
		skills = []string{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return []byte("[]")
	}
	return b
}

func unmarshalSkills(raw []byte) []string {
	skills := []string{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &skills)
	}
	return skills
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation && (constraint == "" || pgErr.ConstraintName == constraint)
	}
	return false
}

func locationColumns(loc *domain.Location) (lat, lng interface{}, address interface{}) {
	if loc == nil {
		return nil, nil, nil
	}
	return loc.Lat, loc.Lng, loc.Address
}

func locationFromColumns(lat, lng *float64, address *string) *domain.Location {
	if lat == nil || lng == nil {
		return nil
	}
	loc := &domain.Location{Lat: *lat, Lng: *lng}
	if address != nil {
		loc.Address = *address
	}
	return loc
}
