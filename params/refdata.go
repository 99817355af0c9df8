package params

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Reference data keys.
const (
	KeyForward    = "FORWARD"
	KeyStrike     = "STRIKE"
	KeyMaturity   = "MATURITY"
	KeyVolatility = "VOLATILITY"
	KeyAlpha      = "ALPHA"
	KeyBeta       = "BETA"
	KeyRho        = "RHO"
	KeyVolOfVol   = "VOL_OF_VOL"
)

// LoadReferenceData reads the parameter set from dotenv files. The process
// environment is left untouched.
func LoadReferenceData(filenames ...string) (Set, error) {
	env, err := godotenv.Read(filenames...)
	if err != nil {
		return Set{}, fmt.Errorf("failed to read reference data: %w", err)
	}
	return LookupReferenceData(env)
}

// ParseReferenceData reads the parameter set from dotenv formatted text.
func ParseReferenceData(text string) (Set, error) {
	env, err := godotenv.Unmarshal(text)
	if err != nil {
		return Set{}, fmt.Errorf("failed to parse reference data: %w", err)
	}
	return LookupReferenceData(env)
}

// LookupReferenceData builds a validated Set from key/value pairs. Every key
// is required.
func LookupReferenceData(env map[string]string) (Set, error) {
	var s Set
	fields := []struct {
		key string
		dst *float64
	}{
		{KeyForward, &s.Forward},
		{KeyStrike, &s.Strike},
		{KeyMaturity, &s.Maturity},
		{KeyVolatility, &s.Volatility},
		{KeyAlpha, &s.SABR.Alpha},
		{KeyBeta, &s.SABR.Beta},
		{KeyRho, &s.SABR.Rho},
		{KeyVolOfVol, &s.SABR.Nu},
	}

	for _, f := range fields {
		raw, ok := env[f.key]
		if !ok || strings.TrimSpace(raw) == "" {
			return Set{}, fmt.Errorf("%w: reference data key %s is missing", ErrInvalidParameter, f.key)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return Set{}, fmt.Errorf("%w: reference data key %s: %s", ErrInvalidParameter, f.key, err)
		}
		*f.dst = v
	}

	if err := s.Validate(); err != nil {
		return Set{}, err
	}
	return s, nil
}
