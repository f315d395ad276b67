package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// TimeLayout is the timestamp format of the duplicated-transactions export (no timezone).
const TimeLayout = "2006-01-02 15:04:05"

var (
	ErrMalformedHeights = errors.New("malformed height list")
	ErrMalformedHash    = errors.New("malformed hash")
	ErrMalformedTime    = errors.New("malformed timestamp")
	ErrMalformedNumber  = errors.New("malformed number")
	ErrMalformedAmount  = errors.New("malformed amount")
)

// ParseHeights parses a brace-delimited list such as "{100,205,310}", keeping input order.
func ParseHeights(s string) ([]uint64, error) {
	trimmed := strings.Trim(s, "{}")
	parts := strings.Split(trimmed, ",")
	heights := make([]uint64, 0, len(parts))
	for _, p := range parts {
		h, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrMalformedHeights, s, err)
		}
		heights = append(heights, h)
	}
	return heights, nil
}

// DecodePrefixedHash drops the two leading characters of s (usually "0x" or "\x")
// and hex-decodes the rest.
func DecodePrefixedHash(s string) (hexutil.Bytes, error) {
	if len(s) < 2 {
		return nil, fmt.Errorf("%w %q: too short", ErrMalformedHash, s)
	}
	b, err := hexutil.Decode("0x" + s[2:])
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrMalformedHash, s, err)
	}
	return b, nil
}

func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: %v", ErrMalformedTime, s, err)
	}
	return t, nil
}

func ParseUint(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q: %v", ErrMalformedNumber, s, err)
	}
	return n, nil
}
