package utils

import (
	"fmt"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
)

func TestParseHeights(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []uint64
		wantErr assert.ErrorAssertionFunc
	}{
		{name: "three heights", input: "{100,205,310}", want: []uint64{100, 205, 310}, wantErr: assert.NoError},
		{name: "single height", input: "{42}", want: []uint64{42}, wantErr: assert.NoError},
		{name: "order is kept", input: "{9,3,7}", want: []uint64{9, 3, 7}, wantErr: assert.NoError},
		{name: "no braces", input: "1,2", want: []uint64{1, 2}, wantErr: assert.NoError},
		{
			name:  "empty list",
			input: "{}",
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, ErrMalformedHeights, i...)
			},
		},
		{
			name:  "not a number",
			input: "{1,x}",
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, ErrMalformedHeights, i...)
			},
		},
		{
			name:  "negative",
			input: "{-1}",
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, ErrMalformedHeights, i...)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHeights(tt.input)
			if !tt.wantErr(t, err, fmt.Sprintf("ParseHeights(%q)", tt.input)) {
				return
			}
			assert.Equalf(t, tt.want, got, "ParseHeights(%q)", tt.input)
		})
	}
}

func TestDecodePrefixedHash(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    hexutil.Bytes
		wantErr assert.ErrorAssertionFunc
	}{
		{name: "0x prefix", input: "0xdeadbeef", want: hexutil.Bytes{0xde, 0xad, 0xbe, 0xef}, wantErr: assert.NoError},
		{name: "postgres bytea prefix", input: `\x0a0b`, want: hexutil.Bytes{0x0a, 0x0b}, wantErr: assert.NoError},
		{
			name:  "too short",
			input: "0",
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, ErrMalformedHash, i...)
			},
		},
		{
			name:  "odd length",
			input: "0xabc",
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, ErrMalformedHash, i...)
			},
		},
		{
			name:  "not hex",
			input: "0xzz",
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, ErrMalformedHash, i...)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePrefixedHash(tt.input)
			if !tt.wantErr(t, err, fmt.Sprintf("DecodePrefixedHash(%q)", tt.input)) {
				return
			}
			assert.Equalf(t, tt.want, got, "DecodePrefixedHash(%q)", tt.input)
		})
	}
}

func TestDecodePrefixedHash_Empty(t *testing.T) {
	got, err := DecodePrefixedHash("0x")
	assert.NoError(t, err)
	assert.Len(t, got, 0)
}

func TestParseTime(t *testing.T) {
	got, err := ParseTime("2023-05-17 08:09:10")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2023, time.May, 17, 8, 9, 10, 0, time.UTC), got)

	_, err = ParseTime("2023-05-17T08:09:10Z")
	assert.ErrorIs(t, err, ErrMalformedTime)
}

func TestParseUint(t *testing.T) {
	got, err := ParseUint("17")
	assert.NoError(t, err)
	assert.Equal(t, uint64(17), got)

	_, err = ParseUint("seventeen")
	assert.ErrorIs(t, err, ErrMalformedNumber)
}
