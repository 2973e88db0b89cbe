// Package numfmt provides zero-allocation ASCII integer and float
// parsing and formatting, used by concurrentuf/opsfile to read
// operation-stream files and by cmd/unionfind-bench to parse its numeric
// arguments and print each per-run timing line, without reaching for
// strconv or fmt. The harness's final summary table uses fmt.
package numfmt

import "unsafe"

// B2s converts a []byte to a string without allocation. Callers must not
// mutate b afterward.
//
//go:nosplit
//go:inline
func B2s(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// SkipSpaces returns the index of the next non-space byte at or after i,
// recognizing ' ', '\t', '\r', and '\n'.
//
//go:nosplit
//go:inline
func SkipSpaces(b []byte, i int) int {
	for i < len(b) {
		switch b[i] {
		case ' ', '\t', '\r', '\n':
			i++
		default:
			return i
		}
	}
	return i
}

// ParseInt reads a (possibly negative) decimal integer starting at index
// i and returns its value along with the index of the first byte after
// it. ok is false if no digits were found at i.
//
//go:nosplit
//go:inline
func ParseInt(b []byte, i int) (v int, next int, ok bool) {
	neg := false
	if i < len(b) && b[i] == '-' {
		neg = true
		i++
	}
	start := i
	for i < len(b) && b[i] >= '0' && b[i] <= '9' {
		v = v*10 + int(b[i]-'0')
		i++
	}
	if i == start {
		return 0, i, false
	}
	if neg {
		v = -v
	}
	return v, i, true
}

// AppendInt appends the decimal ASCII representation of v to dst.
//
//go:nosplit
func AppendInt(dst []byte, v int) []byte {
	if v == 0 {
		return append(dst, '0')
	}
	neg := v < 0
	if neg {
		v = -v
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	if neg {
		dst = append(dst, '-')
	}
	return append(dst, buf[i:]...)
}

// AppendFloat appends a fixed-point decimal representation of v with
// prec digits after the point. v is assumed finite and non-negative,
// which holds for every timing statistic this module prints.
//
//go:nosplit
func AppendFloat(dst []byte, v float64, prec int) []byte {
	scale := 1.0
	for i := 0; i < prec; i++ {
		scale *= 10
	}
	scaled := int64(v*scale + 0.5)
	whole := scaled
	for i := 0; i < prec; i++ {
		whole /= 10
	}
	dst = AppendInt(dst, int(whole))
	if prec == 0 {
		return dst
	}
	dst = append(dst, '.')
	frac := scaled
	for i := 0; i < prec; i++ {
		pow := int64(1)
		for j := 0; j < prec-1-i; j++ {
			pow *= 10
		}
		digit := (frac / pow) % 10
		dst = append(dst, byte('0'+digit))
	}
	return dst
}
