package rle

import "strconv"

// AppendText appends a human-readable representation of the encoded stream
// src to dst. The header is shown as "len=N ", literals are copied through,
// and triples are replaced with <count*'c'> symbols.
//
// AppendText only checks that the header is present; it is meant for looking
// at streams, including damaged ones, not for validating them.
func AppendText(dst, src []byte) ([]byte, error) {
	n, body, err := parseHeader(src)
	if err != nil {
		return dst, err
	}
	dst = append(dst, "len="...)
	dst = strconv.AppendUint(dst, n, 10)
	dst = append(dst, ' ')

	for i := 0; i < len(body); {
		c, count, width := unitAt(body, i)
		if width == 1 {
			dst = append(dst, c)
		} else {
			dst = append(dst, '<')
			dst = strconv.AppendInt(dst, int64(count), 10)
			dst = append(dst, '*')
			dst = strconv.AppendQuoteRuneToASCII(dst, rune(c))
			dst = append(dst, '>')
		}
		i += width
	}
	return dst, nil
}
