package main

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// crumbPatterns are tried in order against the same text; the first match wins.
var crumbPatterns = []*regexp.Regexp{
	regexp.MustCompile(`"CrumbStore":\{"crumb":"([^"]+)"\}`),
	regexp.MustCompile(`CrumbStore":\{"crumb":"([^"]+)"\}`),
	regexp.MustCompile(`"crumb":"([^"]+)"`),
	regexp.MustCompile(`crumb["']?:\s*["']([^"']+)["']`),
}

// blockedMarkers are checked case-sensitively, blockedMarkersFold after lower-casing.
var (
	blockedMarkers     = []string{"Yahoo is part of"}
	blockedMarkersFold = []string{"blocked"}
)

// IsBlockedPage reports whether body is a consent, redirect or access-denied
// page rather than a quote page.
func IsBlockedPage(body string) bool {
	for _, m := range blockedMarkers {
		if strings.Contains(body, m) {
			return true
		}
	}
	lower := strings.ToLower(body)
	for _, m := range blockedMarkersFold {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// matchCrumb returns the first capture of the first pattern that matches s.
func matchCrumb(s string) (string, bool) {
	for _, re := range crumbPatterns {
		if m := re.FindStringSubmatch(s); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// scriptBlocks returns the text of every <script> element in document order.
func scriptBlocks(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var scripts []string
	doc.Find("script").Each(func(i int, s *goquery.Selection) {
		scripts = append(scripts, s.Text())
	})
	return scripts, nil
}

// findCrumb scans the whole page first, then each script block on its own.
func findCrumb(html string) (string, error) {
	if crumb, ok := matchCrumb(html); ok {
		return crumb, nil
	}

	scripts, err := scriptBlocks(html)
	if err != nil {
		return "", fmt.Errorf("%w: failed to parse page scripts: %v", ErrCrumbNotFound, err)
	}
	for _, script := range scripts {
		if crumb, ok := matchCrumb(script); ok {
			return crumb, nil
		}
	}

	return "", fmt.Errorf("%w: yahoo may have changed their page structure", ErrCrumbNotFound)
}

// decodeCrumb resolves backslash escapes (\u002F, \x41, \n, ...) and then
// percent-encoding. Unknown escapes and malformed %-sequences are kept as
// written; only a truncated escape is an error.
func decodeCrumb(raw string) (string, error) {
	unescaped, err := unescapeBackslashes(raw)
	if err != nil {
		return "", fmt.Errorf("unescape %q: %w", raw, err)
	}
	return percentDecode(unescaped), nil
}

var errTruncatedEscape = errors.New("truncated escape")

func unescapeBackslashes(s string) (string, error) {
	if !strings.Contains(s, `\`) {
		return s, nil
	}

	var b strings.Builder
	b.Grow(len(s))
	for {
		i := strings.IndexByte(s, '\\')
		if i < 0 {
			b.WriteString(s)
			return b.String(), nil
		}
		b.WriteString(s[:i])
		s = s[i+1:]
		if s == "" {
			return "", fmt.Errorf("%w: trailing backslash", errTruncatedEscape)
		}

		c := s[0]
		s = s[1:]
		switch c {
		case '\n':
			// line continuation
		case '\\', '\'', '"':
			b.WriteByte(c)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			n := 0
			for n < 2 && n < len(s) && isOctal(s[n]) {
				n++
			}
			v, _ := strconv.ParseUint(string(c)+s[:n], 8, 32)
			b.WriteRune(rune(v))
			s = s[n:]
		case 'x', 'u', 'U':
			width := escapeWidth[c]
			if len(s) < width {
				return "", fmt.Errorf("%w: \\%c%s", errTruncatedEscape, c, s)
			}
			v, err := strconv.ParseUint(s[:width], 16, 32)
			if err != nil || v > unicode.MaxRune {
				return "", fmt.Errorf("%w: \\%c%s", errTruncatedEscape, c, s[:width])
			}
			b.WriteRune(rune(v))
			s = s[width:]
		default:
			b.WriteByte('\\')
			b.WriteByte(c)
		}
	}
}

var escapeWidth = map[byte]int{'x': 2, 'u': 4, 'U': 8}

func isOctal(c byte) bool { return '0' <= c && c <= '7' }

// percentDecode replaces each %XX with its byte. Other '%' characters pass
// through, and bytes that do not form valid UTF-8 become U+FFFD.
func percentDecode(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}

	buf := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]) {
			buf = append(buf, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
			continue
		}
		buf = append(buf, s[i])
	}
	if utf8.Valid(buf) {
		return string(buf)
	}

	var b strings.Builder
	for len(buf) > 0 {
		r, size := utf8.DecodeRune(buf)
		b.WriteRune(r)
		buf = buf[size:]
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func unhex(c byte) byte {
	switch {
	case c <= '9':
		return c - '0'
	case c <= 'F':
		return c - 'A' + 10
	default:
		return c - 'a' + 10
	}
}
